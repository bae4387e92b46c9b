// Package wiretest builds controller-data payloads the way the daemon writes
// them, for tests of the parser and of components that talk to a fake daemon.
package wiretest

import (
	"github.com/d2verb/keylight/internal/wire"
)

// Mode describes one lighting mode to encode.
type Mode struct {
	Name   string
	Value  int32
	Flags  uint32
	Colors []uint32
}

// Zone describes one zone to encode. A zone with Height or Width set, or
// with Matrix entries, is written with a matrix map.
type Zone struct {
	Name     string
	Type     int32
	LEDCount uint32
	Height   uint32
	Width    uint32
	Matrix   []uint32
	Segments []wire.Segment
	Flags    uint32
}

// Controller describes a device record to encode.
type Controller struct {
	Type        wire.DeviceType
	Name        string
	Vendor      string
	Description string
	Version     string
	Serial      string
	Location    string
	ActiveMode  int32
	Modes       []Mode
	Zones       []Zone
	LEDNames    []string
	LEDAltNames []string
	Colors      []uint32
	Flags       uint32
}

// Keyboard returns a keyboard record with one mode, one matrix zone and the
// given LED names.
func Keyboard(vendor, name string, leds ...string) Controller {
	return Controller{
		Type:        wire.DeviceKeyboard,
		Name:        name,
		Vendor:      vendor,
		Description: name + " keyboard",
		Version:     "1.0",
		Serial:      "SN0001",
		Location:    "HID: /dev/hidraw0",
		Modes: []Mode{
			{Name: "Direct", Value: 0xFF, Flags: 0x20},
			{Name: "Static", Value: 1, Flags: 0x01, Colors: []uint32{0xFF0000}},
		},
		Zones: []Zone{{
			Name:     "Keyboard",
			Type:     2,
			LEDCount: uint32(len(leds)),
			Height:   1,
			Width:    uint32(len(leds)),
			Matrix:   sequence(len(leds)),
			Segments: []wire.Segment{{Name: "Main", Type: 1, Start: 0, LEDCount: uint32(len(leds))}},
		}},
		LEDNames: leds,
		Colors:   make([]uint32, len(leds)),
	}
}

// Device returns a non-keyboard record with the given type and LED names.
func Device(t wire.DeviceType, vendor, name string, leds ...string) Controller {
	return Controller{
		Type:     t,
		Name:     name,
		Vendor:   vendor,
		Modes:    []Mode{{Name: "Direct", Value: 0xFF}},
		Zones:    []Zone{{Name: "Strip", Type: 1, LEDCount: uint32(len(leds))}},
		LEDNames: leds,
		Colors:   make([]uint32, len(leds)),
	}
}

func sequence(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

// Encode returns the controller-data payload for the given protocol version.
// The leading data-size field covers the whole payload, itself included.
func (c Controller) Encode(version uint32) []byte {
	b := wire.NewBuilder()
	b.PutInt32(int32(c.Type)).PutString(c.Name)
	if version >= 1 {
		b.PutString(c.Vendor)
	}
	b.PutString(c.Description).
		PutString(c.Version).
		PutString(c.Serial).
		PutString(c.Location)

	b.PutUint16(uint16(len(c.Modes))).PutInt32(c.ActiveMode)
	for _, m := range c.Modes {
		encodeMode(b, m, version)
	}

	b.PutUint16(uint16(len(c.Zones)))
	for _, z := range c.Zones {
		encodeZone(b, z, version)
	}

	b.PutUint16(uint16(len(c.LEDNames)))
	for i, name := range c.LEDNames {
		b.PutString(name).PutUint32(uint32(i))
	}

	b.PutUint16(uint16(len(c.Colors)))
	for _, col := range c.Colors {
		b.PutUint32(col)
	}

	if version >= 5 {
		b.PutUint16(uint16(len(c.LEDAltNames)))
		for _, name := range c.LEDAltNames {
			b.PutString(name)
		}
		b.PutUint32(c.Flags)
	}

	body := b.Bytes()
	return wire.NewBuilder().PutUint32(uint32(4 + len(body))).PutRaw(body).Bytes()
}

func encodeMode(b *wire.Builder, m Mode, version uint32) {
	colors := uint32(len(m.Colors))
	b.PutString(m.Name).PutInt32(m.Value).PutUint32(m.Flags)

	// speed min/max, [brightness min/max], colors min/max, speed,
	// [brightness], direction, color mode
	b.PutUint32(0).PutUint32(100)
	if version >= 3 {
		b.PutUint32(0).PutUint32(100)
	}
	b.PutUint32(colors).PutUint32(colors)
	b.PutUint32(50)
	if version >= 3 {
		b.PutUint32(100)
	}
	b.PutUint32(0).PutUint32(1)

	b.PutUint16(uint16(colors))
	for _, col := range m.Colors {
		b.PutUint32(col)
	}
}

func encodeZone(b *wire.Builder, z Zone, version uint32) {
	b.PutString(z.Name).PutInt32(z.Type).
		PutUint32(z.LEDCount).PutUint32(z.LEDCount).PutUint32(z.LEDCount)

	if z.Height == 0 && z.Width == 0 && len(z.Matrix) == 0 {
		b.PutUint16(0)
	} else {
		b.PutUint16(uint16(8 + 4*len(z.Matrix)))
		b.PutUint32(z.Height).PutUint32(z.Width)
		for _, v := range z.Matrix {
			b.PutUint32(v)
		}
	}

	if version >= 4 {
		b.PutUint16(uint16(len(z.Segments)))
		for _, s := range z.Segments {
			b.PutString(s.Name).PutInt32(s.Type).PutUint32(s.Start).PutUint32(s.LEDCount)
		}
	}
	if version >= 5 {
		b.PutUint32(z.Flags)
	}
}
