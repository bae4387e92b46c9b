package wire

import (
	"fmt"
	"strconv"
)

// DeviceType is the controller class reported by the daemon.
type DeviceType int32

// DeviceKeyboard is the only class this client drives.
const DeviceKeyboard DeviceType = 5

var deviceTypeNames = []string{
	"motherboard", "dram", "gpu", "cooler", "ledstrip", "keyboard", "mouse",
	"mousemat", "headset", "headset stand", "gamepad", "light", "speaker",
	"virtual", "storage", "case", "microphone", "accessory", "keypad",
}

func (t DeviceType) String() string {
	if t >= 0 && int(t) < len(deviceTypeNames) {
		return deviceTypeNames[t]
	}
	return "other(" + strconv.Itoa(int(t)) + ")"
}

// IsKeyboard reports whether t is the keyboard class.
func (t DeviceType) IsKeyboard() bool { return t == DeviceKeyboard }

// Mode is one lighting mode of a controller. Only the fields a user may want
// to see are kept; the rest are consumed and dropped.
type Mode struct {
	Name  string
	Value int32
	Flags uint32
}

// Segment is a named run of LEDs inside a zone (protocol version 4+).
type Segment struct {
	Name     string
	Type     int32
	Start    uint32
	LEDCount uint32
}

// Zone is a group of LEDs, optionally laid out as a matrix.
type Zone struct {
	Name     string
	Type     int32
	LEDCount uint32
	Height   uint32
	Width    uint32
	Segments []Segment
	Flags    uint32
}

// Controller is one hardware device as described by the daemon. LED indices
// are positional: LEDNames[i] and LEDAltNames[i] name the LED the daemon
// addresses as i.
type Controller struct {
	Index       uint32
	Type        DeviceType
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
	Flags       uint32
}

// DisplayName returns "vendor name", or just the name when the vendor is empty.
func (c *Controller) DisplayName() string {
	if c.Vendor == "" {
		return c.Name
	}
	return c.Vendor + " " + c.Name
}

// LEDCount returns the number of addressable LEDs.
func (c *Controller) LEDCount() int {
	return len(c.LEDNames)
}

// ParseController decodes a controller-data payload received for the
// controller at index, using the field layout of the negotiated protocol
// version. Fields are consumed in the exact order the daemon writes them;
// version-gated fields are read only when the version carries them.
func ParseController(index uint32, payload []byte, version uint32) (*Controller, error) {
	r := NewReader(payload)
	c := &Controller{Index: index}

	if _, err := r.Uint32(); err != nil {
		return nil, fieldErr("data size", err)
	}
	t, err := r.Int32()
	if err != nil {
		return nil, fieldErr("device type", err)
	}
	c.Type = DeviceType(t)

	if c.Name, err = r.String(); err != nil {
		return nil, fieldErr("name", err)
	}
	if version >= 1 {
		if c.Vendor, err = r.String(); err != nil {
			return nil, fieldErr("vendor", err)
		}
	}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"description", &c.Description},
		{"version", &c.Version},
		{"serial", &c.Serial},
		{"location", &c.Location},
	} {
		if *f.dst, err = r.String(); err != nil {
			return nil, fieldErr(f.name, err)
		}
	}

	numModes, err := r.Uint16()
	if err != nil {
		return nil, fieldErr("mode count", err)
	}
	if c.ActiveMode, err = r.Int32(); err != nil {
		return nil, fieldErr("active mode", err)
	}
	c.Modes = make([]Mode, 0, numModes)
	for i := range int(numModes) {
		m, err := parseMode(r, version)
		if err != nil {
			return nil, fieldErr(fmt.Sprintf("mode %d", i), err)
		}
		c.Modes = append(c.Modes, m)
	}

	numZones, err := r.Uint16()
	if err != nil {
		return nil, fieldErr("zone count", err)
	}
	c.Zones = make([]Zone, 0, numZones)
	for i := range int(numZones) {
		z, err := parseZone(r, version)
		if err != nil {
			return nil, fieldErr(fmt.Sprintf("zone %d", i), err)
		}
		c.Zones = append(c.Zones, z)
	}

	numLEDs, err := r.Uint16()
	if err != nil {
		return nil, fieldErr("led count", err)
	}
	c.LEDNames = make([]string, 0, numLEDs)
	for i := range int(numLEDs) {
		name, err := r.String()
		if err != nil {
			return nil, fieldErr(fmt.Sprintf("led %d name", i), err)
		}
		if _, err := r.Uint32(); err != nil {
			return nil, fieldErr(fmt.Sprintf("led %d value", i), err)
		}
		c.LEDNames = append(c.LEDNames, name)
	}

	numColors, err := r.Uint16()
	if err != nil {
		return nil, fieldErr("color count", err)
	}
	if err := r.Skip(int(numColors) * 4); err != nil {
		return nil, fieldErr("colors", err)
	}

	if version >= 5 {
		numAlt, err := r.Uint16()
		if err != nil {
			return nil, fieldErr("alt name count", err)
		}
		c.LEDAltNames = make([]string, 0, numAlt)
		for i := range int(numAlt) {
			name, err := r.String()
			if err != nil {
				return nil, fieldErr(fmt.Sprintf("alt name %d", i), err)
			}
			c.LEDAltNames = append(c.LEDAltNames, name)
		}
		if c.Flags, err = r.Uint32(); err != nil {
			return nil, fieldErr("flags", err)
		}
	}

	return c, nil
}

func parseMode(r *Reader, version uint32) (Mode, error) {
	var m Mode
	var err error
	if m.Name, err = r.String(); err != nil {
		return m, fieldErr("name", err)
	}
	if m.Value, err = r.Int32(); err != nil {
		return m, fieldErr("value", err)
	}
	if m.Flags, err = r.Uint32(); err != nil {
		return m, fieldErr("flags", err)
	}

	// speed min/max, [brightness min/max], colors min/max, speed,
	// [brightness], direction, color mode
	words := 7
	if version >= 3 {
		words += 3
	}
	for range words {
		if _, err := r.Uint32(); err != nil {
			return m, fieldErr("parameters", err)
		}
	}

	numColors, err := r.Uint16()
	if err != nil {
		return m, fieldErr("color count", err)
	}
	if err := r.Skip(int(numColors) * 4); err != nil {
		return m, fieldErr("colors", err)
	}
	return m, nil
}

func parseZone(r *Reader, version uint32) (Zone, error) {
	var z Zone
	var err error
	if z.Name, err = r.String(); err != nil {
		return z, fieldErr("name", err)
	}
	if z.Type, err = r.Int32(); err != nil {
		return z, fieldErr("type", err)
	}
	// leds min, leds max, leds count
	for i := range 3 {
		v, err := r.Uint32()
		if err != nil {
			return z, fieldErr("led bounds", err)
		}
		if i == 2 {
			z.LEDCount = v
		}
	}

	matrixLen, err := r.Uint16()
	if err != nil {
		return z, fieldErr("matrix length", err)
	}
	if matrixLen > 0 {
		if z.Height, err = r.Uint32(); err != nil {
			return z, fieldErr("matrix height", err)
		}
		if z.Width, err = r.Uint32(); err != nil {
			return z, fieldErr("matrix width", err)
		}
		if err := r.Skip(max(int(matrixLen)-8, 0)); err != nil {
			return z, fieldErr("matrix", err)
		}
	}

	if version >= 4 {
		numSegments, err := r.Uint16()
		if err != nil {
			return z, fieldErr("segment count", err)
		}
		z.Segments = make([]Segment, 0, numSegments)
		for i := range int(numSegments) {
			s, err := parseSegment(r)
			if err != nil {
				return z, fieldErr(fmt.Sprintf("segment %d", i), err)
			}
			z.Segments = append(z.Segments, s)
		}
	}

	if version >= 5 {
		if z.Flags, err = r.Uint32(); err != nil {
			return z, fieldErr("flags", err)
		}
	}
	return z, nil
}

func parseSegment(r *Reader) (Segment, error) {
	var s Segment
	var err error
	if s.Name, err = r.String(); err != nil {
		return s, fieldErr("name", err)
	}
	if s.Type, err = r.Int32(); err != nil {
		return s, fieldErr("type", err)
	}
	if s.Start, err = r.Uint32(); err != nil {
		return s, fieldErr("start", err)
	}
	if s.LEDCount, err = r.Uint32(); err != nil {
		return s, fieldErr("led count", err)
	}
	return s, nil
}

// fieldErr prefixes err with the field being decoded. The ProtocolError kind
// is preserved so callers can still test for truncation.
func fieldErr(field string, err error) error {
	return fmt.Errorf("%s: %w", field, err)
}
