package wire

import "math"

// PackColor packs an RGB triple into the daemon's native u32 layout:
// red in the low byte, green in the middle, blue in the high byte.
func PackColor(r, g, b uint8) uint32 {
	return uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UpdateLEDsPayload builds the body of an update-LEDs packet:
// data size (u32) || led count (u16) || led count × color (u32).
// At most math.MaxUint16 colors are sent.
func UpdateLEDsPayload(colors []uint32) []byte {
	count := min(len(colors), math.MaxUint16)
	size := uint32(4 + 2 + 4*count)

	b := &Builder{buf: make([]byte, 0, size)}
	b.PutUint32(size).PutUint16(uint16(count))
	for _, c := range colors[:count] {
		b.PutUint32(c)
	}
	return b.Bytes()
}

// ClientNamePayload returns the NUL-terminated client name.
func ClientNamePayload(name string) []byte {
	return append([]byte(name), 0)
}

// VersionPayload returns a protocol version as a u32 payload.
func VersionPayload(version uint32) []byte {
	return NewBuilder().PutUint32(version).Bytes()
}
