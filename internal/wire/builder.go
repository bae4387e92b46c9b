package wire

import (
	"encoding/binary"
	"math"
)

// Builder assembles a little-endian payload. Methods chain:
//
//	payload := wire.NewBuilder().PutUint32(size).PutUint16(count).Bytes()
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// PutUint16 appends v.
func (b *Builder) PutUint16(v uint16) *Builder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

// PutUint32 appends v.
func (b *Builder) PutUint32(v uint32) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

// PutInt32 appends v.
func (b *Builder) PutInt32(v int32) *Builder {
	return b.PutUint32(uint32(v))
}

// PutString appends s as a u16 length prefix followed by the bytes of s and a
// terminating NUL, the way the daemon writes names. Strings longer than the
// prefix can express are cut.
func (b *Builder) PutString(s string) *Builder {
	data := []byte(s)
	if len(data) > math.MaxUint16-1 {
		data = data[:math.MaxUint16-1]
	}
	b.PutUint16(uint16(len(data) + 1))
	b.buf = append(b.buf, data...)
	b.buf = append(b.buf, 0)
	return b
}

// PutRaw appends data unchanged.
func (b *Builder) PutRaw(data []byte) *Builder {
	b.buf = append(b.buf, data...)
	return b
}

// Bytes returns the assembled payload.
func (b *Builder) Bytes() []byte {
	return b.buf
}
