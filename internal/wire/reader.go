package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Reader is a cursor over a received payload. Every read either consumes
// exactly the bytes it needs or fails with a Truncated error and leaves the
// cursor where it was.
type Reader struct {
	buf []byte
	pos int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) next(n int, what string) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, truncated(what, fmt.Errorf("need %d bytes at offset %d, have %d", n, r.pos, r.Remaining()))
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.next(2, "u16")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.next(4, "u32")
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Int32 reads a little-endian int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// String reads a u16 length-prefixed string. The value is cut at the first
// NUL and invalid UTF-8 is replaced with U+FFFD rather than rejected.
func (r *Reader) String() (string, error) {
	start := r.pos
	n, err := r.Uint16()
	if err != nil {
		return "", err
	}
	b, err := r.next(int(n), "string")
	if err != nil {
		r.pos = start
		return "", err
	}
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.ToValidUTF8(string(b), "�"), nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.next(n, "skip")
	return err
}
