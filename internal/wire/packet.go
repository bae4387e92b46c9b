// Package wire implements the OpenRGB SDK binary protocol: packet framing and
// the variable-length records carried inside controller-data payloads.
// All integers are little-endian. The package does no I/O beyond reading and
// writing a single packet on a caller-supplied stream.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the fixed tag that starts every packet header.
var Magic = [4]byte{'O', 'R', 'G', 'B'}

// HeaderSize is the size of a packet header in bytes.
const HeaderSize = 16

// MaxPayloadSize bounds the payload length accepted from the wire.
const MaxPayloadSize = 16 << 20

// MaxProtocolVersion is the highest protocol version this client speaks.
const MaxProtocolVersion uint32 = 5

// Packet IDs used by the client.
const (
	RequestControllerCount uint32 = 0
	RequestControllerData  uint32 = 1
	RequestProtocolVersion uint32 = 40
	SetClientName          uint32 = 50
	UpdateLEDs             uint32 = 1050
	SetCustomMode          uint32 = 1100
)

var packetNames = map[uint32]string{
	RequestControllerCount: "request controller count",
	RequestControllerData:  "request controller data",
	RequestProtocolVersion: "request protocol version",
	SetClientName:          "set client name",
	UpdateLEDs:             "update leds",
	SetCustomMode:          "set custom mode",
}

// PacketName returns a readable name for a packet id.
func PacketName(id uint32) string {
	if name, ok := packetNames[id]; ok {
		return name
	}
	return fmt.Sprintf("packet %d", id)
}

// Packet is one protocol message.
type Packet struct {
	DeviceIndex uint32
	ID          uint32
	Payload     []byte
}

// Encode returns the wire form of p:
// MAGIC || device index || packet id || payload length || payload.
func Encode(p Packet) []byte {
	buf := make([]byte, HeaderSize+len(p.Payload))
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[4:8], p.DeviceIndex)
	binary.LittleEndian.PutUint32(buf[8:12], p.ID)
	binary.LittleEndian.PutUint32(buf[12:16], uint32(len(p.Payload)))
	copy(buf[HeaderSize:], p.Payload)
	return buf
}

// header is the decoded fixed-size part of a packet.
type header struct {
	deviceIndex uint32
	id          uint32
	length      uint32
}

func parseHeader(b []byte) (header, error) {
	if len(b) < HeaderSize {
		return header{}, truncated("header", fmt.Errorf("have %d bytes, need %d", len(b), HeaderSize))
	}
	if !bytes.Equal(b[0:4], Magic[:]) {
		return header{}, &ProtocolError{Kind: BadMagic, Op: "header", Err: fmt.Errorf("got %q", b[0:4])}
	}
	h := header{
		deviceIndex: binary.LittleEndian.Uint32(b[4:8]),
		id:          binary.LittleEndian.Uint32(b[8:12]),
		length:      binary.LittleEndian.Uint32(b[12:16]),
	}
	if h.length > MaxPayloadSize {
		return header{}, &ProtocolError{Kind: Malformed, Op: "header", Err: fmt.Errorf("payload length %d exceeds %d", h.length, MaxPayloadSize)}
	}
	return h, nil
}

// Decode parses exactly one packet from b. Bytes after the declared payload
// are ignored.
func Decode(b []byte) (Packet, error) {
	h, err := parseHeader(b)
	if err != nil {
		return Packet{}, err
	}
	end := HeaderSize + int(h.length)
	if len(b) < end {
		return Packet{}, truncated("payload", fmt.Errorf("have %d bytes, need %d", len(b)-HeaderSize, h.length))
	}
	payload := make([]byte, h.length)
	copy(payload, b[HeaderSize:end])
	return Packet{DeviceIndex: h.deviceIndex, ID: h.id, Payload: payload}, nil
}

// ReadPacket reads a single packet from r. A stream that ends inside the
// header or payload yields a Truncated error wrapping the I/O error; other
// read errors (timeouts, resets) are returned unchanged.
func ReadPacket(r io.Reader) (Packet, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Packet{}, truncated("header", err)
		}
		return Packet{}, err
	}

	h, err := parseHeader(hdr[:])
	if err != nil {
		return Packet{}, err
	}

	payload := make([]byte, h.length)
	if h.length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return Packet{}, truncated("payload", err)
			}
			return Packet{}, err
		}
	}

	return Packet{DeviceIndex: h.deviceIndex, ID: h.id, Payload: payload}, nil
}

// WritePacket writes the encoded packet to w in a single Write call.
func WritePacket(w io.Writer, p Packet) error {
	if _, err := w.Write(Encode(p)); err != nil {
		return err
	}
	return nil
}
