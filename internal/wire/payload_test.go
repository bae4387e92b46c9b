package wire

import (
	"encoding/binary"
	"testing"
)

func TestPackColor(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint32
	}{
		{"black", 0, 0, 0, 0},
		{"red", 255, 0, 0, 0x0000FF},
		{"green", 0, 255, 0, 0x00FF00},
		{"blue", 0, 0, 255, 0xFF0000},
		{"mixed", 0x12, 0x34, 0x56, 0x563412},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PackColor(tt.r, tt.g, tt.b)
			if got != tt.want {
				t.Errorf("PackColor(%d, %d, %d) = %#06x, want %#06x", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestUpdateLEDsPayload(t *testing.T) {
	colors := []uint32{PackColor(0, 255, 0), 0, 0}
	p := UpdateLEDsPayload(colors)

	if len(p) != 4+2+4*3 {
		t.Fatalf("len = %d, want %d", len(p), 4+2+4*3)
	}
	if size := binary.LittleEndian.Uint32(p[0:4]); size != uint32(len(p)) {
		t.Errorf("data size = %d, want %d", size, len(p))
	}
	if count := binary.LittleEndian.Uint16(p[4:6]); count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	for i, want := range colors {
		got := binary.LittleEndian.Uint32(p[6+4*i:])
		if got != want {
			t.Errorf("color[%d] = %#x, want %#x", i, got, want)
		}
	}
}

func TestUpdateLEDsPayload_Empty(t *testing.T) {
	p := UpdateLEDsPayload(nil)
	want := []byte{6, 0, 0, 0, 0, 0}
	if string(p) != string(want) {
		t.Errorf("UpdateLEDsPayload(nil) = % x, want % x", p, want)
	}
}

func TestClientNamePayload(t *testing.T) {
	p := ClientNamePayload("keylight")
	if string(p) != "keylight\x00" {
		t.Errorf("ClientNamePayload() = %q", p)
	}
}
