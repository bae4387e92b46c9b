package wire

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	got := Encode(Packet{DeviceIndex: 2, ID: UpdateLEDs, Payload: []byte{0xAA, 0xBB}})
	want := []byte{
		'O', 'R', 'G', 'B',
		0x02, 0x00, 0x00, 0x00,
		0x1A, 0x04, 0x00, 0x00, // 1050
		0x02, 0x00, 0x00, 0x00,
		0xAA, 0xBB,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Encode() = % x, want % x", got, want)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		packet Packet
	}{
		{"empty payload", Packet{DeviceIndex: 0, ID: RequestControllerCount}},
		{"client name", Packet{ID: SetClientName, Payload: ClientNamePayload("keylight")}},
		{"high device index", Packet{DeviceIndex: 0xFFFFFFFF, ID: SetCustomMode}},
		{"led update", Packet{DeviceIndex: 1, ID: UpdateLEDs, Payload: UpdateLEDsPayload([]uint32{1, 2, 3})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.packet)
			decoded, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if decoded.DeviceIndex != tt.packet.DeviceIndex {
				t.Errorf("DeviceIndex = %d, want %d", decoded.DeviceIndex, tt.packet.DeviceIndex)
			}
			if decoded.ID != tt.packet.ID {
				t.Errorf("ID = %d, want %d", decoded.ID, tt.packet.ID)
			}
			if !bytes.Equal(decoded.Payload, tt.packet.Payload) {
				t.Errorf("Payload = % x, want % x", decoded.Payload, tt.packet.Payload)
			}
			if again := Encode(decoded); !bytes.Equal(again, encoded) {
				t.Errorf("Encode(Decode(b)) = % x, want % x", again, encoded)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	valid := Encode(Packet{ID: RequestProtocolVersion, Payload: []byte{5, 0, 0, 0}})
	badMagic := append([]byte("ORGX"), valid[4:]...)

	tests := []struct {
		name      string
		input     []byte
		wantMagic bool
		wantTrunc bool
	}{
		{"empty input", nil, false, true},
		{"short header", valid[:10], false, true},
		{"bad magic", badMagic, true, false},
		{"payload shorter than declared", valid[:len(valid)-1], false, true},
		{"header only with declared payload", valid[:HeaderSize], false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			if err == nil {
				t.Fatal("Decode() expected error")
			}
			if got := IsBadMagic(err); got != tt.wantMagic {
				t.Errorf("IsBadMagic() = %v, want %v (err = %v)", got, tt.wantMagic, err)
			}
			if got := IsTruncated(err); got != tt.wantTrunc {
				t.Errorf("IsTruncated() = %v, want %v (err = %v)", got, tt.wantTrunc, err)
			}
		})
	}
}

func TestDecode_OversizedLength(t *testing.T) {
	b := Encode(Packet{ID: 1})
	b[12], b[13], b[14], b[15] = 0xFF, 0xFF, 0xFF, 0x7F

	_, err := Decode(b)
	if !IsProtocolError(err) {
		t.Fatalf("Decode() error = %v, want protocol error", err)
	}
	if IsTruncated(err) {
		t.Errorf("oversized length should not be reported as truncation")
	}
}

func TestReadPacket(t *testing.T) {
	t.Run("reads consecutive packets", func(t *testing.T) {
		var buf bytes.Buffer
		buf.Write(Encode(Packet{ID: RequestControllerCount, Payload: []byte{1, 0, 0, 0}}))
		buf.Write(Encode(Packet{DeviceIndex: 3, ID: RequestControllerData}))

		first, err := ReadPacket(&buf)
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		if first.ID != RequestControllerCount || len(first.Payload) != 4 {
			t.Errorf("first = %+v", first)
		}

		second, err := ReadPacket(&buf)
		if err != nil {
			t.Fatalf("ReadPacket() error = %v", err)
		}
		if second.DeviceIndex != 3 || second.ID != RequestControllerData {
			t.Errorf("second = %+v", second)
		}

		if _, err := ReadPacket(&buf); !errors.Is(err, io.EOF) {
			t.Errorf("ReadPacket() at end error = %v, want io.EOF", err)
		}
	})

	t.Run("stream ending mid payload is truncated", func(t *testing.T) {
		b := Encode(Packet{ID: 1, Payload: []byte{1, 2, 3, 4}})
		_, err := ReadPacket(bytes.NewReader(b[:len(b)-2]))
		if !IsTruncated(err) {
			t.Errorf("ReadPacket() error = %v, want truncated", err)
		}
	})

	t.Run("stream ending mid header is truncated", func(t *testing.T) {
		_, err := ReadPacket(bytes.NewReader([]byte("ORGB\x00")))
		if !IsTruncated(err) {
			t.Errorf("ReadPacket() error = %v, want truncated", err)
		}
	})

	t.Run("timeout is passed through", func(t *testing.T) {
		client, server := net.Pipe()
		defer client.Close()
		defer server.Close()

		client.SetReadDeadline(time.Now().Add(10 * time.Millisecond))
		_, err := ReadPacket(client)

		var netErr net.Error
		if !errors.As(err, &netErr) || !netErr.Timeout() {
			t.Errorf("ReadPacket() error = %v, want timeout", err)
		}
		if IsProtocolError(err) {
			t.Errorf("timeout should not be a protocol error")
		}
	})
}

func TestWritePacket(t *testing.T) {
	var buf bytes.Buffer
	p := Packet{DeviceIndex: 7, ID: SetCustomMode}

	if err := WritePacket(&buf, p); err != nil {
		t.Fatalf("WritePacket() error = %v", err)
	}
	if !bytes.Equal(buf.Bytes(), Encode(p)) {
		t.Errorf("WritePacket() wrote % x, want % x", buf.Bytes(), Encode(p))
	}
}
