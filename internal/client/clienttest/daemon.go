// Package clienttest runs an in-process fake OpenRGB daemon on a loopback
// TCP port. It answers the requests the client makes and records every
// packet it receives, in order, so tests can assert on the exact traffic.
package clienttest

import (
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/d2verb/keylight/internal/wire"
	"github.com/d2verb/keylight/internal/wire/wiretest"
)

// Config describes how the fake daemon behaves.
type Config struct {
	// Version is reported in reply to a protocol version request.
	Version uint32
	// NoVersionReply makes the daemon ignore version requests, like daemons
	// that predate version negotiation.
	NoVersionReply bool
	// Noise is the number of unrelated packets sent ahead of each reply,
	// keyed by the id of the request being answered.
	Noise map[uint32]int
	// Controllers are reported in index order.
	Controllers []wiretest.Controller
	// Handler, when set, is consulted first. Returning handled=true replaces
	// the built-in reply with replies (which may be empty).
	Handler func(p wire.Packet) (replies []wire.Packet, handled bool)
}

// NoiseID is the packet id used for unrelated packets.
const NoiseID uint32 = 9999

// Daemon is a running fake daemon.
type Daemon struct {
	cfg      Config
	listener net.Listener

	mu       sync.Mutex
	received []wire.Packet
	conns    []net.Conn
	closed   chan struct{}
	wg       sync.WaitGroup
}

// Start starts a fake daemon that is stopped when the test ends.
func Start(t testing.TB, cfg Config) *Daemon {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start fake daemon: %v", err)
	}

	d := &Daemon{cfg: cfg, listener: listener, closed: make(chan struct{}, 64)}
	d.wg.Add(1)
	go d.accept()

	t.Cleanup(func() {
		listener.Close()
		d.mu.Lock()
		for _, c := range d.conns {
			c.Close()
		}
		d.mu.Unlock()
		d.wg.Wait()
	})
	return d
}

// Addr returns the host:port the daemon listens on.
func (d *Daemon) Addr() string {
	return d.listener.Addr().String()
}

func (d *Daemon) accept() {
	defer d.wg.Done()
	for {
		conn, err := d.listener.Accept()
		if err != nil {
			return // listener closed
		}
		d.mu.Lock()
		d.conns = append(d.conns, conn)
		d.mu.Unlock()
		d.wg.Add(1)
		go d.serve(conn)
	}
}

func (d *Daemon) serve(conn net.Conn) {
	defer d.wg.Done()
	defer func() {
		select {
		case d.closed <- struct{}{}:
		default:
		}
	}()
	defer conn.Close()

	for {
		p, err := wire.ReadPacket(conn)
		if err != nil {
			return
		}
		d.mu.Lock()
		d.received = append(d.received, p)
		d.mu.Unlock()

		for _, reply := range d.reply(p) {
			if err := wire.WritePacket(conn, reply); err != nil {
				return
			}
		}
	}
}

func (d *Daemon) reply(p wire.Packet) []wire.Packet {
	if d.cfg.Handler != nil {
		if replies, handled := d.cfg.Handler(p); handled {
			return replies
		}
	}

	var body []byte
	switch p.ID {
	case wire.RequestProtocolVersion:
		if d.cfg.NoVersionReply {
			return nil
		}
		body = wire.VersionPayload(d.cfg.Version)
	case wire.RequestControllerCount:
		body = wire.NewBuilder().PutUint32(uint32(len(d.cfg.Controllers))).Bytes()
	case wire.RequestControllerData:
		if int(p.DeviceIndex) >= len(d.cfg.Controllers) {
			return nil
		}
		version, err := wire.NewReader(p.Payload).Uint32()
		if err != nil {
			version = 0
		}
		body = d.cfg.Controllers[p.DeviceIndex].Encode(version)
	default:
		return nil
	}

	var out []wire.Packet
	for range d.cfg.Noise[p.ID] {
		out = append(out, wire.Packet{ID: NoiseID})
	}
	return append(out, wire.Packet{DeviceIndex: p.DeviceIndex, ID: p.ID, Payload: body})
}

// Packets returns a copy of every packet received so far.
func (d *Daemon) Packets() []wire.Packet {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]wire.Packet, len(d.received))
	copy(out, d.received)
	return out
}

// PacketsWithID returns the received packets with the given id, in order.
func (d *Daemon) PacketsWithID(id uint32) []wire.Packet {
	var out []wire.Packet
	for _, p := range d.Packets() {
		if p.ID == id {
			out = append(out, p)
		}
	}
	return out
}

// Connections returns the number of connections accepted so far.
func (d *Daemon) Connections() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.conns)
}

// WaitClosed blocks until a client connection has been closed by the peer
// and fully drained, so Packets reflects everything it sent.
func (d *Daemon) WaitClosed(t testing.TB) {
	t.Helper()
	select {
	case <-d.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the client to close its connection")
	}
}

// WaitFor blocks until at least n packets with the given id were received.
func (d *Daemon) WaitFor(t testing.TB, id uint32, n int) []wire.Packet {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		got := d.PacketsWithID(id)
		if len(got) >= n {
			return got
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d %s packets, got %d", n, wire.PacketName(id), len(got))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Colors decodes the color list of an update-LEDs packet.
func Colors(p wire.Packet) ([]uint32, error) {
	if p.ID != wire.UpdateLEDs {
		return nil, errors.New("not an update-leds packet")
	}
	r := wire.NewReader(p.Payload)
	if _, err := r.Uint32(); err != nil {
		return nil, err
	}
	n, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, 0, n)
	for range int(n) {
		c, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
