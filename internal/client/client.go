// Package client talks to the OpenRGB SDK daemon over TCP.
//
// A Client owns one connection and is not safe for concurrent use. Every
// request is a single write followed, where the protocol defines one, by a
// blocking read of the matching reply; each read and write is bounded by
// Options.Timeout.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/d2verb/keylight/internal/wire"
)

// DefaultAddress is where the daemon listens unless configured otherwise.
const DefaultAddress = "127.0.0.1:6742"

// DefaultClientName is the name announced to the daemon.
const DefaultClientName = "keylight"

// Options configures a connection.
type Options struct {
	Address    string
	Timeout    time.Duration
	ClientName string
	// MaxVersion is the highest protocol version offered to the daemon.
	MaxVersion uint32
	// VersionAttempts bounds the packets read while waiting for the version
	// reply. Daemons too old to answer are treated as version 0.
	VersionAttempts int
	// ReplyAttempts bounds the packets read while waiting for any other reply.
	ReplyAttempts int
	Logger        *slog.Logger
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Address:         DefaultAddress,
		Timeout:         750 * time.Millisecond,
		ClientName:      DefaultClientName,
		MaxVersion:      wire.MaxProtocolVersion,
		VersionAttempts: 3,
		ReplyAttempts:   5,
	}
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Address == "" {
		o.Address = d.Address
	}
	if o.Timeout <= 0 {
		o.Timeout = d.Timeout
	}
	if o.ClientName == "" {
		o.ClientName = d.ClientName
	}
	if o.MaxVersion == 0 || o.MaxVersion > wire.MaxProtocolVersion {
		o.MaxVersion = d.MaxVersion
	}
	if o.VersionAttempts <= 0 {
		o.VersionAttempts = d.VersionAttempts
	}
	if o.ReplyAttempts <= 0 {
		o.ReplyAttempts = d.ReplyAttempts
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Client is a connection to the daemon.
type Client struct {
	conn    net.Conn
	opts    Options
	version uint32
	logger  *slog.Logger
}

// Dial connects to the daemon. It does not perform the handshake; call
// SetClientName and NegotiateVersion before enumerating controllers.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	opts = opts.withDefaults()

	d := net.Dialer{Timeout: opts.Timeout}
	conn, err := d.DialContext(ctx, "tcp", opts.Address)
	if err != nil {
		return nil, &TransportError{Op: "connect to " + opts.Address, Err: err}
	}

	logger := opts.Logger.With("addr", opts.Address)
	logger.Debug("connected")
	return &Client{conn: conn, opts: opts, logger: logger}, nil
}

// Version returns the negotiated protocol version (0 before negotiation).
func (c *Client) Version() uint32 {
	return c.version
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) send(device, id uint32, payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.opts.Timeout)); err != nil {
		return &TransportError{Op: "send " + wire.PacketName(id), Err: err}
	}
	if err := wire.WritePacket(c.conn, wire.Packet{DeviceIndex: device, ID: id, Payload: payload}); err != nil {
		return &TransportError{Op: "send " + wire.PacketName(id), Err: err}
	}
	c.logger.Debug("sent packet", "id", id, "device", device, "bytes", len(payload))
	return nil
}

func (c *Client) receive() (wire.Packet, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.opts.Timeout)); err != nil {
		return wire.Packet{}, &TransportError{Op: "receive", Err: err}
	}
	cr := &countingReader{r: c.conn}
	p, err := wire.ReadPacket(cr)
	if err != nil {
		if wire.IsProtocolError(err) {
			return wire.Packet{}, err
		}
		if cr.n > 0 {
			err = fmt.Errorf("%w after %d bytes: %w", errPartialRead, cr.n, err)
		}
		return wire.Packet{}, &TransportError{Op: "receive", Err: err}
	}
	return p, nil
}

// errPartialRead marks a read that failed inside a packet. The stream is
// no longer aligned on a header and the connection cannot be reused.
var errPartialRead = errors.New("read stopped inside a packet")

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// expect reads packets until one with the given id arrives, discarding
// others, for at most ReplyAttempts packets.
func (c *Client) expect(id uint32) (wire.Packet, error) {
	for range c.opts.ReplyAttempts {
		p, err := c.receive()
		if err != nil {
			return wire.Packet{}, err
		}
		if p.ID == id {
			return p, nil
		}
		c.logger.Debug("discarding packet", "id", p.ID, "want", id)
	}
	return wire.Packet{}, &wire.ProtocolError{
		Kind: wire.UnexpectedReply,
		Op:   wire.PacketName(id),
		Err:  fmt.Errorf("no matching reply in %d packets", c.opts.ReplyAttempts),
	}
}

// SetClientName announces this client to the daemon. There is no reply.
func (c *Client) SetClientName() error {
	return c.send(0, wire.SetClientName, wire.ClientNamePayload(c.opts.ClientName))
}

// NegotiateVersion offers MaxVersion and returns the version both sides
// speak. A daemon that never answers is assumed to speak version 0. A
// timeout after part of a reply has arrived is returned as an error, since
// the stream can no longer be framed.
func (c *Client) NegotiateVersion() (uint32, error) {
	if err := c.send(0, wire.RequestProtocolVersion, wire.VersionPayload(c.opts.MaxVersion)); err != nil {
		return 0, err
	}

	for range c.opts.VersionAttempts {
		p, err := c.receive()
		if err != nil {
			if IsTimeout(err) && !errors.Is(err, errPartialRead) {
				break
			}
			return 0, err
		}
		if p.ID != wire.RequestProtocolVersion {
			c.logger.Debug("discarding packet", "id", p.ID, "want", wire.RequestProtocolVersion)
			continue
		}
		server, err := wire.NewReader(p.Payload).Uint32()
		if err != nil {
			return 0, fmt.Errorf("protocol version: %w", err)
		}
		c.version = min(server, c.opts.MaxVersion)
		c.logger.Debug("negotiated protocol version", "server", server, "version", c.version)
		return c.version, nil
	}

	c.version = 0
	c.logger.Warn("daemon did not report a protocol version, assuming 0")
	return 0, nil
}

// ControllerCount returns the number of controllers the daemon reports.
func (c *Client) ControllerCount() (uint32, error) {
	if err := c.send(0, wire.RequestControllerCount, nil); err != nil {
		return 0, err
	}
	p, err := c.expect(wire.RequestControllerCount)
	if err != nil {
		return 0, err
	}
	n, err := wire.NewReader(p.Payload).Uint32()
	if err != nil {
		return 0, fmt.Errorf("controller count: %w", err)
	}
	return n, nil
}

// Controller fetches and parses the description of one controller using
// the negotiated protocol version.
func (c *Client) Controller(index uint32) (*wire.Controller, error) {
	var payload []byte
	if c.version >= 1 {
		payload = wire.VersionPayload(c.version)
	}
	if err := c.send(index, wire.RequestControllerData, payload); err != nil {
		return nil, err
	}
	p, err := c.expect(wire.RequestControllerData)
	if err != nil {
		return nil, err
	}
	ctrl, err := wire.ParseController(index, p.Payload, c.version)
	if err != nil {
		return nil, &DeviceError{Index: index, Err: err}
	}
	return ctrl, nil
}

// Controllers fetches every controller in index order.
func (c *Client) Controllers() ([]*wire.Controller, error) {
	n, err := c.ControllerCount()
	if err != nil {
		return nil, err
	}
	out := make([]*wire.Controller, 0, min(n, 64))
	for i := range n {
		ctrl, err := c.Controller(i)
		if err != nil {
			return nil, err
		}
		out = append(out, ctrl)
	}
	return out, nil
}

// SetCustomMode switches a controller to direct per-LED control.
func (c *Client) SetCustomMode(device uint32) error {
	return c.send(device, wire.SetCustomMode, nil)
}

// UpdateLEDs writes one color per LED, in LED index order, to a controller.
func (c *Client) UpdateLEDs(device uint32, colors []uint32) error {
	return c.send(device, wire.UpdateLEDs, wire.UpdateLEDsPayload(colors))
}
