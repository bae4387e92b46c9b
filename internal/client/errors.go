package client

import (
	"errors"
	"fmt"
	"net"
	"os"
)

// TransportError indicates the connection to the daemon failed: refused,
// reset, closed or timed out.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a connection failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsTimeout reports whether err is an I/O deadline expiry.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// DeviceError indicates a controller record could not be parsed.
type DeviceError struct {
	Index uint32
	Err   error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("controller %d: %v", e.Index, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// IsDeviceError reports whether err indicates an unparseable controller record.
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}
