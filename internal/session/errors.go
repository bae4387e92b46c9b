package session

import (
	"errors"
	"fmt"
)

// Kind classifies why Connect failed.
type Kind string

const (
	KindTransport       Kind = "transport"
	KindProtocol        Kind = "protocol"
	KindNoControllers   Kind = "no controllers"
	KindMalformedDevice Kind = "malformed device"
	KindNoKeyboard      Kind = "no keyboard"
	KindNoUsableLEDs    Kind = "no usable leds"
)

// Hint returns guidance for the user.
func (k Kind) Hint() string {
	switch k {
	case KindTransport:
		return "Is OpenRGB running with its SDK server enabled? Check the host and port."
	case KindProtocol:
		return "The daemon sent data this client does not understand. Check that the address points at an OpenRGB SDK server."
	case KindNoControllers:
		return "OpenRGB reports zero controllers. Ensure your keyboard is detected."
	case KindMalformedDevice:
		return "A device description could not be read. Try updating OpenRGB."
	case KindNoKeyboard:
		return "OpenRGB did not report any keyboard devices."
	case KindNoUsableLEDs:
		return "No usable LED names found for this keyboard in OpenRGB."
	default:
		return ""
	}
}

// ConnectError indicates Connect failed. No session exists and the
// connection, if one was opened, has been closed.
type ConnectError struct {
	Kind Kind
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect: %s: %v", e.Kind, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a connect failure.
func KindOf(err error) (Kind, bool) {
	var ce *ConnectError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

// ErrClosed is returned by Render after Close.
var ErrClosed = errors.New("session closed")
