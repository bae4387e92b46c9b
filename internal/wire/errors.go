package wire

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a protocol failure.
type ErrorKind string

const (
	BadMagic        ErrorKind = "bad magic"
	Truncated       ErrorKind = "truncated"
	UnexpectedReply ErrorKind = "unexpected reply"
	Malformed       ErrorKind = "malformed"
)

// ProtocolError indicates the daemon sent bytes this client cannot accept.
type ProtocolError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *ProtocolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol %s: %s", e.Kind, e.Op)
	}
	return fmt.Sprintf("protocol %s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func truncated(op string, err error) error {
	return &ProtocolError{Kind: Truncated, Op: op, Err: err}
}

func isKind(err error, kind ErrorKind) bool {
	var pe *ProtocolError
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsProtocolError reports whether err is any protocol failure.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsBadMagic reports whether err indicates a header with the wrong magic tag.
func IsBadMagic(err error) bool { return isKind(err, BadMagic) }

// IsTruncated reports whether err indicates a read past the end of the data.
func IsTruncated(err error) bool { return isKind(err, Truncated) }

// IsUnexpectedReply reports whether err indicates the expected reply never arrived.
func IsUnexpectedReply(err error) bool { return isKind(err, UnexpectedReply) }
