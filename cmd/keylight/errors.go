package main

import (
	"errors"
	"fmt"

	"github.com/d2verb/keylight/internal/client"
	"github.com/d2verb/keylight/internal/session"
)

// Exit codes for CLI commands.
const (
	exitSuccess     = 0
	exitError       = 1
	exitConfig      = 2
	exitUnreachable = 3
	exitNoKeyboard  = 4
)

// ExitError represents an error that should cause the process to exit with a specific code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func errConfig(err error) *ExitError {
	return &ExitError{
		Code:    exitConfig,
		Message: fmt.Sprintf("Invalid configuration: %v", err),
	}
}

func errInvalidFlag(flag, value, msg string) *ExitError {
	return &ExitError{
		Code:    exitConfig,
		Message: fmt.Sprintf("Invalid --%s '%s': %s", flag, value, msg),
	}
}

func errUnreachable(addr string, err error) *ExitError {
	return &ExitError{
		Code:    exitUnreachable,
		Message: fmt.Sprintf("OpenRGB SDK server at %s is unreachable: %v\n%s", addr, err, session.KindTransport.Hint()),
	}
}

// mapConnectError converts a session connect failure to an exit code and a
// message carrying the failure's hint.
func mapConnectError(addr string, err error) error {
	kind, ok := session.KindOf(err)
	if !ok {
		return err
	}
	code := exitError
	switch kind {
	case session.KindTransport:
		return errUnreachable(addr, err)
	case session.KindNoControllers, session.KindNoKeyboard, session.KindNoUsableLEDs:
		code = exitNoKeyboard
	}
	return &ExitError{
		Code:    code,
		Message: fmt.Sprintf("%v\n%s", err, kind.Hint()),
	}
}

// mapClientError converts a raw client failure to an exit code.
func mapClientError(addr string, err error) error {
	if client.IsTransport(err) {
		return errUnreachable(addr, err)
	}
	return err
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return exitError
}
