// Package signal defines the control-flow values that hooks and example
// bodies raise to end an example early.
//
// A body raises a signal either by returning it as an error or by panicking
// with it. Any other error or panic value is treated as an unexpected fault.
package signal

import (
	"errors"
	"fmt"
)

// Kind is the closed set of signal kinds.
type Kind int

// Enumeration of signal kinds.
const (
	KindFailure Kind = iota
	KindSkip
	KindStopSilent
	KindStopWithMessage
	KindFault
)

func (k Kind) String() string {
	switch k {
	case KindFailure:
		return "failure"
	case KindSkip:
		return "skip"
	case KindStopSilent:
		return "stopSilent"
	case KindStopWithMessage:
		return "stopWithMessage"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// A Signal ends the running part of an example chain.
type Signal struct {
	kind    Kind
	message string
	cause   error
}

// Fail raises an assertion-style failure.
func Fail(reason string) *Signal {
	return &Signal{kind: KindFailure, message: reason}
}

// Failf is Fail with a format string.
func Failf(format string, args ...any) *Signal {
	return Fail(fmt.Sprintf(format, args...))
}

// Skip ends the example without counting it as a failure.
func Skip(reason string) *Signal {
	return &Signal{kind: KindSkip, message: reason}
}

// StopSilently ends the example deliberately. The example is neither a
// failure nor a fault.
func StopSilently() *Signal {
	return &Signal{kind: KindStopSilent}
}

// Stop ends the example deliberately with a message. The example counts as a
// failure but not as an unexpected fault.
func Stop(message string) *Signal {
	return &Signal{kind: KindStopWithMessage, message: message}
}

// Fault wraps an unexpected error.
func Fault(err error) *Signal {
	if err == nil {
		err = errors.New("nil fault")
	}

	return &Signal{kind: KindFault, message: err.Error(), cause: err}
}

// Kind returns the kind of the signal.
func (s *Signal) Kind() Kind {
	return s.kind
}

// Message returns the reason or message the signal was raised with.
func (s *Signal) Message() string {
	return s.message
}

// Cause returns the unexpected error behind a fault.
func (s *Signal) Cause() error {
	return s.cause
}

func (s *Signal) Error() string {
	if s.message == "" {
		return s.kind.String()
	}

	return s.kind.String() + ": " + s.message
}

func (s *Signal) Unwrap() error {
	return s.cause
}

// From converts an error returned by a body into a signal. A nil error gives
// a nil signal. Wrapped signals are found with errors.As. Any other error is
// a fault.
func From(err error) *Signal {
	if err == nil {
		return nil
	}

	var s *Signal
	if errors.As(err, &s) {
		return s
	}

	return Fault(err)
}

// FromPanic converts a recovered panic value into a signal.
func FromPanic(v any) *Signal {
	switch p := v.(type) {
	case *Signal:
		return p
	case error:
		var s *Signal
		if errors.As(p, &s) {
			return s
		}

		return Fault(fmt.Errorf("panic: %w", p))
	default:
		return Fault(fmt.Errorf("panic: %v", p))
	}
}

// Raise panics with the signal. It lets helpers that cannot return an error
// end an example.
func Raise(s *Signal) {
	panic(s)
}
