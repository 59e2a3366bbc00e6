// Package outcome classifies how an example ended.
package outcome

import (
	"fmt"

	"github.com/sarchlab/behave/signal"
)

// Kind is the closed set of example outcomes.
type Kind int

// Enumeration of outcome kinds.
const (
	Passed Kind = iota
	Failed
	Faulted
	Skipped
	AbortedSilently
	AbortedWithMessage
)

func (k Kind) String() string {
	switch k {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Faulted:
		return "faulted"
	case Skipped:
		return "skipped"
	case AbortedSilently:
		return "abortedSilently"
	case AbortedWithMessage:
		return "abortedWithMessage"
	default:
		return "unknown"
	}
}

// An Outcome is the final classification of one example.
type Outcome struct {
	Kind Kind

	// Reason holds the failure reason, the skip reason, or the stop message.
	Reason string

	// Err holds the unexpected error of a faulted example.
	Err error
}

// Classify maps the primary signal of an example to its outcome. A nil signal
// means the example passed.
func Classify(s *signal.Signal) Outcome {
	if s == nil {
		return Outcome{Kind: Passed}
	}

	switch s.Kind() {
	case signal.KindFailure:
		return Outcome{Kind: Failed, Reason: s.Message()}
	case signal.KindSkip:
		return Outcome{Kind: Skipped, Reason: s.Message()}
	case signal.KindStopSilent:
		return Outcome{Kind: AbortedSilently}
	case signal.KindStopWithMessage:
		return Outcome{Kind: AbortedWithMessage, Reason: s.Message()}
	default:
		err := s.Cause()
		if err == nil {
			err = s
		}

		return Outcome{Kind: Faulted, Reason: s.Message(), Err: err}
	}
}

// IsFailure tells if the outcome counts as a failure.
func (o Outcome) IsFailure() bool {
	switch o.Kind {
	case Failed, Faulted, AbortedWithMessage:
		return true
	default:
		return false
	}
}

// IsUnexpected tells if the outcome is an unanticipated fault rather than a
// designed failure.
func (o Outcome) IsUnexpected() bool {
	return o.Kind == Faulted
}

// IsSkip tells if the example was skipped.
func (o Outcome) IsSkip() bool {
	return o.Kind == Skipped
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return o.Kind.String()
	}

	return fmt.Sprintf("%s (%s)", o.Kind, o.Reason)
}
