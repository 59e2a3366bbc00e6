package outcome

import "github.com/sarchlab/behave/signal"

// Summary sums the outcomes of a run.
type Summary struct {
	ExecutionCount           int `json:"execution_count"`
	SkipCount                int `json:"skip_count"`
	FailureCount             int `json:"failure_count"`
	UnexpectedExceptionCount int `json:"unexpected_exception_count"`
	TeardownFailureCount     int `json:"teardown_failure_count"`
}

// Add counts one example with its outcome and the signals raised by its
// teardown hooks.
func (s *Summary) Add(o Outcome, teardown ...*signal.Signal) {
	s.ExecutionCount++

	switch {
	case o.IsSkip():
		s.SkipCount++
	case o.IsUnexpected():
		s.UnexpectedExceptionCount++
	case o.IsFailure():
		s.FailureCount++
	}

	s.AddTeardown(teardown...)
}

// AddTeardown counts teardown signals that are not tied to an example, such
// as the ones raised by after-suite hooks.
func (s *Summary) AddTeardown(teardown ...*signal.Signal) {
	for _, sig := range teardown {
		if Classify(sig).IsFailure() {
			s.TeardownFailureCount++
		}
	}
}

// TotalFailureCount is the number of failed examples, faults included.
func (s Summary) TotalFailureCount() int {
	return s.FailureCount + s.UnexpectedExceptionCount
}

// HasSucceeded tells if no example failed and no teardown hook failed.
func (s Summary) HasSucceeded() bool {
	return s.TotalFailureCount() == 0 && s.TeardownFailureCount == 0
}
