package datarecording

import (
	"strings"

	"github.com/sarchlab/behave/execution"
	"github.com/sarchlab/behave/tracing"
)

// ResultTable is the table that a ResultRecorder writes to.
const ResultTable = "example_results"

// ResultEntry is one row of the result table.
type ResultEntry struct {
	RunID            string
	ExampleID        string
	Path             string
	Outcome          string
	Reason           string
	TeardownFailures int
	DurationSec      float64
}

// A ResultRecorder is a tracing hook that stores one row per finished
// example. Attach it to a runner.
type ResultRecorder struct {
	recorder DataRecorder
	runID    string
}

// NewResultRecorder creates the result table and returns a recorder that
// tags every row with runID.
func NewResultRecorder(recorder DataRecorder, runID string) *ResultRecorder {
	recorder.CreateTable(ResultTable, ResultEntry{})

	return &ResultRecorder{
		recorder: recorder,
		runID:    runID,
	}
}

// Func records the result carried by example-end invocations and flushes at
// the end of the suite.
func (r *ResultRecorder) Func(ctx tracing.HookCtx) {
	switch ctx.Pos {
	case tracing.HookPosExampleEnd:
		result, ok := ctx.Item.(execution.Result)
		if !ok {
			return
		}

		r.recorder.InsertData(ResultTable, r.entry(result))
	case tracing.HookPosSuiteEnd:
		r.recorder.Flush()
	}
}

func (r *ResultRecorder) entry(result execution.Result) ResultEntry {
	return ResultEntry{
		RunID:            r.runID,
		ExampleID:        result.Metadata.ID,
		Path:             strings.Join(result.Metadata.Path, " / "),
		Outcome:          result.Outcome.Kind.String(),
		Reason:           result.Outcome.Reason,
		TeardownFailures: len(result.Teardown),
		DurationSec:      result.Duration.Seconds(),
	}
}
