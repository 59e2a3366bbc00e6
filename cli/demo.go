package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/sarchlab/behave/datarecording"
	"github.com/sarchlab/behave/examples/quickdemo"
	"github.com/sarchlab/behave/execution"
	"github.com/sarchlab/behave/id"
	"github.com/sarchlab/behave/monitoring"
	"github.com/sarchlab/behave/runner"
	"github.com/sarchlab/behave/tracing"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the bundled demo suites.",
	Long: "`demo` runs the demo suites, prints the outcome of every " +
		"example and the summary of every suite, and exits with 1 if a " +
		"suite has not succeeded.",
	Run: func(cmd *cobra.Command, _ []string) {
		c, err := configFromFlags(cmd)
		if err != nil {
			log.Fatalf("Error reading flags: %v", err)
		}

		succeeded, err := runDemo(cmd.Context(), c, cmd.OutOrStdout())
		if err != nil {
			log.Fatalf("Error running demo: %v", err)
		}

		if !succeeded {
			atexit.Exit(1)
		}

		atexit.Exit(0)
	},
}

// runDemo runs every demo suite and tells if all of them succeeded.
func runDemo(ctx context.Context, c config, out io.Writer) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger(c.LogLevel)
	if err != nil {
		return false, err
	}
	defer func() { _ = logger.Sync() }()

	r := runner.MakeBuilder().WithLogger(logger).Build()
	defer r.Close()

	r.AddReporter(newTextReporter(out))
	r.AcceptHook(tracing.NewLogHook(logger))

	stateTime := tracing.NewStateTimeTracer(nil, execution.Idle, execution.Done)
	r.Executor().AcceptHook(stateTime)

	runID := id.NewXIDGenerator().Generate()
	logger.Info("demo started", zap.String("run", runID))

	if c.DBPath != "" {
		recorder := datarecording.New(c.DBPath)
		defer recorder.Close()

		r.AcceptHook(datarecording.NewResultRecorder(recorder, runID))
	}

	if c.Monitor {
		m, err := startMonitor(c, logger)
		if err != nil {
			return false, err
		}
		defer stopMonitor(m, logger)

		r.AcceptHook(m)
	}

	succeeded := true
	for _, s := range quickdemo.Suites(&quickdemo.Trace{}) {
		fmt.Fprintf(out, "== %s\n", s.Name)

		report := r.Run(ctx, s.Suite)
		if !report.Summary.HasSucceeded() {
			succeeded = false
		}
	}

	fmt.Fprintf(out,
		"average example %s; setup %s, body %s, teardown %s\n",
		stateTime.AverageTime(),
		stateTime.TimeIn(execution.RunningBefore)+
			stateTime.TimeIn(execution.RunningJustBefore),
		stateTime.TimeIn(execution.RunningBody),
		stateTime.TimeIn(execution.RunningAfter))

	return succeeded, nil
}

func startMonitor(c config, logger *zap.Logger) (*monitoring.Monitor, error) {
	m := monitoring.NewMonitor().
		WithLogger(logger).
		WithPortNumber(c.MonitorPort)

	if _, err := m.StartServer(); err != nil {
		return nil, err
	}

	if c.OpenBrowser {
		if err := m.OpenInBrowser(); err != nil {
			logger.Warn("cannot open browser", zap.Error(err))
		}
	}

	return m, nil
}

func stopMonitor(m *monitoring.Monitor, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := m.StopServer(ctx); err != nil {
		logger.Warn("cannot stop monitor", zap.Error(err))
	}
}

// textReporter prints one line per example and the summary of each suite.
type textReporter struct {
	out io.Writer
}

func newTextReporter(out io.Writer) *textReporter {
	return &textReporter{out: out}
}

func (t *textReporter) ExampleFinished(r execution.Result) {
	fmt.Fprintf(t.out, "%-20s %s\n", r.Outcome.Kind, r.Metadata.FullName())

	if r.Outcome.Reason != "" {
		fmt.Fprintf(t.out, "%20s %s\n", "", r.Outcome.Reason)
	}

	for _, sig := range r.Teardown {
		fmt.Fprintf(t.out, "%20s teardown: %s\n", "", sig)
	}
}

func (t *textReporter) SuiteFinished(r runner.Report) {
	s := r.Summary
	fmt.Fprintf(t.out,
		"executed %d, skipped %d, failed %d (%d unexpected), "+
			"teardown failures %d\n",
		s.ExecutionCount, s.SkipCount, s.TotalFailureCount(),
		s.UnexpectedExceptionCount, s.TeardownFailureCount)
}
