// Package runner runs every example of a suite, one after another.
package runner

import (
	"context"

	"go.uber.org/zap"

	"github.com/sarchlab/behave/execution"
	"github.com/sarchlab/behave/outcome"
	"github.com/sarchlab/behave/signal"
	"github.com/sarchlab/behave/tracing"
	"github.com/sarchlab/behave/tree"
)

// A Reporter is told about every finished example and about the end of the
// run.
type Reporter interface {
	ExampleFinished(r execution.Result)
	SuiteFinished(r Report)
}

// Report is the result of running a suite.
type Report struct {
	Suite   string
	Results []execution.Result
	Summary outcome.Summary

	// BeforeSuite is the signal that stopped the before-suite hooks. When it
	// is set, no example chain ran.
	BeforeSuite *signal.Signal

	// AfterSuite holds the signals raised by after-suite hooks.
	AfterSuite []*signal.Signal
}

// A Runner runs the examples of a suite depth first, in declaration order.
type Runner struct {
	tracing.HookableBase

	executor     *execution.Executor
	ownsExecutor bool
	logger       *zap.Logger
	reporters    []Reporter
}

// AddReporter registers a reporter. Reporters are called in the order they
// were added.
func (r *Runner) AddReporter(reporter Reporter) {
	r.reporters = append(r.reporters, reporter)
}

// Executor returns the executor that runs the examples.
func (r *Runner) Executor() *execution.Executor {
	return r.executor
}

// Close releases the executor if the runner created it.
func (r *Runner) Close() {
	if r.ownsExecutor {
		r.executor.Close()
	}
}

// Run freezes the suite, runs its suite hooks and its examples, and returns
// the report.
func (r *Runner) Run(ctx context.Context, s *tree.Suite) Report {
	s.Freeze()

	report := Report{Suite: s.Name()}

	r.InvokeHook(tracing.HookCtx{
		Domain: r,
		Pos:    tracing.HookPosSuiteStart,
		Item:   s,
	})

	examples := s.Examples()
	r.logger.Info("suite started",
		zap.String("suite", s.Name()),
		zap.Int("examples", len(examples)),
	)

	report.BeforeSuite = r.runBeforeSuite(ctx, s)

	for i, e := range examples {
		meta := e.Metadata(i)
		r.InvokeHook(tracing.HookCtx{
			Domain: r,
			Pos:    tracing.HookPosExampleStart,
			Item:   meta,
		})

		var result execution.Result
		if report.BeforeSuite != nil {
			result = execution.Result{
				Metadata: meta,
				Outcome:  outcome.Classify(report.BeforeSuite),
				Primary:  report.BeforeSuite,
			}
		} else {
			result = r.executor.Run(ctx, e, i)
		}

		r.finishExample(&report, result)
	}

	report.AfterSuite = r.runAfterSuite(ctx, s)
	report.Summary.AddTeardown(report.AfterSuite...)

	r.logger.Info("suite finished",
		zap.String("suite", s.Name()),
		zap.Int("executed", report.Summary.ExecutionCount),
		zap.Int("skipped", report.Summary.SkipCount),
		zap.Int("failed", report.Summary.TotalFailureCount()),
		zap.Int("teardownFailed", report.Summary.TeardownFailureCount),
	)

	for _, reporter := range r.reporters {
		reporter.SuiteFinished(report)
	}

	r.InvokeHook(tracing.HookCtx{
		Domain: r,
		Pos:    tracing.HookPosSuiteEnd,
		Item:   report,
	})

	return report
}

func (r *Runner) finishExample(report *Report, result execution.Result) {
	report.Results = append(report.Results, result)
	report.Summary.Add(result.Outcome, result.Teardown...)

	r.logger.Debug("example finished",
		zap.String("example", result.Metadata.FullName()),
		zap.Stringer("outcome", result.Outcome),
		zap.Duration("duration", result.Duration),
	)

	for _, reporter := range r.reporters {
		reporter.ExampleFinished(result)
	}

	r.InvokeHook(tracing.HookCtx{
		Domain: r,
		Pos:    tracing.HookPosExampleEnd,
		Item:   result,
	})
}

// runBeforeSuite stops at the first signal and returns it.
func (r *Runner) runBeforeSuite(
	ctx context.Context,
	s *tree.Suite,
) *signal.Signal {
	for _, h := range s.BeforeSuiteHooks() {
		if sig := r.executor.RunSuiteHook(ctx, s, h); sig != nil {
			r.logger.Warn("before-suite hook raised",
				zap.String("suite", s.Name()),
				zap.Error(sig),
			)

			return sig
		}
	}

	return nil
}

// runAfterSuite attempts every after-suite hook.
func (r *Runner) runAfterSuite(
	ctx context.Context,
	s *tree.Suite,
) []*signal.Signal {
	var sigs []*signal.Signal

	for _, h := range s.AfterSuiteHooks() {
		if sig := r.executor.RunSuiteHook(ctx, s, h); sig != nil {
			r.logger.Warn("after-suite hook raised",
				zap.String("suite", s.Name()),
				zap.Error(sig),
			)

			sigs = append(sigs, sig)
		}
	}

	return sigs
}
