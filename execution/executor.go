// Package execution runs one example with the hooks that apply to it.
package execution

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sarchlab/behave/chain"
	"github.com/sarchlab/behave/hook"
	"github.com/sarchlab/behave/outcome"
	"github.com/sarchlab/behave/signal"
	"github.com/sarchlab/behave/tracing"
	"github.com/sarchlab/behave/tree"
)

// ErrExampleNotRun is the fault reported when the around hooks of an example
// all return without any of them reaching the example.
var ErrExampleNotRun = errors.New(
	"around hook returned without running the example")

// ErrBodyExited is the fault reported when a body ends its goroutine, as
// runtime.Goexit does, instead of returning.
var ErrBodyExited = errors.New("body exited its goroutine without returning")

// Result is what the executor reports for one example.
type Result struct {
	Metadata hook.Metadata

	// Outcome is classified from Primary.
	Outcome outcome.Outcome

	// Primary is the first signal raised by a before hook, a just-before
	// hook, the body, or an around hook. Nil if none was raised.
	Primary *signal.Signal

	// Teardown holds the signals raised by after hooks, and by around hooks
	// once a primary signal was already captured, in the order raised.
	Teardown []*signal.Signal

	Duration time.Duration
}

// An Executor runs examples one at a time. It holds no state about the shape
// of the tree.
type Executor struct {
	tracing.HookableBase

	main     *MainWorker
	ownsMain bool
	logger   *zap.Logger
}

// MainWorker returns the worker that main-affinity bodies run on.
func (e *Executor) MainWorker() *MainWorker {
	return e.main
}

// Close stops the main worker if the executor started it.
func (e *Executor) Close() {
	if e.ownsMain {
		e.main.Stop()
	}
}

// Run executes the example and returns its result. Teardown hooks always run,
// whatever the example raised. The index is the position of the example in
// run order.
func (e *Executor) Run(
	ctx context.Context,
	example *tree.Example,
	index int,
) Result {
	leave := example.Suite().EnterExample()
	defer leave()

	meta := example.Metadata(index)
	r := &exampleRun{
		executor: e,
		example:  example,
		chain:    chain.Build(example),
		ec:       newExecutionContext(meta),
	}

	start := time.Now()

	r.transition(Idle)
	r.wrap(ctx, 0)
	r.finishAfter(ctx)

	r.transition(Done)

	return Result{
		Metadata: meta,
		Outcome:  outcome.Classify(r.primary),
		Primary:  r.primary,
		Teardown: r.teardown,
		Duration: time.Since(start),
	}
}

// RunSuiteHook runs one before-suite or after-suite hook and returns the
// signal it raised, if any.
func (e *Executor) RunSuiteHook(
	ctx context.Context,
	s *tree.Suite,
	h tree.SuiteHook,
) *signal.Signal {
	meta := hook.Metadata{Name: s.Name(), Index: -1}
	return e.invoke(ctx, meta, h.Body, h.Affinity)
}

// invoke runs a non-wrapping body where its affinity and mode require and
// converts whatever it raised into a signal.
func (e *Executor) invoke(
	ctx context.Context,
	m hook.Metadata,
	body hook.Body,
	affinity hook.Affinity,
) *signal.Signal {
	return e.dispatch(ctx, affinity,
		func(hctx context.Context) *signal.Signal {
			return guard(func() error {
				return body.Call(hctx, m)
			})
		})
}

// dispatch marshals fn onto the main worker for main-affinity bodies and onto
// a goroutine of its own otherwise, so that a body ending its goroutine never
// takes the executor with it. It always waits for fn to finish.
func (e *Executor) dispatch(
	ctx context.Context,
	affinity hook.Affinity,
	fn func(context.Context) *signal.Signal,
) *signal.Signal {
	if affinity == hook.MainAffinity {
		var sig *signal.Signal
		err := e.main.Run(ctx, func(mctx context.Context) {
			sig = fn(mctx)
		})
		if err != nil {
			return signal.Fault(err)
		}

		return sig
	}

	return e.spawn(ctx, fn)
}

func (e *Executor) spawn(
	ctx context.Context,
	fn func(context.Context) *signal.Signal,
) *signal.Signal {
	var sig *signal.Signal
	returned := false
	done := make(chan struct{})

	go func() {
		defer close(done)
		sig = fn(e.main.Detach(ctx))
		returned = true
	}()

	e.main.Await(ctx, done)

	if !returned {
		return signal.Fault(ErrBodyExited)
	}

	return sig
}

// guard calls a body and turns its error or panic into a signal.
func guard(call func() error) (sig *signal.Signal) {
	defer func() {
		if v := recover(); v != nil {
			sig = signal.FromPanic(v)
		}
	}()

	return signal.From(call())
}

type exampleRun struct {
	executor *Executor
	example  *tree.Example
	chain    chain.Chain
	ec       *ExecutionContext

	primary  *signal.Signal
	teardown []*signal.Signal

	afterStarted bool
	afterNext    int
}

func (r *exampleRun) transition(s State) {
	meta := r.ec.Metadata()
	r.executor.logger.Debug("state change",
		zap.String("example", meta.FullName()),
		zap.Stringer("state", s),
	)

	r.executor.InvokeHook(tracing.HookCtx{
		Domain: r.executor,
		Pos:    tracing.HookPosStateChange,
		Item:   s,
		Detail: meta,
	})
}

// wrap runs the around hook at index i with a continuation that runs the
// rest of the example. Past the last around hook it runs the example itself.
func (r *exampleRun) wrap(ctx context.Context, i int) {
	if i == len(r.chain.Around) {
		r.runCore(ctx)
		return
	}

	d := r.chain.Around[i]
	sig := r.executor.dispatch(ctx, d.Affinity(),
		func(hctx context.Context) *signal.Signal {
			called := false
			run := func() {
				if called {
					r.executor.logger.Warn("around hook continued twice",
						zap.String("example", r.ec.Metadata().FullName()))
					return
				}

				called = true
				r.wrap(hctx, i+1)
			}

			return guard(func() error {
				return d.Body().CallAround(hctx, r.ec.Metadata(), run)
			})
		})

	if sig == nil {
		return
	}

	if r.primary == nil {
		r.primary = sig
		return
	}

	r.teardown = append(r.teardown, sig)
}

func (r *exampleRun) runCore(ctx context.Context) {
	if !r.ec.markRan() {
		return
	}

	r.transition(RunningBefore)
	if r.runSequence(ctx, r.chain.Before) {
		r.transition(RunningJustBefore)
		if r.runSequence(ctx, r.chain.JustBefore) {
			r.transition(RunningBody)
			r.primary = r.executor.invoke(ctx, r.ec.Metadata(),
				r.example.Body(), r.example.Affinity())
		}
	}

	r.runAfter(ctx)
}

// runSequence runs the hooks in order and stops at the first signal, which
// becomes the primary signal. It tells if all the hooks completed.
func (r *exampleRun) runSequence(
	ctx context.Context,
	hooks []hook.Descriptor,
) bool {
	for _, d := range hooks {
		sig := r.executor.invoke(ctx, r.ec.Metadata(), d.Body(), d.Affinity())
		if sig != nil {
			r.primary = sig
			return false
		}
	}

	return true
}

// runAfter attempts every after hook not attempted yet, whatever the earlier
// ones raised.
func (r *exampleRun) runAfter(ctx context.Context) {
	if !r.afterStarted {
		r.afterStarted = true
		r.transition(RunningAfter)
	}

	for r.afterNext < len(r.chain.After) {
		d := r.chain.After[r.afterNext]
		r.afterNext++

		sig := r.executor.invoke(ctx, r.ec.Metadata(), d.Body(), d.Affinity())
		if sig != nil {
			r.teardown = append(r.teardown, sig)
		}
	}
}

// finishAfter runs the after hooks that the around hooks kept from running.
// Either no around hook reached the example, or a main-affinity body exited
// the worker goroutine and unwound the example part way through.
func (r *exampleRun) finishAfter(ctx context.Context) {
	if r.afterStarted && r.afterNext == len(r.chain.After) {
		return
	}

	if r.primary == nil {
		if r.ec.HasExampleRun() {
			r.primary = signal.Fault(ErrBodyExited)
		} else {
			r.primary = signal.Fault(ErrExampleNotRun)
		}
	}

	r.runAfter(ctx)
}
