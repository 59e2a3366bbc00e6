package execution

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrWorkerStopped is returned when work is marshaled onto a stopped main
// worker.
var ErrWorkerStopped = errors.New("main worker stopped")

type mainKey struct{}

// A MainWorker is the single execution context that main-affinity bodies run
// on. It is one goroutine locked to one OS thread.
//
// Code running on the worker is handed a context that carries the worker.
// Marshaling with such a context runs inline, and awaiting with it keeps
// serving queued jobs, so work bounced back onto the worker never deadlocks.
type MainWorker struct {
	jobs     chan func()
	quit     chan struct{}
	stopOnce sync.Once
}

// NewMainWorker starts a main worker.
func NewMainWorker() *MainWorker {
	w := &MainWorker{
		jobs: make(chan func()),
		quit: make(chan struct{}),
	}

	go w.loop()

	return w
}

// loop serves jobs until the worker stops. A job that ends the goroutine
// takes the locked thread with it, so a fresh loop takes over on a new one.
func (w *MainWorker) loop() {
	runtime.LockOSThread()

	stopped := false
	defer func() {
		if !stopped {
			go w.loop()
		}
	}()

	for {
		select {
		case job := <-w.jobs:
			job()
		case <-w.quit:
			stopped = true
			runtime.UnlockOSThread()

			return
		}
	}
}

// Stop ends the worker once the current job returns.
func (w *MainWorker) Stop() {
	w.stopOnce.Do(func() {
		close(w.quit)
	})
}

// Owns tells if the context was handed out by this worker.
func (w *MainWorker) Owns(ctx context.Context) bool {
	owner, _ := ctx.Value(mainKey{}).(*MainWorker)
	return owner == w
}

// Detach returns a context that no worker owns, for code that moves to
// another goroutine.
func (w *MainWorker) Detach(ctx context.Context) context.Context {
	if !w.Owns(ctx) {
		return ctx
	}

	return context.WithValue(ctx, mainKey{}, (*MainWorker)(nil))
}

// Run executes fn on the worker and waits for it to return. It returns
// ErrBodyExited if fn ends the worker goroutine instead of returning. Called
// on the worker, fn runs inline and such an exit unwinds the caller too.
func (w *MainWorker) Run(
	ctx context.Context,
	fn func(ctx context.Context),
) error {
	if w.Owns(ctx) {
		fn(ctx)
		return nil
	}

	select {
	case <-w.quit:
		return ErrWorkerStopped
	default:
	}

	done := make(chan struct{})
	returned := false
	job := func() {
		defer close(done)
		fn(context.WithValue(ctx, mainKey{}, w))
		returned = true
	}

	select {
	case w.jobs <- job:
	case <-w.quit:
		return ErrWorkerStopped
	}

	<-done

	if !returned {
		return ErrBodyExited
	}

	return nil
}

// Await blocks until done is closed. Called on the worker, it runs the jobs
// queued in the meantime. If one of them ends the worker goroutine, Await
// keeps serving while the goroutine unwinds, so the enclosing job completes
// only after the awaited work settles.
func (w *MainWorker) Await(ctx context.Context, done <-chan struct{}) {
	if !w.Owns(ctx) {
		<-done
		return
	}

	settled := false
	defer func() {
		if !settled {
			w.serve(done)
		}
	}()

	w.serve(done)
	settled = true
}

func (w *MainWorker) serve(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case job := <-w.jobs:
			job()
		}
	}
}
