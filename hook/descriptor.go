package hook

import (
	"context"
	"fmt"
)

// A Descriptor is a hook as registered on a group. Descriptors are values;
// once registered they never change.
type Descriptor struct {
	phase    Phase
	affinity Affinity
	body     Body
}

// New creates a descriptor for the given phase. Around phases need a
// wrapping body and every other phase needs a non-wrapping one.
func New(phase Phase, body Body) Descriptor {
	if body.IsZero() {
		panic("hook body must not be nil")
	}

	if (phase == PhaseAround) != body.IsAround() {
		panic(fmt.Sprintf("body of kind %s cannot be used as %s",
			body.Kind(), phase))
	}

	return Descriptor{phase: phase, body: body}
}

// Phase returns when the hook runs.
func (d Descriptor) Phase() Phase {
	return d.phase
}

// Mode returns whether the hook may suspend.
func (d Descriptor) Mode() Mode {
	return d.body.Mode()
}

// Affinity returns where the hook must run.
func (d Descriptor) Affinity() Affinity {
	return d.affinity
}

// MetadataAware tells if the hook receives the example metadata.
func (d Descriptor) MetadataAware() bool {
	return d.body.MetadataAware()
}

// Body returns the closure of the hook.
func (d Descriptor) Body() Body {
	return d.body
}

// OnMain returns a copy of the descriptor that runs on the main worker.
func (d Descriptor) OnMain() Descriptor {
	d.affinity = MainAffinity
	return d
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s(%s,%s)", d.phase, d.Mode(), d.affinity)
}

// BeforeEach creates a hook that runs before each example in scope.
func BeforeEach(fn func() error) Descriptor {
	return New(PhaseBefore, Sync(fn))
}

// BeforeEachWithMetadata is BeforeEach with access to example metadata.
func BeforeEachWithMetadata(fn func(Metadata) error) Descriptor {
	return New(PhaseBefore, SyncWithMetadata(fn))
}

// BeforeEachAsync is BeforeEach with a body that may suspend.
func BeforeEachAsync(fn func(context.Context) error) Descriptor {
	return New(PhaseBefore, Async(fn))
}

// BeforeEachAsyncWithMetadata is BeforeEachAsync with access to example
// metadata.
func BeforeEachAsyncWithMetadata(
	fn func(context.Context, Metadata) error,
) Descriptor {
	return New(PhaseBefore, AsyncWithMetadata(fn))
}

// JustBeforeEach creates a hook that runs after every BeforeEach in scope,
// right before the example body.
func JustBeforeEach(fn func() error) Descriptor {
	return New(PhaseJustBefore, Sync(fn))
}

// JustBeforeEachWithMetadata is JustBeforeEach with access to example
// metadata.
func JustBeforeEachWithMetadata(fn func(Metadata) error) Descriptor {
	return New(PhaseJustBefore, SyncWithMetadata(fn))
}

// JustBeforeEachAsync is JustBeforeEach with a body that may suspend.
func JustBeforeEachAsync(fn func(context.Context) error) Descriptor {
	return New(PhaseJustBefore, Async(fn))
}

// JustBeforeEachAsyncWithMetadata is JustBeforeEachAsync with access to
// example metadata.
func JustBeforeEachAsyncWithMetadata(
	fn func(context.Context, Metadata) error,
) Descriptor {
	return New(PhaseJustBefore, AsyncWithMetadata(fn))
}

// AfterEach creates a teardown hook that runs after each example in scope.
func AfterEach(fn func() error) Descriptor {
	return New(PhaseAfter, Sync(fn))
}

// AfterEachWithMetadata is AfterEach with access to example metadata.
func AfterEachWithMetadata(fn func(Metadata) error) Descriptor {
	return New(PhaseAfter, SyncWithMetadata(fn))
}

// AfterEachAsync is AfterEach with a body that may suspend.
func AfterEachAsync(fn func(context.Context) error) Descriptor {
	return New(PhaseAfter, Async(fn))
}

// AfterEachAsyncWithMetadata is AfterEachAsync with access to example
// metadata.
func AfterEachAsyncWithMetadata(
	fn func(context.Context, Metadata) error,
) Descriptor {
	return New(PhaseAfter, AsyncWithMetadata(fn))
}

// AroundEach creates a hook that wraps each example in scope. The closure
// must call run exactly once.
func AroundEach(fn func(run Continuation) error) Descriptor {
	return New(PhaseAround, Around(fn))
}

// AroundEachWithMetadata is AroundEach with access to example metadata.
func AroundEachWithMetadata(
	fn func(m Metadata, run Continuation) error,
) Descriptor {
	return New(PhaseAround, AroundWithMetadata(fn))
}

// AroundEachAsync is AroundEach with a body that may suspend.
func AroundEachAsync(
	fn func(ctx context.Context, run Continuation) error,
) Descriptor {
	return New(PhaseAround, AsyncAround(fn))
}

// AroundEachAsyncWithMetadata is AroundEachAsync with access to example
// metadata.
func AroundEachAsyncWithMetadata(
	fn func(ctx context.Context, m Metadata, run Continuation) error,
) Descriptor {
	return New(PhaseAround, AsyncAroundWithMetadata(fn))
}
