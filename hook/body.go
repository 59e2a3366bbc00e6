package hook

import "context"

// Kind tags the closure shape held by a Body.
type Kind int

// Enumeration of the body kinds. Around kinds receive a continuation that
// runs the rest of the example.
const (
	KindPlain Kind = iota
	KindWithMetadata
	KindAsync
	KindAsyncWithMetadata
	KindAround
	KindAsyncAround
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindWithMetadata:
		return "withMetadata"
	case KindAsync:
		return "async"
	case KindAsyncWithMetadata:
		return "asyncWithMetadata"
	case KindAround:
		return "around"
	case KindAsyncAround:
		return "asyncAround"
	default:
		return "unknown"
	}
}

// Continuation runs the remainder of an example from inside an around hook.
// It must be called exactly once.
type Continuation func()

// Body is an invocable closure tagged with its shape. Only the field that
// matches the kind is set.
type Body struct {
	kind         Kind
	withMetadata bool

	plain       func() error
	meta        func(Metadata) error
	async       func(context.Context) error
	asyncMeta   func(context.Context, Metadata) error
	around      func(Metadata, Continuation) error
	asyncAround func(context.Context, Metadata, Continuation) error
}

// Sync creates a synchronous body.
func Sync(fn func() error) Body {
	mustNotBeNil(fn == nil)
	return Body{kind: KindPlain, plain: fn}
}

// SyncWithMetadata creates a synchronous body that receives the example
// metadata.
func SyncWithMetadata(fn func(Metadata) error) Body {
	mustNotBeNil(fn == nil)
	return Body{kind: KindWithMetadata, meta: fn, withMetadata: true}
}

// Async creates a body that may suspend. The executor awaits it before
// moving on.
func Async(fn func(ctx context.Context) error) Body {
	mustNotBeNil(fn == nil)
	return Body{kind: KindAsync, async: fn}
}

// AsyncWithMetadata creates a body that may suspend and receives the example
// metadata.
func AsyncWithMetadata(fn func(ctx context.Context, m Metadata) error) Body {
	mustNotBeNil(fn == nil)
	return Body{kind: KindAsyncWithMetadata, asyncMeta: fn, withMetadata: true}
}

// Around creates a synchronous wrapping body.
func Around(fn func(run Continuation) error) Body {
	mustNotBeNil(fn == nil)
	return Body{
		kind: KindAround,
		around: func(_ Metadata, run Continuation) error {
			return fn(run)
		},
	}
}

// AroundWithMetadata creates a synchronous wrapping body that receives the
// example metadata.
func AroundWithMetadata(fn func(m Metadata, run Continuation) error) Body {
	mustNotBeNil(fn == nil)
	return Body{kind: KindAround, around: fn, withMetadata: true}
}

// AsyncAround creates a wrapping body that may suspend.
func AsyncAround(fn func(ctx context.Context, run Continuation) error) Body {
	mustNotBeNil(fn == nil)
	return Body{
		kind: KindAsyncAround,
		asyncAround: func(
			ctx context.Context,
			_ Metadata,
			run Continuation,
		) error {
			return fn(ctx, run)
		},
	}
}

// AsyncAroundWithMetadata creates a wrapping body that may suspend and
// receives the example metadata.
func AsyncAroundWithMetadata(
	fn func(ctx context.Context, m Metadata, run Continuation) error,
) Body {
	mustNotBeNil(fn == nil)
	return Body{kind: KindAsyncAround, asyncAround: fn, withMetadata: true}
}

func mustNotBeNil(isNil bool) {
	if isNil {
		panic("hook body must not be nil")
	}
}

// Kind returns the shape of the body.
func (b Body) Kind() Kind {
	return b.kind
}

// Mode returns whether the body may suspend.
func (b Body) Mode() Mode {
	switch b.kind {
	case KindAsync, KindAsyncWithMetadata, KindAsyncAround:
		return Asynchronous
	default:
		return Synchronous
	}
}

// MetadataAware tells if the closure was declared to receive metadata.
func (b Body) MetadataAware() bool {
	return b.withMetadata
}

// IsAround tells if the body takes a continuation.
func (b Body) IsAround() bool {
	return b.kind == KindAround || b.kind == KindAsyncAround
}

// IsZero tells if the body was never constructed.
func (b Body) IsZero() bool {
	return b.plain == nil && b.meta == nil &&
		b.async == nil && b.asyncMeta == nil &&
		b.around == nil && b.asyncAround == nil
}

// Call invokes a non-wrapping body.
func (b Body) Call(ctx context.Context, m Metadata) error {
	switch b.kind {
	case KindPlain:
		return b.plain()
	case KindWithMetadata:
		return b.meta(m)
	case KindAsync:
		return b.async(ctx)
	case KindAsyncWithMetadata:
		return b.asyncMeta(ctx, m)
	default:
		panic("wrapping body called without a continuation")
	}
}

// CallAround invokes a wrapping body with the given continuation.
func (b Body) CallAround(
	ctx context.Context,
	m Metadata,
	run Continuation,
) error {
	switch b.kind {
	case KindAround:
		return b.around(m, run)
	case KindAsyncAround:
		return b.asyncAround(ctx, m, run)
	default:
		panic("non-wrapping body called with a continuation")
	}
}
