package hook

// Phase defines when a hook runs relative to an example body.
type Phase int

// Enumeration of the hook phases.
const (
	PhaseBefore Phase = iota
	PhaseJustBefore
	PhaseAfter
	PhaseAround
)

func (p Phase) String() string {
	switch p {
	case PhaseBefore:
		return "beforeEach"
	case PhaseJustBefore:
		return "justBeforeEach"
	case PhaseAfter:
		return "afterEach"
	case PhaseAround:
		return "aroundEach"
	default:
		return "unknown"
	}
}

// Mode tells whether a body may suspend.
type Mode int

// Enumeration of execution modes.
const (
	Synchronous Mode = iota
	Asynchronous
)

func (m Mode) String() string {
	if m == Asynchronous {
		return "async"
	}

	return "sync"
}

// Affinity names the execution context a body must run on.
type Affinity int

// Enumeration of affinities. AnyThread bodies run on a goroutine of their
// own. MainAffinity bodies are marshaled onto the single main worker.
const (
	AnyThread Affinity = iota
	MainAffinity
)

func (a Affinity) String() string {
	if a == MainAffinity {
		return "main"
	}

	return "any"
}
