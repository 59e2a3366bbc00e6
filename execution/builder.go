package execution

import "go.uber.org/zap"

// Builder can build executors.
type Builder struct {
	main   *MainWorker
	logger *zap.Logger
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		logger: zap.NewNop(),
	}
}

// WithMainWorker sets the worker that main-affinity bodies run on. Without
// it, the executor starts its own worker and stops it on Close.
func (b Builder) WithMainWorker(w *MainWorker) Builder {
	b.main = w
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *zap.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates an executor.
func (b Builder) Build() *Executor {
	e := &Executor{
		main:   b.main,
		logger: b.logger,
	}

	if e.main == nil {
		e.main = NewMainWorker()
		e.ownsMain = true
	}

	return e
}
