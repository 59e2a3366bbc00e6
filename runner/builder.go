package runner

import (
	"go.uber.org/zap"

	"github.com/sarchlab/behave/execution"
)

// Builder can build runners.
type Builder struct {
	executor *execution.Executor
	logger   *zap.Logger
}

// MakeBuilder returns a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		logger: zap.NewNop(),
	}
}

// WithExecutor sets the executor that runs the examples. Without it, the
// runner builds its own with the same logger and closes it on Close.
func (b Builder) WithExecutor(e *execution.Executor) Builder {
	b.executor = e
	return b
}

// WithLogger sets the logger.
func (b Builder) WithLogger(logger *zap.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a runner.
func (b Builder) Build() *Runner {
	r := &Runner{
		executor: b.executor,
		logger:   b.logger,
	}

	if r.executor == nil {
		r.executor = execution.MakeBuilder().
			WithLogger(b.logger).
			Build()
		r.ownsExecutor = true
	}

	return r
}
