package execution

import "github.com/sarchlab/behave/hook"

// An ExecutionContext is the state of one example while it runs. It is
// created for the example and dropped once its outcome is known.
type ExecutionContext struct {
	metadata hook.Metadata
	ran      bool
}

func newExecutionContext(m hook.Metadata) *ExecutionContext {
	return &ExecutionContext{metadata: m}
}

// Metadata returns the description of the running example.
func (c *ExecutionContext) Metadata() hook.Metadata {
	return c.metadata
}

// HasExampleRun tells if the example got past its around hooks.
func (c *ExecutionContext) HasExampleRun() bool {
	return c.ran
}

// markRan sets the latch. It returns false if the latch was already set.
func (c *ExecutionContext) markRan() bool {
	if c.ran {
		return false
	}

	c.ran = true

	return true
}
