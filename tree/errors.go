package tree

import "fmt"

// A ConfigurationError reports structural misuse of the tree, such as
// declaring a hook while an example is running. The tree is left unchanged.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Reasons reported by ConfigurationError.
const (
	ReasonInsideExample = "hook declared inside example"
	ReasonFrozen        = "declared after the declaration phase ended"
	ReasonNoBody        = "missing body"
	ReasonWrappingBody  = "body cannot take a continuation"
)
