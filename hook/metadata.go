package hook

import "strings"

// Metadata describes the example that a hook or body is running for.
type Metadata struct {
	// ID is stable across runs of the same suite. It is assigned in
	// declaration order.
	ID string

	// Name is the name of the example itself.
	Name string

	// Path holds the names of the enclosing groups, outermost first,
	// followed by the example name.
	Path []string

	// Index is the position of the example in run order.
	Index int
}

// FullName joins the nesting path with spaces, the way the example reads in
// a report.
func (m Metadata) FullName() string {
	return strings.Join(m.Path, " ")
}
