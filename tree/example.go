package tree

import (
	"github.com/sarchlab/behave/hook"
)

// An Example is a leaf holding one runnable body.
type Example struct {
	name     string
	parent   *Group
	body     hook.Body
	affinity hook.Affinity
	id       string
}

func (e *Example) isNode() {}

// Name returns the name of the example.
func (e *Example) Name() string {
	return e.name
}

// Parent returns the group the example was declared in.
func (e *Example) Parent() *Group {
	return e.parent
}

// Suite returns the suite the example belongs to.
func (e *Example) Suite() *Suite {
	return e.parent.suite
}

// ID returns the stable identifier of the example.
func (e *Example) ID() string {
	return e.id
}

// Body returns the closure of the example.
func (e *Example) Body() hook.Body {
	return e.body
}

// Affinity returns where the example body must run.
func (e *Example) Affinity() hook.Affinity {
	return e.affinity
}

// Path returns the names of the enclosing groups, outermost first, followed
// by the example name. Groups with empty names are left out.
func (e *Example) Path() []string {
	var path []string
	for _, g := range e.parent.Ancestry() {
		if g.name == "" {
			continue
		}

		path = append(path, g.name)
	}

	return append(path, e.name)
}

// Metadata describes the example for hooks, given its position in run order.
func (e *Example) Metadata(index int) hook.Metadata {
	return hook.Metadata{
		ID:    e.id,
		Name:  e.name,
		Path:  e.Path(),
		Index: index,
	}
}
