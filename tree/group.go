package tree

import (
	"github.com/sarchlab/behave/hook"
)

// A Node is either a Group or an Example.
type Node interface {
	Name() string
	Parent() *Group
	isNode()
}

// A Group is a named node that holds hooks and child nodes. Hooks declared on
// a group apply to every example below it.
type Group struct {
	name     string
	parent   *Group
	suite    *Suite
	children []Node
	hooks    *hook.Registry
}

func newGroup(s *Suite, parent *Group, name string) *Group {
	return &Group{
		name:   name,
		parent: parent,
		suite:  s,
		hooks:  hook.NewRegistry(),
	}
}

func (g *Group) isNode() {}

// Name returns the name of the group.
func (g *Group) Name() string {
	return g.name
}

// Parent returns the enclosing group, or nil for the root.
func (g *Group) Parent() *Group {
	return g.parent
}

// Suite returns the suite the group belongs to.
func (g *Group) Suite() *Suite {
	return g.suite
}

// Children returns the child nodes in declaration order. The returned slice
// must not be modified.
func (g *Group) Children() []Node {
	return g.children[:len(g.children):len(g.children)]
}

// Describe adds a nested group.
func (g *Group) Describe(name string) (*Group, error) {
	if err := g.suite.checkDeclaration("describe"); err != nil {
		return nil, err
	}

	child := newGroup(g.suite, g, name)
	g.children = append(g.children, child)

	return child, nil
}

// Context is an alias of Describe that reads better for conditions.
func (g *Group) Context(name string) (*Group, error) {
	return g.Describe(name)
}

// It adds an example whose body runs on any thread.
func (g *Group) It(name string, body hook.Body) (*Example, error) {
	return g.addExample("it", name, body, hook.AnyThread)
}

// ItMain adds an example whose body runs on the main worker.
func (g *Group) ItMain(name string, body hook.Body) (*Example, error) {
	return g.addExample("itMain", name, body, hook.MainAffinity)
}

func (g *Group) addExample(
	op, name string,
	body hook.Body,
	affinity hook.Affinity,
) (*Example, error) {
	if err := g.suite.checkDeclaration(op); err != nil {
		return nil, err
	}

	if body.IsZero() {
		return nil, &ConfigurationError{Op: op, Reason: ReasonNoBody}
	}

	if body.IsAround() {
		return nil, &ConfigurationError{Op: op, Reason: ReasonWrappingBody}
	}

	e := &Example{
		name:     name,
		parent:   g,
		body:     body,
		affinity: affinity,
		id:       g.suite.ids.Generate(),
	}
	g.children = append(g.children, e)

	return e, nil
}

// Register attaches a hook to the group. It fails with a ConfigurationError
// once the declaration phase is over, and in particular while an example is
// running.
func (g *Group) Register(d hook.Descriptor) error {
	if err := g.suite.checkDeclaration(d.Phase().String()); err != nil {
		return err
	}

	g.hooks.Register(d)

	return nil
}

// Hooks returns the hooks of a phase declared directly on this group.
func (g *Group) Hooks(p hook.Phase) []hook.Descriptor {
	return g.hooks.Hooks(p)
}

// NumHooks returns the number of hooks declared directly on this group.
func (g *Group) NumHooks() int {
	return g.hooks.NumHooks()
}

// Ancestry returns the groups from the root down to this group, inclusive.
func (g *Group) Ancestry() []*Group {
	depth := 0
	for cur := g; cur != nil; cur = cur.parent {
		depth++
	}

	path := make([]*Group, depth)
	for cur := g; cur != nil; cur = cur.parent {
		depth--
		path[depth] = cur
	}

	return path
}

func (g *Group) walk(fn func(*Example)) {
	for _, child := range g.children {
		switch c := child.(type) {
		case *Group:
			c.walk(fn)
		case *Example:
			fn(c)
		}
	}
}
