// Package chain computes the hooks that apply to one example.
package chain

import (
	"github.com/sarchlab/behave/hook"
	"github.com/sarchlab/behave/tree"
)

// A Chain is the ordered sequence of hooks that applies to one example. It is
// built fresh for every example and consumed once.
type Chain struct {
	// Around hooks, outermost first. Each one wraps everything after it.
	Around []hook.Descriptor

	// Before hooks, outer groups first, declaration order within a group.
	Before []hook.Descriptor

	// JustBefore hooks, in the same order as Before. They all run after the
	// last Before hook.
	JustBefore []hook.Descriptor

	// After hooks, inner groups first, declaration order within a group.
	After []hook.Descriptor
}

// Build walks the ancestry of the example and collects the hooks that apply
// to it. It only reads the tree.
func Build(e *tree.Example) Chain {
	path := e.Parent().Ancestry()

	c := Chain{}
	for _, g := range path {
		c.Around = append(c.Around, g.Hooks(hook.PhaseAround)...)
		c.Before = append(c.Before, g.Hooks(hook.PhaseBefore)...)
		c.JustBefore = append(c.JustBefore, g.Hooks(hook.PhaseJustBefore)...)
	}

	for i := len(path) - 1; i >= 0; i-- {
		c.After = append(c.After, path[i].Hooks(hook.PhaseAfter)...)
	}

	return c
}

// Len returns the number of hooks in the chain.
func (c Chain) Len() int {
	return len(c.Around) + len(c.Before) + len(c.JustBefore) + len(c.After)
}
