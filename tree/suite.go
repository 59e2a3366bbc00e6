// Package tree holds the hierarchy of groups and examples that a suite
// declares. A tree is built once, frozen, and then only read.
package tree

import (
	"sync/atomic"

	"github.com/sarchlab/behave/hook"
	"github.com/sarchlab/behave/id"
)

type phase int32

const (
	declaring phase = iota
	frozen
	running
)

// SuiteHook is a hook that runs once per suite rather than once per example.
type SuiteHook struct {
	Body     hook.Body
	Affinity hook.Affinity
}

// A Suite owns a tree of groups and examples, together with its suite-level
// hooks.
type Suite struct {
	root  *Group
	phase atomic.Int32
	ids   id.IDGenerator

	beforeSuite []SuiteHook
	afterSuite  []SuiteHook
}

// NewSuite creates a suite whose root group has the given name. An empty name
// keeps the root out of example paths.
func NewSuite(name string) *Suite {
	s := &Suite{
		ids: id.NewSequentialGenerator(),
	}
	s.root = newGroup(s, nil, name)

	return s
}

// Name returns the name of the root group.
func (s *Suite) Name() string {
	return s.root.name
}

// Root returns the outermost group.
func (s *Suite) Root() *Group {
	return s.root
}

// Freeze ends the declaration phase. Further declarations fail with a
// ConfigurationError.
func (s *Suite) Freeze() {
	s.phase.CompareAndSwap(int32(declaring), int32(frozen))
}

// IsFrozen tells if the declaration phase has ended.
func (s *Suite) IsFrozen() bool {
	return phase(s.phase.Load()) != declaring
}

// EnterExample marks an example as running until the returned function is
// called. It freezes the suite if it was not frozen yet.
func (s *Suite) EnterExample() (leave func()) {
	s.Freeze()
	s.phase.Store(int32(running))

	return func() {
		s.phase.Store(int32(frozen))
	}
}

// checkDeclaration returns the error that a declaration would fail with, if
// any.
func (s *Suite) checkDeclaration(op string) error {
	switch phase(s.phase.Load()) {
	case running:
		return &ConfigurationError{Op: op, Reason: ReasonInsideExample}
	case frozen:
		return &ConfigurationError{Op: op, Reason: ReasonFrozen}
	default:
		return nil
	}
}

// BeforeSuite registers a hook that runs once before the first example.
func (s *Suite) BeforeSuite(body hook.Body) error {
	return s.addSuiteHook("beforeSuite", &s.beforeSuite, body, hook.AnyThread)
}

// BeforeSuiteMain is BeforeSuite on the main worker.
func (s *Suite) BeforeSuiteMain(body hook.Body) error {
	return s.addSuiteHook("beforeSuite", &s.beforeSuite, body, hook.MainAffinity)
}

// AfterSuite registers a hook that runs once after the last example.
func (s *Suite) AfterSuite(body hook.Body) error {
	return s.addSuiteHook("afterSuite", &s.afterSuite, body, hook.AnyThread)
}

// AfterSuiteMain is AfterSuite on the main worker.
func (s *Suite) AfterSuiteMain(body hook.Body) error {
	return s.addSuiteHook("afterSuite", &s.afterSuite, body, hook.MainAffinity)
}

func (s *Suite) addSuiteHook(
	op string,
	list *[]SuiteHook,
	body hook.Body,
	affinity hook.Affinity,
) error {
	if err := s.checkDeclaration(op); err != nil {
		return err
	}

	if body.IsZero() {
		return &ConfigurationError{Op: op, Reason: ReasonNoBody}
	}

	if body.IsAround() {
		return &ConfigurationError{Op: op, Reason: ReasonWrappingBody}
	}

	*list = append(*list, SuiteHook{Body: body, Affinity: affinity})

	return nil
}

// BeforeSuiteHooks returns the before-suite hooks in declaration order.
func (s *Suite) BeforeSuiteHooks() []SuiteHook {
	return s.beforeSuite
}

// AfterSuiteHooks returns the after-suite hooks in declaration order.
func (s *Suite) AfterSuiteHooks() []SuiteHook {
	return s.afterSuite
}

// Examples returns every example of the suite, depth first in declaration
// order. This is the order examples run in.
func (s *Suite) Examples() []*Example {
	var examples []*Example
	s.root.walk(func(e *Example) {
		examples = append(examples, e)
	})

	return examples
}
