// Package tracing lets observers follow a run. The executor and the runner
// invoke the hooks registered on them at fixed positions.
//
// These hooks only observe. They cannot change the course of an example and
// are unrelated to the before/after hooks declared on groups.
package tracing

// HookPos defines the enum of possible hooking positions.
type HookPos struct {
	Name string
}

// HookCtx is the context that holds all the information about the site that a
// hook is triggered.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   interface{}
	Detail interface{}
}

// Hookable defines an object that accept Hooks.
type Hookable interface {
	// AcceptHook registers a hook.
	AcceptHook(hook Hook)

	// NumHooks returns the number of hooks registered.
	NumHooks() int

	// Hooks returns all the hooks registered.
	Hooks() []Hook
}

// Hook is a short piece of program that can be invoked by a hookable object.
type Hook interface {
	// Func determines what to do if hook is invoked.
	Func(ctx HookCtx)
}

// A list of hook positions.
var (
	// HookPosSuiteStart is invoked before the first suite hook. Item is the
	// *tree.Suite.
	HookPosSuiteStart = &HookPos{Name: "SuiteStart"}

	// HookPosSuiteEnd is invoked after the last suite hook. Item is the run
	// report.
	HookPosSuiteEnd = &HookPos{Name: "SuiteEnd"}

	// HookPosExampleStart is invoked before an example runs. Item is its
	// hook.Metadata.
	HookPosExampleStart = &HookPos{Name: "ExampleStart"}

	// HookPosExampleEnd is invoked after an example produced its outcome.
	// Item is the execution.Result.
	HookPosExampleEnd = &HookPos{Name: "ExampleEnd"}

	// HookPosStateChange is invoked on every executor state transition. Item
	// is the new state and Detail is the hook.Metadata of the example.
	HookPosStateChange = &HookPos{Name: "StateChange"}
)

// A HookableBase provides some utility function for other type that implement
// the Hookable interface.
type HookableBase struct {
	hookList []Hook
}

// NumHooks returns the number of hooks registered.
func (h *HookableBase) NumHooks() int {
	return len(h.hookList)
}

// Hooks returns all the hooks registered.
func (h *HookableBase) Hooks() []Hook {
	return h.hookList
}

// AcceptHook register a hook.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.mustNotHaveDuplicatedHook(hook)
	h.hookList = append(h.hookList, hook)
}

func (h *HookableBase) mustNotHaveDuplicatedHook(hook Hook) {
	for _, h := range h.hookList {
		if h == hook {
			panic("duplicated hook")
		}
	}
}

// InvokeHook triggers the register Hooks.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hookList {
		hook.Func(ctx)
	}
}
