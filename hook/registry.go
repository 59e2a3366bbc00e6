package hook

// A Registry holds the hooks declared on one group, one ordered list per
// phase. Lists only grow, and hooks keep the order they were registered in.
type Registry struct {
	before     []Descriptor
	justBefore []Descriptor
	after      []Descriptor
	around     []Descriptor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends the hook to the list of its phase.
func (r *Registry) Register(d Descriptor) {
	switch d.Phase() {
	case PhaseBefore:
		r.before = append(r.before, d)
	case PhaseJustBefore:
		r.justBefore = append(r.justBefore, d)
	case PhaseAfter:
		r.after = append(r.after, d)
	case PhaseAround:
		r.around = append(r.around, d)
	default:
		panic("unknown hook phase")
	}
}

// Hooks returns the hooks of a phase in declaration order. The returned
// slice must not be modified.
func (r *Registry) Hooks(p Phase) []Descriptor {
	var list []Descriptor

	switch p {
	case PhaseBefore:
		list = r.before
	case PhaseJustBefore:
		list = r.justBefore
	case PhaseAfter:
		list = r.after
	case PhaseAround:
		list = r.around
	}

	return list[:len(list):len(list)]
}

// NumHooks returns the number of hooks registered over all phases.
func (r *Registry) NumHooks() int {
	return len(r.before) + len(r.justBefore) + len(r.after) + len(r.around)
}
