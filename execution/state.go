package execution

// State is a step of the execution of one example.
type State int

// Enumeration of executor states, in the order an example goes through them.
const (
	Idle State = iota
	RunningBefore
	RunningJustBefore
	RunningBody
	RunningAfter
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case RunningBefore:
		return "RunningBefore"
	case RunningJustBefore:
		return "RunningJustBefore"
	case RunningBody:
		return "RunningBody"
	case RunningAfter:
		return "RunningAfter"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}
