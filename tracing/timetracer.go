package tracing

import (
	"fmt"
	"sync"
	"time"
)

// TimeTeller tells the current time.
type TimeTeller func() time.Time

// A StateTimeTracer sums the time examples spend in each executor state. It
// follows the state-change invocations of an executor. The first state of an
// example starts its clock and the last one stops it.
//
// Around hooks have no state of their own. The time an around hook spends
// before it continues is credited to the first state, and the time it spends
// after the continuation returns is credited to the state before the last.
type StateTimeTracer struct {
	timeTeller TimeTeller
	firstState string
	lastState  string

	lock         sync.Mutex
	current      string
	since        time.Time
	stateTime    map[string]time.Duration
	exampleStart time.Time
	exampleTime  time.Duration
	exampleCount uint64
}

// NewStateTimeTracer creates a tracer. An example starts at firstState and
// ends at lastState. A nil timeTeller uses the wall clock.
func NewStateTimeTracer(
	timeTeller TimeTeller,
	firstState, lastState fmt.Stringer,
) *StateTimeTracer {
	if timeTeller == nil {
		timeTeller = time.Now
	}

	return &StateTimeTracer{
		timeTeller: timeTeller,
		firstState: firstState.String(),
		lastState:  lastState.String(),
		stateTime:  make(map[string]time.Duration),
	}
}

// Func records a state change.
func (t *StateTimeTracer) Func(ctx HookCtx) {
	if ctx.Pos != HookPosStateChange {
		return
	}

	state, ok := ctx.Item.(fmt.Stringer)
	if !ok {
		return
	}

	now := t.timeTeller()
	name := state.String()

	t.lock.Lock()
	defer t.lock.Unlock()

	if t.current != "" {
		t.stateTime[t.current] += now.Sub(t.since)
	}

	switch name {
	case t.firstState:
		t.exampleStart = now
		t.current = name
	case t.lastState:
		t.exampleTime += now.Sub(t.exampleStart)
		t.exampleCount++
		t.current = ""
	default:
		t.current = name
	}

	t.since = now
}

// TimeIn returns the total time spent in a state.
func (t *StateTimeTracer) TimeIn(state fmt.Stringer) time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.stateTime[state.String()]
}

// TotalCount returns the number of examples that finished.
func (t *StateTimeTracer) TotalCount() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.exampleCount
}

// AverageTime returns the average time an example took.
func (t *StateTimeTracer) AverageTime() time.Duration {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.exampleCount == 0 {
		return 0
	}

	return t.exampleTime / time.Duration(t.exampleCount)
}
