package attemptclient

import "fmt"

// State is the renderer's position in the attempt flow. The flow only
// moves along declared transitions; anything else is a programming error
// surfaced by Dispatch.
type State string

const (
	StateIdle           State = "idle"
	StateAttempting     State = "attempting"
	StateReviewing      State = "reviewing"
	StateShowingResults State = "showing-results"
)

// Event is a typed transition message.
type Event string

const (
	// EventBegin enters the attempt, either by starting a new draft or
	// resuming an existing one.
	EventBegin Event = "BEGIN"
	// EventReview switches to the read-only answer overview.
	EventReview Event = "REVIEW"
	// EventResume returns from the overview to answering.
	EventResume Event = "RESUME"
	// EventFinish submits (or times out) the attempt.
	EventFinish Event = "FINISH"
	// EventReset leaves the results screen.
	EventReset Event = "RESET"
)

var transitions = map[State]map[Event]State{
	StateIdle: {
		EventBegin: StateAttempting,
	},
	StateAttempting: {
		EventReview: StateReviewing,
		EventFinish: StateShowingResults,
	},
	StateReviewing: {
		EventResume: StateAttempting,
		EventFinish: StateShowingResults,
	},
	StateShowingResults: {
		EventReset: StateIdle,
	},
}

// Store holds the current renderer state.
type Store struct {
	state State
}

func NewStore() *Store {
	return &Store{state: StateIdle}
}

func (s *Store) State() State {
	return s.state
}

// Dispatch applies an event. Undeclared transitions are rejected and leave
// the state unchanged.
func (s *Store) Dispatch(event Event) (State, error) {
	next, ok := transitions[s.state][event]
	if !ok {
		return s.state, fmt.Errorf("invalid transition: %s in state %s", event, s.state)
	}
	s.state = next
	return next, nil
}

// CanAnswer reports whether answer mutations are allowed in the current
// state.
func (s *Store) CanAnswer() bool {
	return s.state == StateAttempting
}
