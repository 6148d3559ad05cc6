package fsm

// State is a named state of a governed entity field.
type State string

// NoState is returned by business functions of literal-target transitions,
// where the result does not contribute to the next state.
const NoState State = ""

// Wildcard sources accepted by transition rules.
const (
	// SourceAny matches any current state.
	SourceAny State = "*"

	// SourceExceptTarget matches any current state except the rule's own
	// target, so the transition is guaranteed to actually change the state.
	SourceExceptTarget State = "+"
)

// StateField holds the governed state attribute of an entity. The value is
// readable anywhere but assignable only by the transition executor; entities
// embed the field and never touch it directly.
type StateField struct {
	state State
}

// NewStateField creates a field initialized to the given state. Initial
// assignment is the one write that happens outside a transition, when the
// entity is constructed or restored from persistence.
func NewStateField(initial State) StateField {
	return StateField{state: initial}
}

// State returns the current state.
func (f *StateField) State() State {
	return f.state
}

// set is deliberately unexported: only the executor assigns states.
func (f *StateField) set(s State) {
	f.state = s
}
