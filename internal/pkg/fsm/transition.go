package fsm

// Guard is a predicate that must hold for a transition to be available.
// Guards receive the entity and must not mutate it.
type Guard func(entity any) bool

// Actor is the acting principal checked against a rule's required permission.
type Actor interface {
	// HasPermission reports whether the actor holds the named permission.
	HasPermission(permission string) bool
}

// Target describes where a transition leads: either a literal state, or a
// state computed from the business method's result and validated against a
// declared allowed set.
type Target struct {
	literal  State
	computed bool
	allowed  []State
}

// To declares a literal target state.
func To(state State) Target {
	return Target{literal: state}
}

// FromResult declares a computed target: the business function's returned
// state becomes the next state, provided it is in the allowed set.
func FromResult(allowed ...State) Target {
	return Target{computed: true, allowed: allowed}
}

// IsComputed reports whether the target is derived from the method result.
func (t Target) IsComputed() bool {
	return t.computed
}

// Literal returns the fixed target state; empty for computed targets.
func (t Target) Literal() State {
	return t.literal
}

// Allowed returns the allowed result states of a computed target.
func (t Target) Allowed() []State {
	return t.allowed
}

func (t Target) allows(state State) bool {
	for _, s := range t.allowed {
		if s == state {
			return true
		}
	}
	return false
}

// Transition declares one rule: invoking Method while the entity is in one of
// Sources moves it to Target, provided all Guards hold and the actor holds
// Permission (when declared). If the wrapped business logic fails and OnError
// is set, the field is forced to OnError before the error propagates.
type Transition struct {
	Method     string
	Sources    []State
	Target     Target
	Guards     []Guard
	Permission string
	OnError    State
}

// Extension is a workflow module contributing states and transitions to an
// entity's table. Extensions are merged in declaration order at preparation
// time; two extensions naming the same target state is a fatal configuration
// error.
type Extension struct {
	// Name identifies the extension in configuration error messages.
	Name string

	// Targets maps each state the extension introduces to its verbose name.
	Targets map[State]string

	// Transitions are the rules the extension contributes.
	Transitions []Transition
}
