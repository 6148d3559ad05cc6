package fsm

import "context"

// BusinessFunc is the wrapped business logic of a transition. For computed
// targets the returned state becomes the next state; literal-target
// transitions return NoState.
type BusinessFunc func(ctx context.Context) (State, error)

// VariantSwitcher is implemented by entities whose behavior varies by state.
// SwitchVariant is called by the executor after each state assignment that
// has a registered variant.
type VariantSwitcher interface {
	SwitchVariant(state State, capability any)
}

// Execute runs the transition registered for method against the entity's
// current state:
//
//  1. Resolve the rule (exact source, then "*", then "+"). No rule means
//     TransitionNotAllowed and no mutation.
//  2. Check guards and, when the rule declares a permission, the actor.
//  3. Notify pre-transition observers.
//  4. Invoke the business function.
//  5. On success assign the literal target, or validate a computed result
//     against the allowed set and assign it.
//  6. On failure force the declared error-fallback state, if any. The
//     original error propagates in all cases, after post-transition
//     observers were notified with it.
func (m *Machine) Execute(
	ctx context.Context,
	entity any,
	field *StateField,
	method string,
	actor Actor,
	body BusinessFunc,
) error {
	source := field.State()

	rule, ok := m.resolveRule(method, source)
	if !ok {
		return NewTransitionNotAllowedError(method, source, "no transition from current state")
	}
	if !guardsHold(rule, entity) {
		return NewTransitionNotAllowedError(method, source, "transition conditions have not been met")
	}
	if rule.Permission != "" && (actor == nil || !actor.HasPermission(rule.Permission)) {
		return NewTransitionNotAllowedError(method, source, "permission '"+rule.Permission+"' denied")
	}

	// For computed targets the pre notification cannot know the destination yet.
	announced := rule.Target.Literal()
	m.notify(m.preObservers, Event{Entity: entity, Method: method, Source: source, Target: announced})

	result, err := body(ctx)
	if err == nil && rule.Target.IsComputed() && !rule.Target.allows(result) {
		err = NewInvalidResultStateError(method, result, rule.Target.Allowed())
	}

	if err != nil {
		target := source
		if rule.OnError != "" {
			m.assign(entity, field, rule.OnError)
			target = rule.OnError
		}
		m.notify(m.postObservers, Event{Entity: entity, Method: method, Source: source, Target: target, Err: err})
		return err
	}

	next := rule.Target.Literal()
	if rule.Target.IsComputed() {
		next = result
	}
	m.assign(entity, field, next)

	m.notify(m.postObservers, Event{Entity: entity, Method: method, Source: source, Target: next})
	return nil
}

func (m *Machine) assign(entity any, field *StateField, state State) {
	field.set(state)
	if capability, ok := m.variants[state]; ok {
		if switcher, ok := entity.(VariantSwitcher); ok {
			switcher.SwitchVariant(state, capability)
		}
	}
}

func (m *Machine) notify(observers []Observer, event Event) {
	for _, observer := range observers {
		observer(event)
	}
}
