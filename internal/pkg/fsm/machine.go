package fsm

import (
	"fmt"
	"sort"

	"shop/internal/pkg/errs"
)

// Event carries the payload delivered to transition observers.
type Event struct {
	Entity any
	Method string
	Source State
	// Target names the destination state. In pre notifications of a rule with
	// a computed target it is empty, since the result is not known until the
	// business function ran; the post notification carries the resolved state.
	Target State
	// Err is nil for successful transitions. For a failed business function
	// it carries the original error delivered with the post notification.
	Err error
}

// Observer is a callback invoked synchronously before or after a transition.
type Observer func(event Event)

// Machine is the prepared transition table for one entity type and one
// state-bearing field. Build it once at startup; it is immutable afterwards
// apart from observer registration, which is also expected at startup.
type Machine struct {
	entityName string
	fieldName  string

	// rules maps method name to source state to the registered rule.
	rules map[string]map[State]Transition

	// targetNames maps each known state to its verbose name.
	targetNames map[State]string

	// variants maps states to behavioral capability values.
	variants map[State]any

	preObservers  []Observer
	postObservers []Observer
}

// NewMachine builds the transition table for the named entity and field by
// merging the given workflow extensions in order. It fails with a
// configuration error when two extensions contribute the same target state,
// or when two rules share a (method, concrete source) pair.
func NewMachine(entityName, fieldName string, extensions ...Extension) (*Machine, error) {
	m := &Machine{
		entityName:  entityName,
		fieldName:   fieldName,
		rules:       make(map[string]map[State]Transition),
		targetNames: make(map[State]string),
		variants:    make(map[State]any),
	}

	seenTargets := make(map[State]string)
	for _, ext := range extensions {
		for state, verbose := range ext.Targets {
			if owner, ok := seenTargets[state]; ok {
				return nil, errs.NewConfigurationError(fmt.Sprintf(
					"workflow extension '%s' already contains a transition target named '%s' (declared again by '%s')",
					owner, state, ext.Name))
			}
			seenTargets[state] = ext.Name
			m.targetNames[state] = verbose
		}

		for _, tr := range ext.Transitions {
			if err := m.register(tr); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// MustNewMachine is NewMachine, panicking on configuration errors. Transition
// tables are static wiring; an invalid one must abort initialization.
func MustNewMachine(entityName, fieldName string, extensions ...Extension) *Machine {
	m, err := NewMachine(entityName, fieldName, extensions...)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Machine) register(tr Transition) error {
	if tr.Method == "" {
		return errs.NewConfigurationError(fmt.Sprintf(
			"transition for %s.%s declares no method name", m.entityName, m.fieldName))
	}

	sources := tr.Sources
	if len(sources) == 0 {
		sources = []State{SourceAny}
	}

	bySource, ok := m.rules[tr.Method]
	if !ok {
		bySource = make(map[State]Transition)
		m.rules[tr.Method] = bySource
	}

	for _, source := range sources {
		if _, dup := bySource[source]; dup {
			return errs.NewConfigurationError(fmt.Sprintf(
				"duplicate transition for %s.%s: method '%s', source state '%s'",
				m.entityName, m.fieldName, tr.Method, source))
		}
		rule := tr
		rule.Sources = []State{source}
		bySource[source] = rule
	}

	return nil
}

// RegisterVariants binds behavioral capability values to states. After a
// transition assigns one of these states, the entity's active variant is
// switched through its VariantSwitcher callback.
func (m *Machine) RegisterVariants(variants map[State]any) {
	for state, capability := range variants {
		m.variants[state] = capability
	}
}

// Variant returns the capability value bound to a state, if any.
func (m *Machine) Variant(state State) (any, bool) {
	capability, ok := m.variants[state]
	return capability, ok
}

// SubscribePre registers an observer invoked before the business logic runs.
func (m *Machine) SubscribePre(observer Observer) {
	m.preObservers = append(m.preObservers, observer)
}

// SubscribePost registers an observer invoked after the transition finished,
// successfully or not.
func (m *Machine) SubscribePost(observer Observer) {
	m.postObservers = append(m.postObservers, observer)
}

// resolveRule finds the rule governing method for the given current state.
// Precedence: exact source match, then the "*" wildcard, then the "+"
// wildcard. A "+" rule with a literal target never matches an entity already
// in that target state.
func (m *Machine) resolveRule(method string, current State) (Transition, bool) {
	bySource, ok := m.rules[method]
	if !ok {
		return Transition{}, false
	}

	if rule, ok := bySource[current]; ok {
		return rule, true
	}
	if rule, ok := bySource[SourceAny]; ok {
		return rule, true
	}
	if rule, ok := bySource[SourceExceptTarget]; ok {
		if rule.Target.IsComputed() || rule.Target.Literal() != current {
			return rule, true
		}
	}

	return Transition{}, false
}

// HasTransition reports whether a rule exists that would govern method from
// the given state, regardless of guards and permissions.
func (m *Machine) HasTransition(method string, state State) bool {
	_, ok := m.resolveRule(method, state)
	return ok
}

// TransitionAvailable reports whether a rule exists for the entity's current
// state and all its guards currently pass. Permissions are not considered;
// use AvailableTransitionsFor for actor-aware filtering.
func (m *Machine) TransitionAvailable(entity any, field *StateField, method string) bool {
	rule, ok := m.resolveRule(method, field.State())
	if !ok {
		return false
	}
	return guardsHold(rule, entity)
}

// AvailableTransitionsFor returns the sorted method names executable by the
// given actor from the entity's current state: a rule exists, all guards
// pass, and the declared permission (if any) is held. Intended for
// presentation layers; the executor re-checks everything itself.
func (m *Machine) AvailableTransitionsFor(entity any, field *StateField, actor Actor) []string {
	var methods []string
	for method := range m.rules {
		rule, ok := m.resolveRule(method, field.State())
		if !ok || !guardsHold(rule, entity) {
			continue
		}
		if rule.Permission != "" && (actor == nil || !actor.HasPermission(rule.Permission)) {
			continue
		}
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// TargetName returns the verbose name of a state, falling back to the raw
// state value for states no extension described.
func (m *Machine) TargetName(state State) string {
	if name, ok := m.targetNames[state]; ok {
		return name
	}
	return string(state)
}

func guardsHold(rule Transition, entity any) bool {
	for _, g := range rule.Guards {
		if !g(entity) {
			return false
		}
	}
	return true
}
