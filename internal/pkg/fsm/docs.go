// Package fsm implements a declarative finite-state transition engine for
// persistent entities.
//
// A Machine holds, per business method, a table of transition rules keyed by
// source state. Tables are built once at startup through explicit builder
// registration: an entity declares a base workflow plus an ordered list of
// workflow extensions, and the machine merges them, failing fast with a
// configuration error on duplicate rules or colliding target names.
//
// The state of an entity lives in a StateField, which is write-protected:
// the only way to change it is executing a registered transition through
// Machine.Execute. The executor resolves the rule for the entity's current
// state (exact match, then the "*" any-source wildcard, then the "+"
// except-target wildcard), checks guards and the acting principal's
// permission, notifies pre-transition observers, runs the wrapped business
// logic, and assigns the target state. Targets are either literal or computed
// from the business method's result, validated against a declared allowed
// set. If the business logic fails and the rule declares an error-fallback
// state, the field is forced there; the original error always propagates
// after post-transition observers were notified.
//
// States may be bound to behavioral variants: a capability value keyed by
// state. After each assignment the entity's active variant is switched via a
// callback, a tagged-union dispatch rather than a type mutation.
package fsm
