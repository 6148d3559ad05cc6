// Package pricing implements the multi-stage cart pricing pipeline. A store
// configures an ordered list of modifier factory names; the registry resolves
// them into a pipeline, the pool caches one pipeline per store, and a recompute
// pass sweeps a dirty cart through every stage's hooks until its totals are
// valid again.
package pricing
