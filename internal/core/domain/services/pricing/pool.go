package pricing

import (
	"fmt"
	"sync"

	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/store"
	"shop/internal/pkg/errs"
)

// Factory builds one modifier instance configured for a store.
type Factory func(s *store.Store) (Modifier, error)

// Registry maps modifier factory names to factories. Store configuration lists
// factory names; resolution turns that list into a pipeline.
type Registry struct {
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty modifier registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory name. Re-binding a name is a configuration error.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return errs.NewConfigurationError("modifier factory with empty name")
	}
	if factory == nil {
		return errs.NewConfigurationError(fmt.Sprintf("modifier factory '%s' is nil", name))
	}
	if _, dup := r.factories[name]; dup {
		return errs.NewConfigurationError(fmt.Sprintf("modifier factory '%s' registered twice", name))
	}

	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

// Names returns the registered factory names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve builds the pipeline for a store from its configured factory names. An
// unknown name is a fatal configuration error.
func (r *Registry) Resolve(s *store.Store) (*Pipeline, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	names := s.ModifierNames()
	modifiers := make([]Modifier, 0, len(names))
	for _, name := range names {
		factory, ok := r.factories[name]
		if !ok {
			return nil, errs.NewConfigurationError(fmt.Sprintf(
				"store '%s' references unknown modifier factory '%s'", s.Name(), name))
		}
		m, err := factory(s)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, m)
	}

	return NewPipeline(modifiers...)
}

// Pool caches resolved pipelines per store. Resolution happens once per store
// until Invalidate is called after a store mutation; a bounded staleness window
// between the mutation and the invalidation is tolerated.
type Pool struct {
	mu        sync.RWMutex
	registry  *Registry
	pipelines map[kernel.UUID]*Pipeline
}

// NewPool creates a pipeline pool backed by the given registry.
func NewPool(registry *Registry) *Pool {
	return &Pool{
		registry:  registry,
		pipelines: make(map[kernel.UUID]*Pipeline),
	}
}

// Get returns the store's pipeline, resolving and caching it on first use.
func (p *Pool) Get(s *store.Store) (*Pipeline, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	pipeline, ok := p.pipelines[s.ID()]
	p.mu.RUnlock()
	if ok {
		return pipeline, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if pipeline, ok := p.pipelines[s.ID()]; ok {
		return pipeline, nil
	}

	pipeline, err := p.registry.Resolve(s)
	if err != nil {
		return nil, err
	}
	p.pipelines[s.ID()] = pipeline
	return pipeline, nil
}

// Invalidate drops the cached pipeline of a store. Called after a store's
// pricing configuration is committed.
func (p *Pool) Invalidate(storeID kernel.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pipelines, storeID)
}
