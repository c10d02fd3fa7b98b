// Package registry holds the upstreams the relay can be pointed at.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/launchpad/internal/domain"
)

// ErrUpstreamNotFound indicates a lookup for an unregistered name.
var ErrUpstreamNotFound = errors.New("upstream not found")

// Registry maps upstream names to implementations.
type Registry struct {
	mu        sync.RWMutex
	upstreams map[string]domain.Upstream
}

// NewRegistry creates a new upstream registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:        sync.RWMutex{},
		upstreams: make(map[string]domain.Upstream),
	}
}

// Register adds an upstream under its Name.
func (r *Registry) Register(upstream domain.Upstream) error {
	if upstream == nil {
		return errors.New("upstream cannot be nil")
	}

	name := upstream.Name()
	if name == "" {
		return errors.New("upstream name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.upstreams[name]; exists {
		return fmt.Errorf("upstream %s already registered", name)
	}

	r.upstreams[name] = upstream

	return nil
}

// Get retrieves an upstream by name.
func (r *Registry) Get(name string) (domain.Upstream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	upstream, exists := r.upstreams[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUpstreamNotFound, name)
	}

	return upstream, nil
}

// List returns registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.upstreams))
	for name := range r.upstreams {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
