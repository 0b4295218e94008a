// Package session tracks live designer sessions. One designer per
// browser session; the registry itself holds no draft state.
package session

import (
	"sync"

	"mix-service/internal/designer"
)

// Registry is a concurrency-safe session map.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*designer.Designer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*designer.Designer),
	}
}

// Put registers a designer under a session ID.
func (r *Registry) Put(id string, d *designer.Designer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = d
}

// Get looks up a session.
func (r *Registry) Get(id string) (*designer.Designer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.sessions[id]
	return d, ok
}

// Remove drops a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ForEach visits every live session.
func (r *Registry) ForEach(fn func(d *designer.Designer)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.sessions {
		fn(d)
	}
}
