package cart

import "sync"

// Registry hands out one cart per session id. It is the injectable owner of
// cart state: the HTTP layer receives a Registry by reference instead of
// reaching for ambient globals.
type Registry struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*Cart)}
}

// Get returns the cart for the session, creating it on first use.
func (r *Registry) Get(sessionID string) *Cart {
	r.mu.RLock()
	c, ok := r.carts[sessionID]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[sessionID]; ok {
		return c
	}
	c = New()
	r.carts[sessionID] = c
	return c
}

// Drop discards the session's cart.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}
