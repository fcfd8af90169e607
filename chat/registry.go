package chat

import "sync"

// Endpoint is the live handle a connected user is reached through.
type Endpoint interface {
	Deliver(evt Event) error
	Close() error
}

// Registry maps user ids to their live endpoint, one entry per user.
type Registry struct {
	mu        sync.RWMutex
	endpoints map[string]Endpoint
}

func NewRegistry() *Registry {
	return &Registry{endpoints: make(map[string]Endpoint)}
}

// Connect registers ep for userID. A previous endpoint for the same user is
// replaced and closed.
func (r *Registry) Connect(userID string, ep Endpoint) {
	r.mu.Lock()
	prev, ok := r.endpoints[userID]
	r.endpoints[userID] = ep
	r.mu.Unlock()

	if ok && prev != ep {
		_ = prev.Close()
	}
}

// Disconnect drops whatever endpoint userID has. No-op if absent.
func (r *Registry) Disconnect(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.endpoints, userID)
}

// Release removes userID only while ep is still its registered endpoint, so a
// superseded session cannot evict its replacement.
func (r *Registry) Release(userID string, ep Endpoint) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.endpoints[userID]; ok && cur == ep {
		delete(r.endpoints, userID)
		return true
	}
	return false
}

// Lookup reports the endpoint of a connected user. Not being connected is a
// normal outcome.
func (r *Registry) Lookup(userID string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ep, ok := r.endpoints[userID]
	return ep, ok
}

func (r *Registry) Online(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.endpoints)
}
