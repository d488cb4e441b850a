package ws

import "sync"

// Registry maps a user ID to the connection ID of that user's live socket.
// At most one connection per user: a second session overwrites the first.
// The key set, read at any instant, is the online-user set.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: map[string]string{},
	}
}

// Register inserts or overwrites the mapping for userID. Last connection wins.
func (r *Registry) Register(userID, connID string) {
	r.mu.Lock()
	r.byUser[userID] = connID
	r.mu.Unlock()
}

// Unregister removes the mapping for userID only if connID is still the
// current one. A disconnect from a superseded session (fast reconnect) must
// not evict the live connection.
func (r *Registry) Unregister(userID, connID string) {
	r.mu.Lock()
	if r.byUser[userID] == connID {
		delete(r.byUser, userID)
	}
	r.mu.Unlock()
}

// Lookup returns the connection ID currently representing userID, if any.
func (r *Registry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	connID, ok := r.byUser[userID]
	r.mu.RUnlock()
	return connID, ok
}

// OnlineUserIDs returns a snapshot copy of the online-user set.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.byUser))
	for uid := range r.byUser {
		ids = append(ids, uid)
	}
	return ids
}
