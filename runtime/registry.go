// Package runtime tracks live sessions and hosts the delivery machinery
// that sits between the router and its transports. It contains no domain
// rules.
package runtime

import (
	"chat-relay/contract"
	"sync"
)

// Registry maps users to their live connections. A user may hold several
// sessions at once (multiple tabs, devices); each session owns one sink.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]contract.LiveSink // userID -> sessionID -> sink
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[string]contract.LiveSink),
	}
}

// Subscribe registers a session's sink under its user.
func (r *Registry) Subscribe(userID, sessionID string, sink contract.LiveSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		r.sessions[userID] = make(map[string]contract.LiveSink)
	}
	r.sessions[userID][sessionID] = sink
}

// Unsubscribe removes a session. The user entry is removed entirely once
// its last session is gone so the map does not grow with churn.
func (r *Registry) Unsubscribe(userID, sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sinks, ok := r.sessions[userID]
	if !ok {
		return
	}
	delete(sinks, sessionID)
	if len(sinks) == 0 {
		delete(r.sessions, userID)
	}
}

// SinksFor returns the sinks of every live session of the user.
// A user with no session yields nil, which delivery treats as a no-op.
func (r *Registry) SinksFor(userID string) []contract.LiveSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks, ok := r.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]contract.LiveSink, 0, len(sinks))
	for _, sink := range sinks {
		out = append(out, sink)
	}
	return out
}
