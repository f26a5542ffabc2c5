package notify

import "sync"

// Set tracks one subscription per (table, family) for a single consumer,
// giving resubscription replace semantics: watching a scope that is already
// watched cancels the old subscription instead of stacking a duplicate.
type Set struct {
	hub  *Hub
	mu   sync.Mutex
	subs map[subKey]*Subscription
}

// NewSet creates a subscription set backed by hub
func NewSet(hub *Hub) *Set {
	return &Set{
		hub:  hub,
		subs: make(map[subKey]*Subscription),
	}
}

// Watch subscribes to (table, familyID), replacing any prior subscription
// for the same scope.
func (s *Set) Watch(table string, familyID int64) *Subscription {
	sub := s.hub.Subscribe(table, familyID)

	s.mu.Lock()
	prev := s.subs[sub.key]
	s.subs[sub.key] = sub
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	return sub
}

// CancelAll releases every subscription held by the set. The set remains
// usable afterwards.
func (s *Set) CancelAll() {
	s.mu.Lock()
	subs := make([]*Subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subs = make(map[subKey]*Subscription)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}
