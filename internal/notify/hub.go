// Package notify implements the in-process change feed. Writers publish a
// bare (table, family) signal after committing; readers hold subscriptions
// and re-query whenever the signal fires. No payload is carried: the signal
// is a dirty flag, not a data feed.
package notify

import "sync"

type subKey struct {
	table    string
	familyID int64
}

// Hub fans table-change signals out to family-scoped subscriptions.
// The zero value is not usable; create one with NewHub.
type Hub struct {
	mu   sync.Mutex
	subs map[subKey]map[*Subscription]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		subs: make(map[subKey]map[*Subscription]struct{}),
	}
}

// Subscribe registers interest in insert/update/delete events on table for
// rows owned by familyID. The caller must Cancel the subscription on every
// exit path; a leaked subscription is never reclaimed.
func (h *Hub) Subscribe(table string, familyID int64) *Subscription {
	sub := &Subscription{
		hub: h,
		key: subKey{table: table, familyID: familyID},
		C:   make(chan struct{}, 1),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.key]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[sub.key] = set
	}
	set[sub] = struct{}{}

	return sub
}

// Publish signals every subscription for (table, familyID). The send is
// non-blocking: a signal already pending is not duplicated, so bursts of
// writes coalesce into a single wake-up.
func (h *Hub) Publish(table string, familyID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs[subKey{table: table, familyID: familyID}] {
		select {
		case sub.C <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount reports how many subscriptions exist for (table, familyID)
func (h *Hub) SubscriberCount(table string, familyID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[subKey{table: table, familyID: familyID}])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[sub.key]
	if !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.key)
	}
}

// Subscription is a live listener on one (table, family) scope. C receives
// at most one pending signal at a time; consumers must re-read their data
// on every receive. C is closed by Cancel.
type Subscription struct {
	hub  *Hub
	key  subKey
	C    chan struct{}
	once sync.Once
}

// Table returns the table this subscription watches
func (s *Subscription) Table() string {
	return s.key.table
}

// Cancel releases the subscription. It is safe to call more than once and
// safe to call concurrently with Publish.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.C)
	})
}
