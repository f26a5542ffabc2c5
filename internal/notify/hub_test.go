package notify

import (
	"sync"
	"testing"
	"time"
)

func signalled(t *testing.T, sub *Subscription) bool {
	t.Helper()
	select {
	case _, ok := <-sub.C:
		return ok
	case <-time.After(100 * time.Millisecond):
		return false
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	first := hub.Subscribe("daily_choices", 1)
	second := hub.Subscribe("daily_choices", 1)
	defer first.Cancel()
	defer second.Cancel()

	hub.Publish("daily_choices", 1)

	if !signalled(t, first) {
		t.Error("first subscriber missed the signal")
	}
	if !signalled(t, second) {
		t.Error("second subscriber missed the signal")
	}
}

func TestPublishScopedByTableAndFamily(t *testing.T) {
	hub := NewHub()
	sameScope := hub.Subscribe("daily_choices", 1)
	otherTable := hub.Subscribe("food_items", 1)
	otherFamily := hub.Subscribe("daily_choices", 2)
	defer sameScope.Cancel()
	defer otherTable.Cancel()
	defer otherFamily.Cancel()

	hub.Publish("daily_choices", 1)

	if !signalled(t, sameScope) {
		t.Error("matching subscriber missed the signal")
	}
	if signalled(t, otherTable) {
		t.Error("other table must not be signalled")
	}
	if signalled(t, otherFamily) {
		t.Error("other family must not be signalled")
	}
}

func TestBurstCoalescesIntoOneSignal(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("daily_choices", 1)
	defer sub.Cancel()

	for i := 0; i < 10; i++ {
		hub.Publish("daily_choices", 1)
	}

	if !signalled(t, sub) {
		t.Fatal("expected a pending signal")
	}
	select {
	case <-sub.C:
		t.Error("burst should collapse into a single pending signal")
	default:
	}
}

func TestCancelRemovesSubscription(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("children", 1)

	if got := hub.SubscriberCount("children", 1); got != 1 {
		t.Fatalf("count = %d, want 1", got)
	}

	sub.Cancel()
	sub.Cancel() // idempotent

	if got := hub.SubscriberCount("children", 1); got != 0 {
		t.Errorf("count after cancel = %d, want 0", got)
	}

	// Publishing after cancel must not panic or signal
	hub.Publish("children", 1)
	if _, ok := <-sub.C; ok {
		t.Error("cancelled channel should be closed")
	}
}

func TestCancelConcurrentWithPublish(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		sub := hub.Subscribe("daily_choices", 1)
		wg.Add(2)
		go func() {
			defer wg.Done()
			hub.Publish("daily_choices", 1)
		}()
		go func(sub *Subscription) {
			defer wg.Done()
			sub.Cancel()
		}(sub)
	}
	wg.Wait()

	if got := hub.SubscriberCount("daily_choices", 1); got != 0 {
		t.Errorf("count = %d, want 0", got)
	}
}

func TestSetReplacesPriorSubscription(t *testing.T) {
	hub := NewHub()
	set := NewSet(hub)
	defer set.CancelAll()

	first := set.Watch("daily_choices", 1)
	second := set.Watch("daily_choices", 1)

	if got := hub.SubscriberCount("daily_choices", 1); got != 1 {
		t.Errorf("count after rewatch = %d, want 1", got)
	}

	// The first subscription is cancelled, the second is live
	if _, ok := <-first.C; ok {
		t.Error("replaced subscription should be closed")
	}
	hub.Publish("daily_choices", 1)
	if !signalled(t, second) {
		t.Error("replacement subscription missed the signal")
	}
}

func TestSetCancelAll(t *testing.T) {
	hub := NewHub()
	set := NewSet(hub)

	set.Watch("children", 1)
	set.Watch("food_items", 1)
	set.CancelAll()

	if hub.SubscriberCount("children", 1) != 0 || hub.SubscriberCount("food_items", 1) != 0 {
		t.Error("CancelAll should release every subscription")
	}

	// The set stays usable
	sub := set.Watch("children", 1)
	defer set.CancelAll()
	hub.Publish("children", 1)
	if !signalled(t, sub) {
		t.Error("set should accept new watches after CancelAll")
	}
}
