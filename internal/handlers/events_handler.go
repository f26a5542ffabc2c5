package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"mealpick/internal/notify"
)

// watchableTables lists the tables dashboards may subscribe to
var watchableTables = map[string]bool{
	"children":           true,
	"food_items":         true,
	"daily_choices":      true,
	"daily_choice_items": true,
}

// EventsHandler streams change notifications to dashboards over
// server-sent events.
type EventsHandler struct {
	hub *notify.Hub

	heartbeat time.Duration
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *notify.Hub) *EventsHandler {
	return &EventsHandler{
		hub:       hub,
		heartbeat: 25 * time.Second,
	}
}

// Stream handles GET /events. Each event names a table that changed in the
// caller's family; the client re-fetches whatever it renders from that
// table. Events carry no row data. The ?tables= parameter narrows the
// subscription; by default all tables are watched.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	family := GetFamilyFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	tables, err := parseTables(r.URL.Query().Get("tables"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	set := notify.NewSet(h.hub)
	defer set.CancelAll()

	subs := make([]*notify.Subscription, 0, len(tables))
	for _, table := range tables {
		subs = append(subs, set.Watch(table, family.ID))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "event: ready\ndata: {}\n\n")
	flusher.Flush()

	// Funnel all subscriptions into one channel carrying the table name.
	// Each goroutine exits when its subscription closes on CancelAll.
	changes := make(chan string)
	done := r.Context().Done()
	for _, sub := range subs {
		go func(sub *notify.Subscription) {
			for range sub.C {
				select {
				case changes <- sub.Table():
				case <-done:
					return
				}
			}
		}(sub)
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case table := <-changes:
			fmt.Fprintf(w, "event: change\ndata: {\"table\":%q}\n\n", table)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}

func parseTables(param string) ([]string, error) {
	if param == "" {
		tables := make([]string, 0, len(watchableTables))
		for table := range watchableTables {
			tables = append(tables, table)
		}
		return tables, nil
	}

	var tables []string
	for _, table := range strings.Split(param, ",") {
		table = strings.TrimSpace(table)
		if table == "" {
			continue
		}
		if !watchableTables[table] {
			return nil, fmt.Errorf("unknown table %q", table)
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables requested")
	}
	return tables, nil
}
