package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	historyLimit = 50

	// dedupWindow bounds duplicate suppression: the same action on the same
	// entity is dropped only when it repeats within this window. Later
	// repeats are legitimate changes and go through.
	dedupWindow = 10 * time.Second
)

type Event struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`   // teachers | evaluations
	Action    string    `json:"action"` // added | modified | removed
	EntityID  string    `json:"entityId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key identifies an event for duplicate suppression: the same action on the
// same entity is delivered once per dedup window.
func (e Event) Key() string {
	return e.Kind + ":" + e.Action + ":" + e.EntityID
}

// Hub is an in-process broadcast of teacher/evaluation changes. History is
// capped at the last 50 events; delivery to a slow subscriber is dropped
// rather than blocking the publisher; a subscription ends when its context
// is cancelled.
type Hub struct {
	mu      sync.Mutex
	subs    map[chan Event]struct{}
	history []Event
	now     func() time.Time
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{}), now: time.Now}
}

func (h *Hub) Publish(kind, action, entityID, title string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	event := Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Action:    action,
		EntityID:  entityID,
		Title:     title,
		CreatedAt: h.now().UTC(),
	}

	// History is newest-first, so the first key match is the most recent
	// occurrence; older repeats are already legitimate.
	for _, held := range h.history {
		if held.Key() == event.Key() {
			if event.CreatedAt.Sub(held.CreatedAt) < dedupWindow {
				return
			}
			break
		}
	}
	h.history = append([]Event{event}, h.history...)
	if len(h.history) > historyLimit {
		h.history = h.history[:historyLimit]
	}

	// Sends stay under the lock so a concurrent teardown cannot close a
	// channel mid-send; a full subscriber buffer drops the event instead
	// of blocking the publisher.
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers a listener torn down when ctx is cancelled. No events
// are delivered after teardown.
func (h *Hub) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
		close(ch)
	}()

	return ch
}

func (h *Hub) History() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.history))
	copy(out, h.history)
	return out
}
