package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestHubHistoryCap(t *testing.T) {
	hub := NewHub()
	for i := 0; i < historyLimit+20; i++ {
		hub.Publish("teachers", "added", fmt.Sprintf("t%d", i), "teacher added")
	}

	history := hub.History()
	if len(history) != historyLimit {
		t.Fatalf("expected history capped at %d, got %d", historyLimit, len(history))
	}
	if history[0].EntityID != fmt.Sprintf("t%d", historyLimit+19) {
		t.Fatalf("expected newest event first, got %q", history[0].EntityID)
	}
}

func TestHubDeduplicates(t *testing.T) {
	hub := NewHub()
	hub.Publish("evaluations", "added", "e1", "evaluation recorded")
	hub.Publish("evaluations", "added", "e1", "evaluation recorded")

	if got := len(hub.History()); got != 1 {
		t.Fatalf("expected duplicate suppressed, history has %d entries", got)
	}
}

func TestHubAllowsRepeatOutsideDedupWindow(t *testing.T) {
	hub := NewHub()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	hub.now = func() time.Time { return clock }

	hub.Publish("teachers", "modified", "t1", "teacher profile updated")
	clock = base.Add(dedupWindow / 2)
	hub.Publish("teachers", "modified", "t1", "teacher profile updated")
	if got := len(hub.History()); got != 1 {
		t.Fatalf("expected repeat inside window suppressed, history has %d entries", got)
	}

	clock = base.Add(dedupWindow + time.Second)
	hub.Publish("teachers", "modified", "t1", "teacher profile updated")
	if got := len(hub.History()); got != 2 {
		t.Fatalf("expected repeat outside window delivered, history has %d entries", got)
	}
}

func TestHubDeliversToSubscriber(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := hub.Subscribe(ctx)
	hub.Publish("teachers", "added", "t1", "teacher added")

	select {
	case event := <-events:
		if event.EntityID != "t1" || event.Kind != "teachers" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("expected event delivery")
	}
}

func TestHubStopsAfterUnsubscribe(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	events := hub.Subscribe(ctx)
	cancel()

	// wait for teardown to close the channel
	deadline := time.After(time.Second)
	for {
		select {
		case _, open := <-events:
			if !open {
				hub.Publish("teachers", "removed", "t9", "teacher removed")
				if _, open := <-events; open {
					t.Fatal("expected no delivery after unsubscribe")
				}
				return
			}
		case <-deadline:
			t.Fatal("subscription was not torn down")
		}
	}
}
