package sse

import (
	"testing"

	"github.com/techgov/catalog-backend/internal/platform/logger"
)

func TestPublishReachesSubscribersOnChannel(t *testing.T) {
	hub := NewHub(logger.NewNop())
	a := hub.NewClient()
	b := hub.NewClient()
	hub.Subscribe(a, ChannelCatalog)
	hub.Subscribe(b, "team:Backend Team")

	hub.Publish(Message{Channel: ChannelCatalog, Event: EventTeamChanged})

	select {
	case msg := <-a.Outbound:
		if msg.Event != EventTeamChanged {
			t.Fatalf("event = %q, want %q", msg.Event, EventTeamChanged)
		}
	default:
		t.Fatalf("subscriber on channel received nothing")
	}
	select {
	case msg := <-b.Outbound:
		t.Fatalf("subscriber on other channel received %+v", msg)
	default:
	}
}

func TestPublishSkipsSlowClients(t *testing.T) {
	hub := NewHub(logger.NewNop())
	slow := hub.NewClient()
	hub.Subscribe(slow, ChannelCatalog)

	// Fill the buffer, then publish once more. The extra message is dropped
	// instead of blocking.
	for i := 0; i < cap(slow.Outbound)+3; i++ {
		hub.Publish(Message{Channel: ChannelCatalog, Event: EventUsageRecorded})
	}
	if got := len(slow.Outbound); got != cap(slow.Outbound) {
		t.Fatalf("buffered = %d, want %d", got, cap(slow.Outbound))
	}
}

func TestRemoveDetachesAndCloses(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := hub.NewClient()
	hub.Subscribe(client, ChannelCatalog)
	hub.Subscribe(client, "team:Backend Team")

	hub.Remove(client)

	select {
	case <-client.Done():
	default:
		t.Fatalf("removed client must be closed")
	}
	hub.Publish(Message{Channel: ChannelCatalog, Event: EventTeamChanged})
	if len(client.Outbound) != 0 {
		t.Fatalf("removed client still receives messages")
	}
}

func TestUnsubscribeSingleChannel(t *testing.T) {
	hub := NewHub(logger.NewNop())
	client := hub.NewClient()
	hub.Subscribe(client, ChannelCatalog)
	hub.Subscribe(client, "team:Backend Team")
	hub.Unsubscribe(client, ChannelCatalog)

	hub.Publish(Message{Channel: ChannelCatalog, Event: EventTeamChanged})
	hub.Publish(Message{Channel: "team:Backend Team", Event: EventUsageRecorded})

	if got := len(client.Outbound); got != 1 {
		t.Fatalf("messages = %d, want 1", got)
	}
	if msg := <-client.Outbound; msg.Event != EventUsageRecorded {
		t.Fatalf("event = %q, want %q", msg.Event, EventUsageRecorded)
	}
}
