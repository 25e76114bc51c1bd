package sse

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/techgov/catalog-backend/internal/platform/logger"
)

type Event string

const (
	EventTeamChanged       Event = "TeamChanged"
	EventTechnologyChanged Event = "TechnologyChanged"
	EventVersionChanged    Event = "VersionChanged"
	EventPolicyChanged     Event = "PolicyChanged"
	EventApprovalChanged   Event = "ApprovalChanged"
	EventApprovalRemoved   Event = "ApprovalRemoved"
	EventUsageRecorded     Event = "UsageRecorded"
	EventSystemChanged     Event = "SystemChanged"
)

// ChannelCatalog is the firehose channel every catalog change lands on.
// Team-scoped events are additionally published to "team:<name>".
const ChannelCatalog = "catalog"

type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
	once     sync.Once
}

func (c *Client) Done() <-chan struct{} { return c.done }

func (c *Client) Close() {
	c.once.Do(func() { close(c.done) })
}

type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "SSEHub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

func (h *Hub) NewClient() *Client {
	return &Client{
		ID:       uuid.New(),
		Channels: make(map[string]bool),
		Outbound: make(chan Message, 16),
		done:     make(chan struct{}),
	}
}

func (h *Hub) Subscribe(client *Client, channel string) {
	channel = strings.TrimSpace(channel)
	if client == nil || channel == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	client.Channels[channel] = true
	if h.subscriptions[channel] == nil {
		h.subscriptions[channel] = make(map[*Client]bool)
	}
	h.subscriptions[channel][client] = true
}

func (h *Hub) Unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(client.Channels, channel)
	if subs := h.subscriptions[channel]; subs != nil {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

// Remove detaches the client from every channel and closes it.
func (h *Hub) Remove(client *Client) {
	if client == nil {
		return
	}
	h.mu.Lock()
	for channel := range client.Channels {
		if subs := h.subscriptions[channel]; subs != nil {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, channel)
			}
		}
	}
	h.mu.Unlock()
	client.Close()
}

// Publish fans msg out to every subscriber of its channel. Slow clients are
// skipped rather than blocking the publisher.
func (h *Hub) Publish(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.subscriptions[msg.Channel] {
		select {
		case client.Outbound <- msg:
		default:
			h.log.Warn("dropping SSE message for slow client", "client_id", client.ID, "channel", msg.Channel)
		}
	}
}
