package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/sse"
)

type EventsHandler struct {
	log *logger.Logger
	hub *sse.Hub
}

func NewEventsHandler(log *logger.Logger, hub *sse.Hub) *EventsHandler {
	return &EventsHandler{
		log: log.With("handler", "EventsHandler"),
		hub: hub,
	}
}

// Stream answers GET /api/events/stream?channel=catalog&channel=team:X with
// a server-sent-event stream of catalog changes.
func (h *EventsHandler) Stream(c *gin.Context) {
	channels := c.QueryArray("channel")
	if len(channels) == 0 {
		channels = []string{sse.ChannelCatalog}
	}

	client := h.hub.NewClient()
	for _, channel := range channels {
		h.hub.Subscribe(client, channel)
	}
	defer h.hub.Remove(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	h.log.Debug("SSE client connected", "client_id", client.ID, "channels", channels)
	c.Stream(func(w io.Writer) bool {
		select {
		case msg := <-client.Outbound:
			c.SSEvent(string(msg.Event), msg)
			return true
		case <-c.Request.Context().Done():
			return false
		case <-client.Done():
			return false
		}
	})
	h.log.Debug("SSE client disconnected", "client_id", client.ID)
}
