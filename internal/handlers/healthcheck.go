package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/techgov/catalog-backend/internal/platform/logger"
)

func Healthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Pinger is anything whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

type ReadyHandler struct {
	log   *logger.Logger
	deps  map[string]Pinger
	grace time.Duration
}

func NewReadyHandler(log *logger.Logger, deps map[string]Pinger) *ReadyHandler {
	return &ReadyHandler{
		log:   log.With("handler", "ReadyHandler"),
		deps:  deps,
		grace: 5 * time.Second,
	}
}

// Ready pings every dependency in parallel and reports 503 as soon as any
// one of them is unreachable.
func (h *ReadyHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.grace)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for name, dep := range h.deps {
		if dep == nil {
			continue
		}
		name, dep := name, dep
		g.Go(func() error {
			if err := dep.Ping(ctx); err != nil {
				h.log.Warn("readiness ping failed", "dependency", name, "error", err)
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "not_ready", err)
		return
	}
	RespondData(c, gin.H{"ready": true})
}
