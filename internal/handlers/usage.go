package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type UsageHandler struct {
	log   *logger.Logger
	usage services.UsageService
}

func NewUsageHandler(log *logger.Logger, usage services.UsageService) *UsageHandler {
	return &UsageHandler{
		log:   log.With("handler", "UsageHandler"),
		usage: usage,
	}
}

// Summary answers GET /api/teams/:name/usage. Unlike the violations surface
// this one fails loudly on store errors.
func (h *UsageHandler) Summary(c *gin.Context) {
	team := c.Param("name")
	summary, err := h.usage.Summarize(c.Request.Context(), team)
	if err != nil {
		h.log.Debug("usage summary failed", "team", team, "error", err)
		RespondFromError(c, err)
		return
	}
	RespondData(c, summary)
}
