package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type ApprovalHandler struct {
	log       *logger.Logger
	approvals services.ApprovalService
}

func NewApprovalHandler(log *logger.Logger, approvals services.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{
		log:       log.With("handler", "ApprovalHandler"),
		approvals: approvals,
	}
}

// Resolve answers GET /api/approvals/resolve?team=&technology=&version=.
func (h *ApprovalHandler) Resolve(c *gin.Context) {
	team := c.Query("team")
	technology := c.Query("technology")
	version := c.Query("version")

	result, err := h.approvals.Resolve(c.Request.Context(), team, technology, version)
	if err != nil {
		h.log.Debug("approval resolution failed", "team", team, "technology", technology, "error", err)
		RespondFromError(c, err)
		return
	}
	RespondData(c, result)
}
