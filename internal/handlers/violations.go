package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type ViolationsHandler struct {
	log      *logger.Logger
	policies services.PolicyService
}

func NewViolationsHandler(log *logger.Logger, policies services.PolicyService) *ViolationsHandler {
	return &ViolationsHandler{
		log:      log.With("handler", "ViolationsHandler"),
		policies: policies,
	}
}

// List answers GET /api/violations?severity=&team=&technology=.
//
// This surface feeds a dashboard: on a store failure it degrades to an empty
// result set with success=false instead of propagating a 5xx.
func (h *ViolationsHandler) List(c *gin.Context) {
	filters := services.ViolationFilters{
		Severity:   c.Query("severity"),
		Team:       c.Query("team"),
		Technology: c.Query("technology"),
	}

	report, err := h.policies.FindViolations(c.Request.Context(), filters)
	if err != nil {
		h.log.Error("violation evaluation failed", "filters", filters, "error", err)
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"error":   APIError{Code: "evaluation_failed", Message: err.Error()},
			"data":    []domain.Violation{},
			"summary": domain.SeveritySummary{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    report.Violations,
		"summary": report.Summary,
	})
}
