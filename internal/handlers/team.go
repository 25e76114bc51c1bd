package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type TeamHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewTeamHandler(log *logger.Logger, catalog services.CatalogService) *TeamHandler {
	return &TeamHandler{
		log:     log.With("handler", "TeamHandler"),
		catalog: catalog,
	}
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.catalog.ListTeams(c.Request.Context())
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"teams": teams})
}

func (h *TeamHandler) Get(c *gin.Context) {
	team, err := h.catalog.GetTeam(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, team)
}

func (h *TeamHandler) Create(c *gin.Context) {
	var team domain.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	if err := h.catalog.UpsertTeam(c.Request.Context(), &team); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, team)
}

func (h *TeamHandler) Update(c *gin.Context) {
	var team domain.Team
	if err := c.ShouldBindJSON(&team); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	team.Name = c.Param("name")
	if err := h.catalog.UpsertTeam(c.Request.Context(), &team); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, team)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteTeam(c.Request.Context(), c.Param("name")); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"deleted": c.Param("name")})
}

type recordUsageRequest struct {
	Technology   string `json:"technology" binding:"required"`
	SystemCount  int    `json:"systemCount"`
	FirstUsed    string `json:"firstUsed"`
	LastVerified string `json:"lastVerified"`
}

func (h *TeamHandler) RecordUsage(c *gin.Context) {
	var req recordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	team := c.Param("name")
	if err := h.catalog.RecordUsage(c.Request.Context(), team, req.Technology, req.SystemCount, req.FirstUsed, req.LastVerified); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"team": team, "technology": req.Technology})
}

type upsertApprovalRequest struct {
	Technology        string `json:"technology" binding:"required"`
	Version           string `json:"version"`
	Time              string `json:"time" binding:"required"`
	ApprovedAt        string `json:"approvedAt"`
	DeprecatedAt      string `json:"deprecatedAt"`
	EOLDate           string `json:"eolDate"`
	MigrationTarget   string `json:"migrationTarget"`
	Notes             string `json:"notes"`
	ApprovedBy        string `json:"approvedBy"`
	VersionConstraint string `json:"versionConstraint"`
}

func (h *TeamHandler) UpsertApproval(c *gin.Context) {
	var req upsertApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	team := c.Param("name")
	edge := &domain.ApprovalEdge{
		Time:              domain.Disposition(req.Time),
		ApprovedAt:        req.ApprovedAt,
		DeprecatedAt:      req.DeprecatedAt,
		EOLDate:           req.EOLDate,
		MigrationTarget:   req.MigrationTarget,
		Notes:             req.Notes,
		ApprovedBy:        req.ApprovedBy,
		VersionConstraint: req.VersionConstraint,
	}
	if err := h.catalog.UpsertApproval(c.Request.Context(), team, req.Technology, req.Version, edge); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"team": team, "technology": req.Technology, "version": req.Version})
}

func (h *TeamHandler) RemoveApproval(c *gin.Context) {
	team := c.Param("name")
	technology := c.Param("technology")
	if err := h.catalog.RemoveApproval(c.Request.Context(), team, technology); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"team": team, "technology": technology})
}
