package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type PolicyHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewPolicyHandler(log *logger.Logger, catalog services.CatalogService) *PolicyHandler {
	return &PolicyHandler{
		log:     log.With("handler", "PolicyHandler"),
		catalog: catalog,
	}
}

func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.catalog.ListPolicies(c.Request.Context())
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"policies": policies})
}

func (h *PolicyHandler) Get(c *gin.Context) {
	policy, err := h.catalog.GetPolicy(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, policy)
}

func (h *PolicyHandler) Create(c *gin.Context) {
	var policy domain.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	if err := h.catalog.UpsertPolicy(c.Request.Context(), &policy); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, policy)
}

func (h *PolicyHandler) Update(c *gin.Context) {
	var policy domain.Policy
	if err := c.ShouldBindJSON(&policy); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	policy.Name = c.Param("name")
	if err := h.catalog.UpsertPolicy(c.Request.Context(), &policy); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, policy)
}

func (h *PolicyHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeletePolicy(c.Request.Context(), c.Param("name")); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"deleted": c.Param("name")})
}

type governsRequest struct {
	Technology string `json:"technology" binding:"required"`
}

func (h *PolicyHandler) AttachGoverns(c *gin.Context) {
	var req governsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	policy := c.Param("name")
	if err := h.catalog.AttachGoverns(c.Request.Context(), policy, req.Technology); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"policy": policy, "governs": req.Technology})
}

type policyTeamRequest struct {
	Team string `json:"team" binding:"required"`
}

func (h *PolicyHandler) AttachSubjectTo(c *gin.Context) {
	var req policyTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	policy := c.Param("name")
	if err := h.catalog.AttachSubjectTo(c.Request.Context(), req.Team, policy); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"policy": policy, "subjectTo": req.Team})
}

func (h *PolicyHandler) AttachEnforces(c *gin.Context) {
	var req policyTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	policy := c.Param("name")
	if err := h.catalog.AttachEnforces(c.Request.Context(), req.Team, policy); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"policy": policy, "enforcedBy": req.Team})
}
