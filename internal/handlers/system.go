package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type SystemHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewSystemHandler(log *logger.Logger, catalog services.CatalogService) *SystemHandler {
	return &SystemHandler{
		log:     log.With("handler", "SystemHandler"),
		catalog: catalog,
	}
}

func (h *SystemHandler) List(c *gin.Context) {
	systems, err := h.catalog.ListSystems(c.Request.Context())
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"systems": systems})
}

func (h *SystemHandler) Create(c *gin.Context) {
	var system domain.System
	if err := c.ShouldBindJSON(&system); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	if err := h.catalog.UpsertSystem(c.Request.Context(), &system); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, system)
}

func (h *SystemHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteSystem(c.Request.Context(), c.Param("name")); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"deleted": c.Param("name")})
}

func (h *SystemHandler) AttachComponent(c *gin.Context) {
	var component domain.Component
	if err := c.ShouldBindJSON(&component); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	system := c.Param("name")
	if err := h.catalog.AttachComponent(c.Request.Context(), system, &component); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, gin.H{"system": system, "component": component})
}
