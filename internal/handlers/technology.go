package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techgov/catalog-backend/internal/domain"
	"github.com/techgov/catalog-backend/internal/platform/apierr"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/services"
)

type TechnologyHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewTechnologyHandler(log *logger.Logger, catalog services.CatalogService) *TechnologyHandler {
	return &TechnologyHandler{
		log:     log.With("handler", "TechnologyHandler"),
		catalog: catalog,
	}
}

func (h *TechnologyHandler) List(c *gin.Context) {
	techs, err := h.catalog.ListTechnologies(c.Request.Context(), c.Query("category"), c.Query("vendor"))
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"technologies": techs})
}

func (h *TechnologyHandler) Get(c *gin.Context) {
	tech, err := h.catalog.GetTechnology(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, tech)
}

func (h *TechnologyHandler) Create(c *gin.Context) {
	var tech domain.Technology
	if err := c.ShouldBindJSON(&tech); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	if err := h.catalog.UpsertTechnology(c.Request.Context(), &tech); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, tech)
}

func (h *TechnologyHandler) Update(c *gin.Context) {
	var tech domain.Technology
	if err := c.ShouldBindJSON(&tech); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	tech.Name = c.Param("name")
	if err := h.catalog.UpsertTechnology(c.Request.Context(), &tech); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, tech)
}

func (h *TechnologyHandler) Delete(c *gin.Context) {
	if err := h.catalog.DeleteTechnology(c.Request.Context(), c.Param("name")); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"deleted": c.Param("name")})
}

func (h *TechnologyHandler) ListVersions(c *gin.Context) {
	versions, err := h.catalog.ListVersions(c.Request.Context(), c.Param("name"))
	if err != nil {
		RespondFromError(c, err)
		return
	}
	RespondData(c, gin.H{"versions": versions})
}

func (h *TechnologyHandler) AddVersion(c *gin.Context) {
	var v domain.Version
	if err := c.ShouldBindJSON(&v); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeInvalidArgument, err)
		return
	}
	v.Technology = c.Param("name")
	if err := h.catalog.AddVersion(c.Request.Context(), &v); err != nil {
		RespondFromError(c, err)
		return
	}
	RespondCreated(c, v)
}
