package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"svcmap/internal/config"
	"svcmap/internal/domain"
	"svcmap/internal/http/dto"
	"svcmap/internal/http/resp"
	"svcmap/internal/model"
	"svcmap/internal/service/directory"
	"svcmap/internal/sse"
)

type Handler struct {
	cfg *config.Config
	svc *directory.Service
	hub *sse.Hub
	log *zap.Logger
}

func NewHandler(cfg *config.Config, svc *directory.Service, hub *sse.Hub, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, svc: svc, hub: hub, log: logger}
}

// ListServices applies the conjunctive filter from query parameters.
// Repeated category/source_org parameters widen the respective set; omitted
// parameters impose no constraint.
func (h *Handler) ListServices(c *gin.Context) {
	q := model.Query{
		Categories: c.QueryArray("category"),
		SourceOrgs: c.QueryArray("source_org"),
		Keyword:    c.Query("q"),
	}
	services, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		h.log.Error("list services failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list services"})
		return
	}
	c.JSON(http.StatusOK, dto.ListServicesResponse{Total: len(services), Services: services})
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "id must be an integer"})
		return
	}
	record, ok, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Error("get service failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to load service"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "service not found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) NearbyServices(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "lat and lng are required"})
		return
	}
	radius := 5.0
	if v := c.Query("radius"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "radius must be a non-negative number"})
			return
		}
		radius = r
	}
	services, err := h.svc.Nearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		h.log.Error("nearby services failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to search nearby services"})
		return
	}
	c.JSON(http.StatusOK, dto.ListServicesResponse{Total: len(services), Services: services})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		h.log.Error("categories failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) GetSourceOrganizations(c *gin.Context) {
	orgs, err := h.svc.SourceOrganizations(c.Request.Context())
	if err != nil {
		h.log.Error("source organizations failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to list source organizations"})
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// CreateService accepts a contribution. A missing required field comes back
// as a 400 naming the field; nothing is stored on failure.
func (h *Handler) CreateService(c *gin.Context) {
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "invalid json"})
		return
	}
	created, err := h.svc.Contribute(c.Request.Context(), req.ToRecord())
	if err != nil {
		if errors.Is(err, domain.ErrMissingField) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: err.Error()})
			return
		}
		h.log.Error("create service failed",
			zap.String("name", req.Name),
			zap.String("category", req.Category),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "failed to create service"})
		return
	}
	c.JSON(http.StatusCreated, created)
}
