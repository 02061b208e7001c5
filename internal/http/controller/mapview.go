package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"svcmap/internal/http/dto"
	"svcmap/internal/http/resp"
)

// GetMapView reports the current camera, or 503 while the map is down.
func (h *Handler) GetMapView(c *gin.Context) {
	view, ok := h.svc.MapView()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Code: resp.CodeInternalError, Message: "map not initialized"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetVisibleServices returns the services inside the current viewport.
func (h *Handler) GetVisibleServices(c *gin.Context) {
	services := h.svc.VisibleRecords()
	c.JSON(http.StatusOK, dto.ListServicesResponse{Total: len(services), Services: services})
}

// CenterOnService pans the map to one service's marker.
func (h *Handler) CenterOnService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: resp.CodeBadRequest, Message: "id must be an integer"})
		return
	}
	if !h.svc.CenterOn(id) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "service not found or has no coordinates"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: "centered", Message: "map centered"})
}

// FitAllServices fits the view over every rendered marker.
func (h *Handler) FitAllServices(c *gin.Context) {
	if !h.svc.FitAll() {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: resp.CodeNotFound, Message: "no services with coordinates"})
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{Code: "fitted", Message: "map fitted to services"})
}
