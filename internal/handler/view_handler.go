package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridesense/stridesense-backend-go/internal/export"
	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/service"
	"github.com/stridesense/stridesense-backend-go/pkg/response"
)

const (
	contentTypeGeoJSON = "application/geo+json"
	contentTypeParquet = "application/vnd.apache.parquet"
)

// ComputeViewRequest is the body of POST /api/v1/views
type ComputeViewRequest struct {
	Points models.PointSeries `json:"points"`
}

// ViewHandler handles HTTP requests for filtered activity views
type ViewHandler struct {
	viewService *service.ViewService
}

// NewViewHandler creates a new view handler
func NewViewHandler(viewService *service.ViewService) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
	}
}

// GetView handles GET /api/v1/activities/:id/view
func (h *ViewHandler) GetView(c *gin.Context) {
	view, ok := h.activityView(c)
	if !ok {
		return
	}
	response.Success(c, view)
}

// GetGeoJSON handles GET /api/v1/activities/:id/view.geojson
func (h *ViewHandler) GetGeoJSON(c *gin.Context) {
	view, ok := h.activityView(c)
	if !ok {
		return
	}

	data, err := export.GeoJSON(view.View)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeGeoJSON, data)
}

// GetParquet handles GET /api/v1/activities/:id/segments.parquet
func (h *ViewHandler) GetParquet(c *gin.Context) {
	view, ok := h.activityView(c)
	if !ok {
		return
	}

	data, err := export.SegmentsParquet(view.View)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="activity-%s-%s.parquet"`, c.Param("id"), view.Filter))
	c.Data(http.StatusOK, contentTypeParquet, data)
}

// ComputeView handles POST /api/v1/views
func (h *ViewHandler) ComputeView(c *gin.Context) {
	filter, ok := filterState(c)
	if !ok {
		return
	}

	var req ComputeViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.viewService.ComputeView(req.Points, filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, view)
}

func (h *ViewHandler) activityView(c *gin.Context) (*models.ActivityView, bool) {
	session, ok := requireSession(c)
	if !ok {
		return nil, false
	}
	id, ok := activityID(c)
	if !ok {
		return nil, false
	}
	filter, ok := filterState(c)
	if !ok {
		return nil, false
	}

	view, err := h.viewService.GetView(c.Request.Context(), session, id, filter)
	if err != nil {
		response.FromError(c, err)
		return nil, false
	}
	return view, true
}
