package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/service"
	"github.com/stridesense/stridesense-backend-go/pkg/response"
)

// ActivityHandler handles HTTP requests for activities
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// ListActivities handles GET /api/v1/activities
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var q models.ActivityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	activities, err := h.activityService.List(c.Request.Context(), session, q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{
		"data":  activities,
		"count": len(activities),
	})
}

// GetActivity handles GET /api/v1/activities/:id
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := activityID(c)
	if !ok {
		return
	}

	activity, err := h.activityService.Get(c.Request.Context(), session, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, activity)
}

// GetPoints handles GET /api/v1/activities/:id/points
func (h *ActivityHandler) GetPoints(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	id, ok := activityID(c)
	if !ok {
		return
	}

	points, err := h.activityService.Points(c.Request.Context(), session, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, points)
}
