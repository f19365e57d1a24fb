package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stridesense/stridesense-backend-go/internal/middleware"
	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/service"
	"github.com/stridesense/stridesense-backend-go/pkg/response"
)

func requireSession(c *gin.Context) (*service.Session, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		response.Unauthorized(c, "Authorization token required")
		return nil, false
	}
	return session, true
}

func activityID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid activity ID")
		return 0, false
	}
	return id, true
}

func filterState(c *gin.Context) (models.FilterState, bool) {
	var q models.ViewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return models.FilterNone, false
	}

	filter, err := models.ParseFilterState(q.Filter)
	if err != nil {
		response.BadRequest(c, err.Error())
		return models.FilterNone, false
	}
	return filter, true
}
