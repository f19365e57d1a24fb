package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/config"
	"github.com/stridesense/stridesense-backend-go/internal/handler"
	"github.com/stridesense/stridesense-backend-go/internal/middleware"
)

// Handlers 路由依赖
type Handlers struct {
	Auth     *handler.AuthHandler
	Activity *handler.ActivityHandler
	View     *handler.ViewHandler
}

// SetupRouter 设置路由
func SetupRouter(ctx context.Context, cfg *config.Config, h Handlers, auth middleware.TokenValidator, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.Frontend.URL))
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "StrideSense API is running",
		})
	})

	// OAuth
	r.GET("/login", h.Auth.Login)
	r.GET("/callback", h.Auth.Callback)

	// API 路由组
	v1 := r.Group("/api/v1")
	{
		v1.POST("/views", h.View.ComputeView)

		activities := v1.Group("/activities", middleware.RequireAuth(auth, log))
		{
			activities.GET("", h.Activity.ListActivities)
			activities.GET("/:id", h.Activity.GetActivity)
			activities.GET("/:id/points", h.Activity.GetPoints)
			activities.GET("/:id/view", h.View.GetView)
			activities.GET("/:id/view.geojson", h.View.GetGeoJSON)
			activities.GET("/:id/segments.parquet", h.View.GetParquet)
		}
	}

	return r
}
