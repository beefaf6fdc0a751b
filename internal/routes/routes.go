package routes

import (
	"time"

	"kickstarter-campaigns/internal/config"
	"kickstarter-campaigns/internal/controllers"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Register(cfg config.Config, store controllers.Storage, log *zap.Logger) *gin.Engine {
	res := controllers.NewResourceController(store, log)

	r := gin.New()
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/", controllers.Home)

	api := r.Group("/api/v1")
	api.GET("/:section", res.List)
	api.GET("/:section/:id", res.Get)
	api.POST("/:section", res.Create)
	api.DELETE("/:section", res.Delete)

	r.NoRoute(controllers.NotFound)
	r.NoMethod(controllers.NotFound)

	return r
}
