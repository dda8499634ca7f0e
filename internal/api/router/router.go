package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/A-EDev/YTDL/internal/api/handlers"
	"github.com/A-EDev/YTDL/internal/api/middleware"
	"github.com/A-EDev/YTDL/internal/config"
)

type Router struct {
	engine *gin.Engine
	config *config.Config
}

func NewRouter(cfg *config.Config, videoHandler *handlers.VideoHandler, healthHandler *handlers.HealthHandler) *Router {
	// Set Gin mode
	if cfg.Server.Host == "0.0.0.0" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.CorrelationIDMiddleware())

	if cfg.CORS.Enabled {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     cfg.CORS.AllowedMethods,
			AllowHeaders:     cfg.CORS.AllowedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}))
	}

	// Health endpoints
	engine.GET("/api/health", healthHandler.Health)
	engine.GET("/ready", healthHandler.Readiness)
	engine.GET("/live", healthHandler.Liveness)

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Video endpoints
	video := engine.Group("/api/video")
	video.Use(middleware.RateLimitMiddleware(&cfg.API))
	{
		video.GET("/info", videoHandler.GetInfo)                  // /api/video/info
		video.GET("/download", videoHandler.Download)             // /api/video/download
		video.GET("/direct-download", videoHandler.DirectLink)    // /api/video/direct-download
	}

	return &Router{
		engine: engine,
		config: cfg,
	}
}

func (r *Router) Start() error {
	addr := r.config.Server.Host + ":" + r.config.Server.Port
	return r.engine.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
