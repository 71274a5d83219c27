package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/voice-search-api/api/clips"
	"github.com/killallgit/voice-search-api/api/health"
	"github.com/killallgit/voice-search-api/api/jobs"
	"github.com/killallgit/voice-search-api/api/profiles"
	"github.com/killallgit/voice-search-api/api/search"
	"github.com/killallgit/voice-search-api/api/types"
	"github.com/killallgit/voice-search-api/api/upload"
	"github.com/killallgit/voice-search-api/api/version"
	_ "github.com/killallgit/voice-search-api/docs/swagger"
	"github.com/killallgit/voice-search-api/pkg/config"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")

	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// Register profile routes with general rate limiting (10 req/s, burst of 20)
	profileGroup := v1.Group("/profiles")
	profileGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	profiles.RegisterRoutes(profileGroup, deps)

	// Register upload routes with strict rate limiting (2 req/s, burst of 5)
	// and a raised body size cap for the audio payload
	uploadGroup := v1.Group("/upload")
	uploadGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 2, 5))
	uploadGroup.Use(RequestSizeLimitWithSize(cfg.Server.MaxUploadBytes))
	upload.RegisterRoutes(uploadGroup, deps)

	// Register search routes with dedicated rate limiting (5 req/s, burst of 10)
	searchGroup := v1.Group("/search")
	searchGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	search.RegisterRoutes(searchGroup, deps)

	// Register clip routes with general rate limiting (10 req/s, burst of 20)
	clipGroup := v1.Group("/clips")
	clipGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	clips.RegisterRoutes(clipGroup, deps)

	// Register job routes with moderate rate limiting (20 req/s, burst of 30)
	// Higher limits for progress polling
	jobGroup := v1.Group("/jobs")
	jobGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30))
	jobs.RegisterRoutes(jobGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
