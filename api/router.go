package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prospectkit/sitecheck/api/handler"
	"github.com/prospectkit/sitecheck/api/middleware"
	"github.com/prospectkit/sitecheck/cache"
	"github.com/prospectkit/sitecheck/config"
	"github.com/prospectkit/sitecheck/fetch"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger → CORS
//	API:     Auth (if enabled) → RateLimit
//
// CORS is wide open: the checker is called straight from the marketing site's
// front end during development. Health stays outside auth so monitoring
// probes always work.
func NewRouter(f *fetch.Fetcher, cfg *config.Config, cc *cache.Cache, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "Access-Control-Allow-Origin"},
		ExposeHeaders:   []string{"Content-Type", "Authorization"},
		MaxAge:          time.Hour,
	}))

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	protected.POST("/check-site", handler.CheckSite(f, cc))

	return r
}
