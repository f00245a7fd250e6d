// Package router wires middleware and handlers into the Gin engine.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/eventpulse/feedback-backend/config"
	"github.com/eventpulse/feedback-backend/handlers"
	"github.com/eventpulse/feedback-backend/middleware"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	RedisClient     *redis.Client
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	// Health and metrics routes
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The public submission endpoint is the only rate-limited route; the
	// limiter is a no-op when no redis client is configured.
	submitLimiter := middleware.SubmissionRateLimiter(
		deps.RedisClient,
		deps.Config.RateLimit.SubmissionsPerMinute,
		time.Duration(deps.Config.RateLimit.WindowSeconds)*time.Second,
	)

	// Feedback routes sit directly under the /api base path
	api := r.Group("/api")
	{
		api.POST("", submitLimiter, deps.FeedbackHandler.CreateFeedbackHandler)
		api.GET("", deps.FeedbackHandler.ListFeedbackHandler)
		api.GET("/:id", deps.FeedbackHandler.GetFeedbackHandler)
		api.PUT("/:id", deps.FeedbackHandler.UpdateFeedbackHandler)
		api.DELETE("/:id", deps.FeedbackHandler.DeleteFeedbackHandler)
	}

	return r
}
