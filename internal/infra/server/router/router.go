// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/trackd-analytics/byod/internal/integration/entrypoint/controller"
	"github.com/trackd-analytics/byod/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine            *gin.Engine
	healthController  *controller.HealthController
	projectController *controller.ProjectController
	rateLimiter       *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	projectController *controller.ProjectController,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:  healthController,
		projectController: projectController,
		rateLimiter:       rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		if r.projectController != nil {
			projects := v1.Group("/projects")
			if r.rateLimiter != nil {
				projects.Use(r.rateLimiter.Middleware())
			}
			{
				projects.POST("/validate", r.projectController.Validate)
				projects.POST("/normalize", r.projectController.Normalize)
				projects.POST("/analyze", r.projectController.Analyze)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
