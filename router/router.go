package router

import (
	"github.com/NomadCrew/feedback-portal/config"
	"github.com/NomadCrew/feedback-portal/handlers"
	"github.com/NomadCrew/feedback-portal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/NomadCrew/feedback-portal/docs"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	FeedbackHandler *handlers.FeedbackHandler
	HealthHandler   *handlers.HealthHandler
	RateLimiter     *middleware.SubmissionRateLimiter
	Metrics         *middleware.HTTPMetrics
	Gatherer        prometheus.Gatherer
}

// SetupRouter configures and returns the API gin engine.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	feedback := r.Group("/feedback")
	{
		submit := []gin.HandlerFunc{deps.FeedbackHandler.CreateFeedback}
		if deps.RateLimiter != nil {
			submit = append([]gin.HandlerFunc{deps.RateLimiter.Middleware()}, submit...)
		}
		feedback.POST("", submit...)
		feedback.GET("", deps.FeedbackHandler.ListFeedback)
		feedback.GET("/:id", deps.FeedbackHandler.GetFeedback)
		feedback.POST("/:id/respond", deps.FeedbackHandler.RespondToFeedback)
		feedback.DELETE("/:id", deps.FeedbackHandler.DeleteFeedback)
	}

	return r
}
