package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/techgov/catalog-backend/internal/handlers"
	"github.com/techgov/catalog-backend/internal/middleware"
	"github.com/techgov/catalog-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string

	ReadyHandler      *handlers.ReadyHandler
	ApprovalHandler   *handlers.ApprovalHandler
	ViolationsHandler *handlers.ViolationsHandler
	UsageHandler      *handlers.UsageHandler
	TeamHandler       *handlers.TeamHandler
	TechnologyHandler *handlers.TechnologyHandler
	PolicyHandler     *handlers.PolicyHandler
	SystemHandler     *handlers.SystemHandler
	EventsHandler     *handlers.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(cfg.Log))
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Operational
	router.GET("/healthz", handlers.Healthz)
	router.GET("/readyz", cfg.ReadyHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Governance query surfaces
		api.GET("/approvals/resolve", cfg.ApprovalHandler.Resolve)
		api.GET("/violations", cfg.ViolationsHandler.List)
		api.GET("/teams/:name/usage", cfg.UsageHandler.Summary)

		// Teams
		api.GET("/teams", cfg.TeamHandler.List)
		api.POST("/teams", cfg.TeamHandler.Create)
		api.GET("/teams/:name", cfg.TeamHandler.Get)
		api.PUT("/teams/:name", cfg.TeamHandler.Update)
		api.DELETE("/teams/:name", cfg.TeamHandler.Delete)
		api.POST("/teams/:name/usage", cfg.TeamHandler.RecordUsage)
		api.POST("/teams/:name/approvals", cfg.TeamHandler.UpsertApproval)
		api.DELETE("/teams/:name/approvals/:technology", cfg.TeamHandler.RemoveApproval)

		// Technologies
		api.GET("/technologies", cfg.TechnologyHandler.List)
		api.POST("/technologies", cfg.TechnologyHandler.Create)
		api.GET("/technologies/:name", cfg.TechnologyHandler.Get)
		api.PUT("/technologies/:name", cfg.TechnologyHandler.Update)
		api.DELETE("/technologies/:name", cfg.TechnologyHandler.Delete)
		api.GET("/technologies/:name/versions", cfg.TechnologyHandler.ListVersions)
		api.POST("/technologies/:name/versions", cfg.TechnologyHandler.AddVersion)

		// Policies
		api.GET("/policies", cfg.PolicyHandler.List)
		api.POST("/policies", cfg.PolicyHandler.Create)
		api.GET("/policies/:name", cfg.PolicyHandler.Get)
		api.PUT("/policies/:name", cfg.PolicyHandler.Update)
		api.DELETE("/policies/:name", cfg.PolicyHandler.Delete)
		api.POST("/policies/:name/governs", cfg.PolicyHandler.AttachGoverns)
		api.POST("/policies/:name/subjects", cfg.PolicyHandler.AttachSubjectTo)
		api.POST("/policies/:name/enforcers", cfg.PolicyHandler.AttachEnforces)

		// Systems
		api.GET("/systems", cfg.SystemHandler.List)
		api.POST("/systems", cfg.SystemHandler.Create)
		api.DELETE("/systems/:name", cfg.SystemHandler.Delete)
		api.POST("/systems/:name/components", cfg.SystemHandler.AttachComponent)

		// Events
		api.GET("/events/stream", cfg.EventsHandler.Stream)
	}

	return router
}
