package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/richardcmg7/dao-voting-platform/internal/handler"
	"github.com/richardcmg7/dao-voting-platform/pkg/monitor"
	"github.com/richardcmg7/dao-voting-platform/pkg/validator"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(h handler.Handlers) *gin.Engine {
	monitor.Init()
	validator.Init()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(monitor.PrometheusMiddleware())

	r.GET("/health", h.Health.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// unversioned paths are the ones the web client and daemon already call
	legacy := r.Group("/api")
	registerGovernanceRoutes(legacy, h)

	api := r.Group("/api/v1")
	registerGovernanceRoutes(api, h)
	{
		api.GET("/proposals", h.Proposal.ListProposals)
		api.GET("/treasury", h.Proposal.Treasury)
	}

	return r
}

func registerGovernanceRoutes(rg *gin.RouterGroup, h handler.Handlers) {
	rg.POST("/relay", h.Relay.Relay)
	rg.POST("/execute-proposal", h.Execute.ExecuteProposal)
	rg.GET("/execute-proposals", h.Execute.ExecuteReady)
}
