// Package server assembles the HTTP surface: middleware, routes, health
// and metrics endpoints.
package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gigworks/ledgerd/internal/auth"
	"github.com/gigworks/ledgerd/internal/contracts"
	"github.com/gigworks/ledgerd/internal/ledger"
	"github.com/gigworks/ledgerd/internal/reporting"
)

// New builds the gin engine with all routes mounted under /api/v1.
func New(
	logger *zap.Logger,
	ledgerSvc *ledger.Service,
	contractsSvc *contracts.Service,
	reportingSvc *reporting.Service,
) *gin.Engine {
	router := gin.New()
	router.Use(ginzap.Ginzap(logger, "", true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(cors.Default())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authn := auth.Middleware(ledgerSvc)

	v1 := router.Group("/api/v1")
	ledger.Routes(v1, ledgerSvc, logger, authn)
	contracts.Routes(v1, contractsSvc, logger, authn)
	reporting.Routes(v1, reportingSvc, logger, authn)

	return router
}
