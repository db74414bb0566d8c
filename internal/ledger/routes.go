package ledger

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes mounts the deposit and job payment endpoints.
func Routes(router *gin.RouterGroup, service *Service, logger *zap.Logger, authn gin.HandlerFunc) {
	handler := NewHandler(service, logger)

	balances := router.Group("/balances", authn)
	balances.POST("/deposit/:userId", handler.Deposit)

	jobs := router.Group("/jobs", authn)
	jobs.GET("/unpaid", handler.UnpaidJobs)
	jobs.POST("/:job_id/pay", handler.PayJob)
}
