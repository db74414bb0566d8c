package contracts

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes mounts the contract endpoints.
func Routes(router *gin.RouterGroup, service *Service, logger *zap.Logger, authn gin.HandlerFunc) {
	handler := NewHandler(service, logger)

	group := router.Group("/contracts", authn)
	group.GET("", handler.ListContracts)
	group.GET("/:id", handler.GetContract)
}
