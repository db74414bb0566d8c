package reporting

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Routes mounts the admin reporting endpoints.
func Routes(router *gin.RouterGroup, service *Service, logger *zap.Logger, authn gin.HandlerFunc) {
	handler := NewHandler(service, logger)

	admin := router.Group("/admin", authn)
	admin.GET("/best-profession", handler.BestProfession)
	admin.GET("/best-clients", handler.BestClients)
}
