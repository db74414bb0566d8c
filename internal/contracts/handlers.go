package contracts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gigworks/ledgerd/internal/auth"
	"github.com/gigworks/ledgerd/pkg/errors"
)

// Handler provides HTTP handlers for contract lookups.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a contracts handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// GetContract handles GET /contracts/:id.
func (h *Handler) GetContract(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errors.Respond(c, errors.Invalid.Explain("invalid contract id"))
		return
	}

	caller, ok := auth.Profile(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	contract, err := h.service.GetContract(c.Request.Context(), id, caller.ID)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": contract})
}

// ListContracts handles GET /contracts.
func (h *Handler) ListContracts(c *gin.Context) {
	caller, ok := auth.Profile(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	contracts, err := h.service.ListContracts(c.Request.Context(), caller.ID)
	if err != nil {
		h.logger.Error("contract listing failed", zap.Error(err))
		errors.Respond(c, err)
		return
	}
	if len(contracts) == 0 {
		errors.Respond(c, errors.NotFound.Explain("contract not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": contracts})
}
