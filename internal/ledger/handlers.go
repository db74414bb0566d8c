package ledger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/gigworks/ledgerd/internal/auth"
	"github.com/gigworks/ledgerd/pkg/errors"
	"github.com/gigworks/ledgerd/pkg/money"
)

// Handler provides HTTP handlers for deposits and job payments.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a ledger handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// Deposit handles POST /balances/deposit/:userId.
func (h *Handler) Deposit(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		errors.Respond(c, errors.Invalid.Explain("invalid user id"))
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Respond(c, errors.Invalid.Explain("invalid deposit request").Wrap(err))
		return
	}

	balance, err := h.service.Deposit(c.Request.Context(), clientID, req.Amount)
	if err != nil {
		h.logError("deposit failed", err)
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Deposit successful",
		"data":    gin.H{"balance": money.Format(balance)},
	})
}

// PayJob handles POST /jobs/:job_id/pay.
func (h *Handler) PayJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("job_id"))
	if err != nil {
		errors.Respond(c, errors.Invalid.Explain("invalid job id"))
		return
	}

	caller, ok := auth.Profile(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	job, err := h.service.PayJob(c.Request.Context(), jobID, caller.ID)
	if err != nil {
		h.logError("payment failed", err)
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment successful",
		"data":    job,
	})
}

// UnpaidJobs handles GET /jobs/unpaid.
func (h *Handler) UnpaidJobs(c *gin.Context) {
	caller, ok := auth.Profile(c)
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	jobs, err := h.service.UnpaidJobs(c.Request.Context(), caller.ID)
	if err != nil {
		h.logError("unpaid jobs listing failed", err)
		errors.Respond(c, err)
		return
	}
	if len(jobs) == 0 {
		errors.Respond(c, errors.NotFound.Explain("this profile has no unpaid job"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    jobs,
	})
}

// logError keeps internal causes in the server log only.
func (h *Handler) logError(msg string, err error) {
	if errors.Is(err, errors.Internal) {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Debug(msg, zap.Error(err))
	}
}
