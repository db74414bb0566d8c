package reporting

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gigworks/ledgerd/pkg/errors"
)

// Handler provides HTTP handlers for the admin reporting endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a reporting handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// BestProfession handles GET /admin/best-profession?start=...&end=...
func (h *Handler) BestProfession(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	best, err := h.service.BestProfession(c.Request.Context(), start, end)
	if err != nil {
		h.logError("best profession query failed", err)
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data": gin.H{
			"profession":   best.Profession,
			"totalSumPaid": best.TotalEarned,
		},
	})
}

// BestClients handles GET /admin/best-clients?start=...&end=...&limit=N
func (h *Handler) BestClients(c *gin.Context) {
	start, end, err := dateRange(c)
	if err != nil {
		errors.Respond(c, err)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			errors.Respond(c, errors.Invalid.Explain("limit must be a positive integer"))
			return
		}
	}

	clients, err := h.service.BestClients(c.Request.Context(), start, end, limit)
	if err != nil {
		h.logError("best clients query failed", err)
		errors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    clients,
	})
}

// dateRange reads the start/end query parameters. Dates may be given as
// 2006-01-02 or full RFC 3339 timestamps.
func dateRange(c *gin.Context) (time.Time, time.Time, error) {
	rawStart, rawEnd := c.Query("start"), c.Query("end")
	if rawStart == "" || rawEnd == "" {
		return time.Time{}, time.Time{}, errors.Invalid.Explain("start and end dates are required")
	}

	start, err := parseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.Invalid.Explain("invalid date: %s", s)
	}
	return t, nil
}

func (h *Handler) logError(msg string, err error) {
	if errors.Is(err, errors.Internal) {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Debug(msg, zap.Error(err))
	}
}
