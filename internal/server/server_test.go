package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gigworks/ledgerd/internal/contracts"
	"github.com/gigworks/ledgerd/internal/database"
	"github.com/gigworks/ledgerd/internal/ledger"
	"github.com/gigworks/ledgerd/internal/reporting"
	"github.com/gigworks/ledgerd/pkg/models"
)

type fixture struct {
	router     *gin.Engine
	db         *gorm.DB
	client     *models.Profile
	contractor *models.Profile
	job        *models.Job
}

func setupRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test db")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	logger := zap.NewNop()
	router := New(
		logger,
		ledger.NewService(logger, db),
		contracts.NewService(logger, db),
		reporting.NewService(logger, db),
	)

	client := &models.Profile{ID: uuid.New(), FirstName: "Ada", LastName: "Osei", Profession: "founder", Type: models.ProfileTypeClient, Balance: decimal.RequireFromString("100.00")}
	contractor := &models.Profile{ID: uuid.New(), FirstName: "Marcus", LastName: "Webb", Profession: "programmer", Type: models.ProfileTypeContractor, Balance: decimal.Zero}
	require.NoError(t, db.Create(client).Error)
	require.NoError(t, db.Create(contractor).Error)

	contract := &models.Contract{ID: uuid.New(), Terms: "work", Status: models.ContractStatusInProgress, ClientID: client.ID, ContractorID: contractor.ID}
	require.NoError(t, db.Create(contract).Error)

	job := &models.Job{ID: uuid.New(), ContractID: contract.ID, Description: "work item", Price: decimal.RequireFromString("50.00")}
	require.NoError(t, db.Create(job).Error)

	return &fixture{router: router, db: db, client: client, contractor: contractor, job: job}
}

func (f *fixture) do(method, path, profileID, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if profileID != "" {
		req.Header.Set("profile_id", profileID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestMissingProfileHeaderIsUnauthorized(t *testing.T) {
	f := setupRouter(t)

	for _, path := range []string{"/api/v1/jobs/unpaid", "/api/v1/contracts"} {
		w := f.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}

	w := f.do(http.MethodGet, "/api/v1/jobs/unpaid", uuid.New().String(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code, "unknown profile must be rejected")
}

func TestPayJobEndpoint(t *testing.T) {
	f := setupRouter(t)
	path := fmt.Sprintf("/api/v1/jobs/%s/pay", f.job.ID)

	// Contractor cannot pay.
	w := f.do(http.MethodPost, path, f.contractor.ID.String(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Client pays.
	w = f.do(http.MethodPost, path, f.client.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var resp struct {
		Message string     `json:"message"`
		Data    models.Job `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Payment successful", resp.Message)
	assert.True(t, resp.Data.Paid)

	// Second attempt is NotFound.
	w = f.do(http.MethodPost, path, f.client.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayJobInsufficientFundsEndpoint(t *testing.T) {
	f := setupRouter(t)
	require.NoError(t, f.db.Model(f.client).Update("balance", decimal.RequireFromString("10.00")).Error)

	w := f.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/pay", f.job.ID), f.client.ID.String(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient balance")
}

func TestDepositEndpoint(t *testing.T) {
	f := setupRouter(t)
	path := fmt.Sprintf("/api/v1/balances/deposit/%s", f.client.ID)

	// Outstanding is 50.00, limit 12.50.
	w := f.do(http.MethodPost, path, f.client.ID.String(), `{"amount": "12.50"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	assert.Contains(t, w.Body.String(), "112.50")

	w = f.do(http.MethodPost, path, f.client.ID.String(), `{"amount": "12.51"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "allowed limit")

	w = f.do(http.MethodPost, path, f.client.ID.String(), `{"amount": "oops"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportingEndpoints(t *testing.T) {
	f := setupRouter(t)

	// Pay the seeded job so the window has data.
	w := f.do(http.MethodPost, fmt.Sprintf("/api/v1/jobs/%s/pay", f.job.ID), f.client.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodGet, "/api/v1/admin/best-profession?start=2000-01-01&end=2100-01-01", f.client.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Contains(t, w.Body.String(), "programmer")

	w = f.do(http.MethodGet, "/api/v1/admin/best-clients?start=2000-01-01&end=2100-01-01", f.client.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada Osei")

	w = f.do(http.MethodGet, "/api/v1/admin/best-profession", f.client.ID.String(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start and end dates are required")
}

func TestHealthz(t *testing.T) {
	f := setupRouter(t)
	w := f.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
