package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Deposit(t *testing.T) {
	t.Run("successful deposit", func(t *testing.T) {
		txn := &models.Transaction{
			ID:     uuid.New(),
			Amount: decimal.RequireFromString("50.00"),
			Status: models.TransactionStatusSuccess,
		}
		handler := newTestHandler(t, &stubDepositor{txn: txn}, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", strings.NewReader(`{"amount":"50.00"}`))
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.Deposit(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp depositResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, txn.ID.String(), resp.TransactionID)
		assert.Equal(t, "SUCCESS", resp.Status)
		assert.Equal(t, "50", resp.Amount)
	})

	t.Run("missing caller header", func(t *testing.T) {
		handler := newTestHandler(t, &stubDepositor{}, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", strings.NewReader(`{"amount":"50.00"}`))
		rec := httptest.NewRecorder()

		handler.Deposit(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := newTestHandler(t, &stubDepositor{}, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", strings.NewReader(`{`))
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.Deposit(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("declined deposit maps to 402", func(t *testing.T) {
		depositor := &stubDepositor{err: &service.ServiceError{
			Code:     service.ErrCodeAuthorizationFailed,
			Severity: service.SeverityClient,
			Message:  "deposit not authorized",
		}}
		handler := newTestHandler(t, depositor, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/deposits", strings.NewReader(`{"amount":"50.00"}`))
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.Deposit(rec, req)

		assert.Equal(t, http.StatusPaymentRequired, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, service.ErrCodeAuthorizationFailed, resp.Error.Code)
	})
}

func TestHandler_Balance(t *testing.T) {
	t.Run("returns the three balances", func(t *testing.T) {
		account := &models.Account{
			TotalBalance: decimal.RequireFromString("100.00"),
			HoldBalance:  decimal.RequireFromString("30.00"),
		}
		handler := newTestHandler(t, &stubDepositor{account: account}, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/balance", nil)
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.Balance(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp balanceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "100", resp.TotalBalance)
		assert.Equal(t, "30", resp.HoldBalance)
		assert.Equal(t, "70", resp.AvailableBalance)
	})

	t.Run("unknown account maps to 404", func(t *testing.T) {
		depositor := &stubDepositor{err: &service.ServiceError{
			Code:     service.ErrCodeAccountNotFound,
			Severity: service.SeverityClient,
			Message:  "account not found",
		}}
		handler := newTestHandler(t, depositor, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/balance", nil)
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.Balance(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandler_Health(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		handler := newTestHandler(t, nil, nil, &stubHealthChecker{})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.Health(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "healthy")
	})

	t.Run("database unreachable", func(t *testing.T) {
		handler := newTestHandler(t, nil, nil, &stubHealthChecker{err: assert.AnError})

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.Health(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
