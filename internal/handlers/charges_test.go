package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/benx421/payment-gateway/ledger/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubCharge(status models.ChargeStatus) *models.Charge {
	return &models.Charge{
		ID:         uuid.New(),
		Identifier: "chg_test",
		Amount:     decimal.RequireFromString("120.00"),
		Status:     status,
		CreatedAt:  time.Now(),
	}
}

func TestHandler_CreateCharge(t *testing.T) {
	t.Run("creates a charge", func(t *testing.T) {
		manager := &stubChargeManager{charge: stubCharge(models.ChargeStatusPending)}
		handler := newTestHandler(t, nil, manager, nil)

		body := `{"destination_cpf":"52998224725","amount":"120.00","description":"invoice 42"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges", strings.NewReader(body))
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.CreateCharge(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp chargeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "chg_test", resp.Identifier)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "120", resp.Amount)
	})

	t.Run("missing destination cpf", func(t *testing.T) {
		handler := newTestHandler(t, nil, &stubChargeManager{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges", strings.NewReader(`{"amount":"120.00"}`))
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.CreateCharge(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("self charge maps to 409", func(t *testing.T) {
		manager := &stubChargeManager{err: &service.ServiceError{
			Code:     service.ErrCodeChargeSameAsOriginator,
			Severity: service.SeverityClient,
			Message:  "cannot charge your own account",
		}}
		handler := newTestHandler(t, nil, manager, nil)

		body := `{"destination_cpf":"52998224725","amount":"120.00"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges", strings.NewReader(body))
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.CreateCharge(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_PayCharge(t *testing.T) {
	t.Run("balance payment", func(t *testing.T) {
		manager := &stubChargeManager{charge: stubCharge(models.ChargeStatusPaid)}
		handler := newTestHandler(t, nil, manager, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/pay", strings.NewReader(`{"payment_method":"ACCOUNT_BALANCE"}`))
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.PayCharge(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.PaymentMethodAccountBalance, manager.lastMethod)
		assert.Nil(t, manager.lastCard)
	})

	t.Run("card payment forwards card details", func(t *testing.T) {
		manager := &stubChargeManager{charge: stubCharge(models.ChargeStatusPaid)}
		handler := newTestHandler(t, nil, manager, nil)

		body := `{"payment_method":"CREDIT_CARD","card":{"number":"4532015112830366","cvv":"123","expiration":"12/2030","installments":2}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/pay", strings.NewReader(body))
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.PayCharge(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.PaymentMethodCreditCard, manager.lastMethod)
		require.NotNil(t, manager.lastCard)
		assert.Equal(t, "4532015112830366", manager.lastCard.Number)
		assert.Equal(t, 2, manager.lastCard.Installments)
	})

	t.Run("unknown payment method", func(t *testing.T) {
		handler := newTestHandler(t, nil, &stubChargeManager{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/pay", strings.NewReader(`{"payment_method":"BOLETO"}`))
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.PayCharge(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("card payment without card", func(t *testing.T) {
		handler := newTestHandler(t, nil, &stubChargeManager{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/pay", strings.NewReader(`{"payment_method":"CREDIT_CARD"}`))
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.PayCharge(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not allowed to pay maps to 409", func(t *testing.T) {
		manager := &stubChargeManager{err: &service.ServiceError{
			Code:     service.ErrCodeChargeNotAllowedToPay,
			Severity: service.SeverityClient,
			Message:  "charge is not allowed to be paid",
		}}
		handler := newTestHandler(t, nil, manager, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/pay", strings.NewReader(`{"payment_method":"ACCOUNT_BALANCE"}`))
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.PayCharge(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestHandler_CancelCharge(t *testing.T) {
	t.Run("cancels a charge", func(t *testing.T) {
		manager := &stubChargeManager{charge: stubCharge(models.ChargeStatusCancelled)}
		handler := newTestHandler(t, nil, manager, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/cancel", nil)
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.CancelCharge(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp chargeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("authorizer outage maps to 502", func(t *testing.T) {
		manager := &stubChargeManager{err: &service.ServiceError{
			Code:     service.ErrCodeAuthorizerError,
			Severity: service.SeverityServer,
			Message:  "authorizer unavailable",
		}}
		handler := newTestHandler(t, nil, manager, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/charges/chg_test/cancel", nil)
		req.SetPathValue("identifier", "chg_test")
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.CancelCharge(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestHandler_Listings(t *testing.T) {
	charges := []*models.Charge{stubCharge(models.ChargeStatusPending), stubCharge(models.ChargeStatusPaid)}

	t.Run("sent charges", func(t *testing.T) {
		handler := newTestHandler(t, nil, &stubChargeManager{charges: charges}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/charges/sent", nil)
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.SentCharges(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp chargeListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Charges, 2)
	})

	t.Run("received charges with empty result", func(t *testing.T) {
		handler := newTestHandler(t, nil, &stubChargeManager{}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/charges/received?status=PAYMENT_FAILED", nil)
		req.Header.Set(callerHeader, uuid.NewString())
		rec := httptest.NewRecorder()

		handler.ReceivedCharges(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"charges":[]`)
	})
}
