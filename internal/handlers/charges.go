package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/shopspring/decimal"
)

type createChargeRequest struct {
	DestinationCPF string          `json:"destination_cpf"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
}

type cardRequest struct {
	Number       string `json:"number"`
	CVV          string `json:"cvv"`
	Expiration   string `json:"expiration"`
	Installments int    `json:"installments"`
}

type payChargeRequest struct {
	PaymentMethod string       `json:"payment_method"`
	Card          *cardRequest `json:"card,omitempty"`
}

type chargeResponse struct {
	Identifier   string  `json:"identifier"`
	Status       string  `json:"status"`
	Amount       string  `json:"amount"`
	Description  string  `json:"description"`
	ErrorMessage *string `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type chargeListResponse struct {
	Charges []chargeResponse `json:"charges"`
}

// CreateCharge handles POST /api/v1/charges
func (h *Handler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	var req createChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "invalid request body")
		return
	}

	if req.DestinationCPF == "" {
		h.writeBadRequest(w, "destination_cpf is required")
		return
	}

	charge, err := h.charges.Create(r.Context(), userID, req.DestinationCPF, req.Amount, req.Description)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, newChargeResponse(charge))
}

// PayCharge handles POST /api/v1/charges/{identifier}/pay
func (h *Handler) PayCharge(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	var req payChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "invalid request body")
		return
	}

	method := models.PaymentMethod(req.PaymentMethod)
	if method != models.PaymentMethodAccountBalance && method != models.PaymentMethodCreditCard {
		h.writeBadRequest(w, "payment_method must be ACCOUNT_BALANCE or CREDIT_CARD")
		return
	}

	var card *authorizer.CardDetails
	if req.Card != nil {
		card = &authorizer.CardDetails{
			Number:       req.Card.Number,
			CVV:          req.Card.CVV,
			Expiration:   req.Card.Expiration,
			Installments: req.Card.Installments,
		}
	}

	if method == models.PaymentMethodCreditCard && card == nil {
		h.writeBadRequest(w, "card is required for CREDIT_CARD payments")
		return
	}

	charge, err := h.charges.Pay(r.Context(), userID, r.PathValue("identifier"), method, card)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newChargeResponse(charge))
}

// CancelCharge handles POST /api/v1/charges/{identifier}/cancel
func (h *Handler) CancelCharge(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	charge, err := h.charges.Cancel(r.Context(), userID, r.PathValue("identifier"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newChargeResponse(charge))
}

// SentCharges handles GET /api/v1/charges/sent
func (h *Handler) SentCharges(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	charges, err := h.charges.SentCharges(r.Context(), userID, statusFilter(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newChargeListResponse(charges))
}

// ReceivedCharges handles GET /api/v1/charges/received
func (h *Handler) ReceivedCharges(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	charges, err := h.charges.ReceivedCharges(r.Context(), userID, statusFilter(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newChargeListResponse(charges))
}

func statusFilter(r *http.Request) []models.ChargeStatus {
	values := r.URL.Query()["status"]
	statuses := make([]models.ChargeStatus, 0, len(values))
	for _, v := range values {
		statuses = append(statuses, models.ChargeStatus(v))
	}
	return statuses
}

func newChargeResponse(charge *models.Charge) chargeResponse {
	return chargeResponse{
		Identifier:   charge.Identifier,
		Status:       string(charge.Status),
		Amount:       charge.Amount.String(),
		Description:  charge.Description,
		ErrorMessage: charge.ErrorMessage,
		CreatedAt:    charge.CreatedAt.Format(timeFormat),
	}
}

func newChargeListResponse(charges []*models.Charge) chargeListResponse {
	resp := chargeListResponse{Charges: make([]chargeResponse, 0, len(charges))}
	for _, charge := range charges {
		resp.Charges = append(resp.Charges, newChargeResponse(charge))
	}
	return resp
}
