package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/shopspring/decimal"
)

type depositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type depositResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
}

type balanceResponse struct {
	TotalBalance     string `json:"total_balance"`
	HoldBalance      string `json:"hold_balance"`
	AvailableBalance string `json:"available_balance"`
}

// Deposit handles POST /api/v1/deposits
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadRequest(w, "invalid request body")
		return
	}

	txn, err := h.depositor.SelfDeposit(r.Context(), userID, req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, depositResponse{
		TransactionID: txn.ID.String(),
		Status:        string(txn.Status),
		Amount:        txn.Amount.String(),
	})
}

// Balance handles GET /api/v1/accounts/balance
func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	account, err := h.depositor.Balance(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newBalanceResponse(account))
}

func newBalanceResponse(account *models.Account) balanceResponse {
	return balanceResponse{
		TotalBalance:     account.TotalBalance.String(),
		HoldBalance:      account.HoldBalance.String(),
		AvailableBalance: account.AvailableBalance().String(),
	}
}
