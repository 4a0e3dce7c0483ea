package handlers

import (
	"net/http"

	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/google/uuid"
)

type holdResponse struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// HoldStatus handles GET /api/v1/holds/{id}
func (h *Handler) HoldStatus(w http.ResponseWriter, r *http.Request) {
	if _, err := callerID(r); err != nil {
		h.writeUnauthorized(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		h.writeBadRequest(w, "invalid hold id")
		return
	}

	hold, err := h.holds.Hold(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, newHoldResponse(hold))
}

func newHoldResponse(hold *models.HoldBalance) holdResponse {
	return holdResponse{
		ID:        hold.ID.String(),
		AccountID: hold.AccountID.String(),
		Amount:    hold.Amount.String(),
		Type:      string(hold.Type),
		Status:    string(hold.Status),
		CreatedAt: hold.CreatedAt.Format(timeFormat),
	}
}
