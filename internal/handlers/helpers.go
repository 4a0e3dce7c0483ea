package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/benx421/payment-gateway/ledger/internal/service"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339

// callerHeader identifies the acting user. Authentication is out of scope;
// the gateway in front of this service sets the header after verifying the
// caller.
const callerHeader = "X-User-ID"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.ServiceError
	if !errors.As(err, &svcErr) {
		h.logger.Error("unexpected handler error", "error", err, "path", r.URL.Path)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorBody{Code: service.ErrCodeInternalError, Message: "internal error"},
		})
		return
	}

	status := statusForServiceError(svcErr)
	if svcErr.Severity == service.SeverityServer {
		h.logger.Error("request failed", "code", svcErr.Code, "error", err, "path", r.URL.Path)
	} else {
		h.logger.Debug("request rejected", "code", svcErr.Code, "path", r.URL.Path)
	}

	h.writeJSON(w, status, errorResponse{
		Error: errorBody{Code: svcErr.Code, Message: svcErr.Message},
	})
}

func statusForServiceError(svcErr *service.ServiceError) int {
	switch svcErr.Code {
	case service.ErrCodeInvalidAmount, service.ErrCodeInvalidCardDetails:
		return http.StatusUnprocessableEntity
	case service.ErrCodeInsufficientBalance, service.ErrCodeAuthorizationFailed:
		return http.StatusPaymentRequired
	case service.ErrCodeAccountNotFound, service.ErrCodeUserNotFound,
		service.ErrCodeChargeNotFound, service.ErrCodeHoldNotFound:
		return http.StatusNotFound
	case service.ErrCodeChargeNotAllowedToPay,
		service.ErrCodeChargeNotAllowedToCancel,
		service.ErrCodeChargeSameAsOriginator,
		service.ErrCodeStaleAccount:
		return http.StatusConflict
	case service.ErrCodeAuthorizerError, service.ErrCodeAuthorizerNotFound:
		return http.StatusBadGateway
	}

	if svcErr.Severity == service.SeverityClient {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// callerID extracts the acting user's ID from the request headers
func callerID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(callerHeader)
	if raw == "" {
		return uuid.Nil, errors.New("missing " + callerHeader + " header")
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid " + callerHeader + " header")
	}

	return id, nil
}

func (h *Handler) writeUnauthorized(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error: errorBody{Code: "unauthorized", Message: err.Error()},
	})
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Code: "invalid_request", Message: message},
	})
}
