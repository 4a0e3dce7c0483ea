// Package handlers implements HTTP handlers for the ledger API.
package handlers

import (
	"log/slog"

	"github.com/benx421/payment-gateway/ledger/internal/service"
)

// Handler holds the service dependencies for all endpoints
type Handler struct {
	depositor     service.Depositor
	charges       service.ChargeManager
	holds         service.HoldQuerier
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	depositor service.Depositor,
	charges service.ChargeManager,
	holds service.HoldQuerier,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		depositor:     depositor,
		charges:       charges,
		holds:         holds,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
