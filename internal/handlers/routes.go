package handlers

import (
	"log/slog"
	"net/http"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/db"
	"github.com/benx421/payment-gateway/ledger/internal/middleware"
	"github.com/benx421/payment-gateway/ledger/internal/repository"
	"github.com/benx421/payment-gateway/ledger/internal/service"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	database *db.DB,
	gateway *authorizer.Gateway,
	logger *slog.Logger,
) http.Handler {
	accountRepo := repository.NewAccountRepository(database)
	userRepo := repository.NewUserRepository(database)
	holdRepo := repository.NewHoldBalanceRepository(database)
	transactionRepo := repository.NewTransactionRepository(database)
	chargeRepo := repository.NewChargeRepository(database)
	paymentRepo := repository.NewChargePaymentRepository(database)

	transactionService := service.NewTransactionService(transactionRepo)
	ledgerService := service.NewLedgerService(accountRepo, userRepo, transactionService, gateway)
	holdService := service.NewHoldService(accountRepo, holdRepo, ledgerService)

	depositService := service.NewDepositService(database, gateway)
	paymentService := service.NewPaymentService(database, gateway)
	chargeService := service.NewChargeService(chargeRepo, paymentRepo, userRepo, paymentService)

	handler := NewHandler(depositService, chargeService, holdService, database, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("POST /api/v1/deposits", handler.Deposit)
	mux.HandleFunc("GET /api/v1/accounts/balance", handler.Balance)
	mux.HandleFunc("GET /api/v1/holds/{id}", handler.HoldStatus)
	mux.HandleFunc("POST /api/v1/charges", handler.CreateCharge)
	mux.HandleFunc("GET /api/v1/charges/sent", handler.SentCharges)
	mux.HandleFunc("GET /api/v1/charges/received", handler.ReceivedCharges)
	mux.HandleFunc("POST /api/v1/charges/{identifier}/pay", handler.PayCharge)
	mux.HandleFunc("POST /api/v1/charges/{identifier}/cancel", handler.CancelCharge)

	var finalHandler http.Handler = mux

	idempotencyRepo := repository.NewIdempotencyRepository(database)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)

	return finalHandler
}
