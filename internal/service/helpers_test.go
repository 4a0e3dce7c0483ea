package service

import (
	"context"

	"github.com/benx421/payment-gateway/ledger/internal/authorizer"
	"github.com/benx421/payment-gateway/ledger/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeGateway is a canned-response AuthorizerGateway for service tests
type fakeGateway struct {
	err        error
	lastReq    authorizer.Request
	calls      []authorizer.Purpose
	authorized bool
}

func (f *fakeGateway) Authorize(_ context.Context, purpose authorizer.Purpose, req authorizer.Request) (bool, error) {
	f.calls = append(f.calls, purpose)
	f.lastReq = req
	return f.authorized, f.err
}

func testAccount(total, hold string) *models.Account {
	return &models.Account{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		TotalBalance: decimal.RequireFromString(total),
		HoldBalance:  decimal.RequireFromString(hold),
		Version:      1,
	}
}

func testCharge(amount string) *models.Charge {
	return &models.Charge{
		ID:                uuid.New(),
		Identifier:        "chg_" + uuid.NewString(),
		OriginatorUserID:  uuid.New(),
		DestinationUserID: uuid.New(),
		Amount:            decimal.RequireFromString(amount),
		Status:            models.ChargeStatusPending,
	}
}
