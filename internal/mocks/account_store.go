package mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/seu-repo/bankbot/internal/domain"
)

// MockAccountStore is a func-field AccountStore. Unset funcs behave as an
// empty store that accepts every write.
type MockAccountStore struct {
	ResolveUserFunc   func(ctx context.Context, userID string) (*domain.Account, error)
	DisplayNameFunc   func(ctx context.Context, userID string) (string, error)
	GetBalanceFunc    func(ctx context.Context, userID string, accountType domain.AccountType) (decimal.Decimal, bool, error)
	AdjustBalanceFunc func(ctx context.Context, userID string, accountType domain.AccountType, delta decimal.Decimal) error
	TransferFunc      func(ctx context.Context, userID string, from, to domain.AccountType, amount decimal.Decimal) error

	TransferCalls int
}

func (m *MockAccountStore) ResolveUser(ctx context.Context, userID string) (*domain.Account, error) {
	if m.ResolveUserFunc != nil {
		return m.ResolveUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAccountStore) DisplayName(ctx context.Context, userID string) (string, error) {
	if m.DisplayNameFunc != nil {
		return m.DisplayNameFunc(ctx, userID)
	}
	return "", nil
}

func (m *MockAccountStore) GetBalance(ctx context.Context, userID string, accountType domain.AccountType) (decimal.Decimal, bool, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, userID, accountType)
	}
	return decimal.Zero, false, nil
}

func (m *MockAccountStore) AdjustBalance(ctx context.Context, userID string, accountType domain.AccountType, delta decimal.Decimal) error {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, userID, accountType, delta)
	}
	return nil
}

func (m *MockAccountStore) Transfer(ctx context.Context, userID string, from, to domain.AccountType, amount decimal.Decimal) error {
	m.TransferCalls++
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, userID, from, to, amount)
	}
	return nil
}

// MockDialogService answers every turn through HandleFunc.
type MockDialogService struct {
	HandleFunc func(ctx context.Context, req *domain.Request) *domain.Response
}

func (m *MockDialogService) Handle(ctx context.Context, req *domain.Request) *domain.Response {
	if m.HandleFunc != nil {
		return m.HandleFunc(ctx, req)
	}
	return &domain.Response{DialogAction: domain.DialogActionClose, IntentState: domain.IntentStateFulfilled}
}
