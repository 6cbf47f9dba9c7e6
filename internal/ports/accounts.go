package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/seu-repo/bankbot/internal/domain"
)

// AccountStore is the only way the dialog layer reaches account data.
// Implementations serialise balance mutations themselves.
type AccountStore interface {
	// ResolveUser returns nil, nil when the user id is unknown.
	ResolveUser(ctx context.Context, userID string) (*domain.Account, error)
	// DisplayName returns "" when the user has no display name.
	DisplayName(ctx context.Context, userID string) (string, error)
	// GetBalance reports false when the user has no sub-account of that type.
	GetBalance(ctx context.Context, userID string, accountType domain.AccountType) (decimal.Decimal, bool, error)
	AdjustBalance(ctx context.Context, userID string, accountType domain.AccountType, delta decimal.Decimal) error
	// Transfer debits from and credits to as one atomic operation. It returns
	// domain.ErrInsufficientFunds when the source is missing or too low and
	// domain.ErrAccountNotFound when the destination is missing; in both cases
	// nothing is changed.
	Transfer(ctx context.Context, userID string, from, to domain.AccountType, amount decimal.Decimal) error
}
