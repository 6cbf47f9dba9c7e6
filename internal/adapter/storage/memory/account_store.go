package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/ports"
)

// AccountStore keeps accounts in process memory. A single mutex serialises
// every mutation, which makes Transfer atomic.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	log      *zap.Logger
}

// NewAccountStore creates a store holding copies of the given accounts.
func NewAccountStore(seed []domain.Account, log *zap.Logger) *AccountStore {
	s := &AccountStore{
		accounts: make(map[string]*domain.Account, len(seed)),
		log:      log,
	}
	for i := range seed {
		s.Put(&seed[i])
	}

	log.Info("In-memory account store initialized", zap.Int("accounts", len(seed)))
	return s
}

var _ ports.AccountStore = (*AccountStore)(nil)

// Put creates or replaces an account.
func (s *AccountStore) Put(acc *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[acc.UserID] = acc.Clone()
}

func (s *AccountStore) ResolveUser(ctx context.Context, userID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return nil, nil
	}
	return acc.Clone(), nil
}

func (s *AccountStore) DisplayName(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return "", nil
	}
	return acc.DisplayName, nil
}

func (s *AccountStore) GetBalance(ctx context.Context, userID string, accountType domain.AccountType) (decimal.Decimal, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return decimal.Zero, false, nil
	}
	b, ok := acc.Balance(accountType)
	return b, ok, nil
}

func (s *AccountStore) AdjustBalance(ctx context.Context, userID string, accountType domain.AccountType, delta decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return fmt.Errorf("adjust %s: %w", userID, domain.ErrUserNotFound)
	}
	balance, ok := acc.SubAccounts[accountType]
	if !ok {
		return fmt.Errorf("adjust %s/%s: %w", userID, accountType, domain.ErrAccountNotFound)
	}
	acc.SubAccounts[accountType] = balance.Add(delta)
	return nil
}

func (s *AccountStore) Transfer(ctx context.Context, userID string, from, to domain.AccountType, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[userID]
	if !ok {
		return fmt.Errorf("transfer for %s: %w", userID, domain.ErrUserNotFound)
	}

	source, ok := acc.SubAccounts[from]
	if !ok || source.LessThan(amount) {
		return domain.ErrInsufficientFunds
	}
	dest, ok := acc.SubAccounts[to]
	if !ok {
		return fmt.Errorf("transfer to %s: %w", to, domain.ErrAccountNotFound)
	}

	if from == to {
		return nil
	}
	acc.SubAccounts[from] = source.Sub(amount)
	acc.SubAccounts[to] = dest.Add(amount)

	s.log.Debug("Transfer applied",
		zap.String("user_id", userID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("amount", amount.String()),
	)
	return nil
}
