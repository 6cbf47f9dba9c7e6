package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
)

func newTestStore() *AccountStore {
	return NewAccountStore(DemoAccounts(), zap.NewNop())
}

func TestResolveUser(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	acc, err := store.ResolveUser(ctx, "user-001")
	if err != nil || acc == nil {
		t.Fatalf("expected account, got %v, %v", acc, err)
	}
	if acc.DisplayName != "Alex Morgan" {
		t.Errorf("expected 'Alex Morgan', got %q", acc.DisplayName)
	}

	// Returned accounts are copies.
	acc.SubAccounts[domain.AccountTypeChecking] = decimal.Zero
	b, _, _ := store.GetBalance(ctx, "user-001", domain.AccountTypeChecking)
	if b.IsZero() {
		t.Error("mutating a resolved account changed the store")
	}

	missing, err := store.ResolveUser(ctx, "nobody")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for unknown user, got %v, %v", missing, err)
	}
}

func TestAdjustBalance(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()

	if err := store.AdjustBalance(ctx, "user-002", domain.AccountTypeSavings, decimal.NewFromInt(5)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _, _ := store.GetBalance(ctx, "user-002", domain.AccountTypeSavings)
	if !b.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected 50, got %s", b)
	}

	if err := store.AdjustBalance(ctx, "user-002", domain.AccountTypeLoan, decimal.NewFromInt(1)); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
	if err := store.AdjustBalance(ctx, "nobody", domain.AccountTypeLoan, decimal.NewFromInt(1)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestTransfer_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AccountType
		to      domain.AccountType
		amount  string
		wantErr error
	}{
		{"ok", domain.AccountTypeChecking, domain.AccountTypeSavings, "20.10", nil},
		{"exact balance", domain.AccountTypeSavings, domain.AccountTypeChecking, "45.00", nil},
		{"too low", domain.AccountTypeSavings, domain.AccountTypeChecking, "45.01", domain.ErrInsufficientFunds},
		{"source missing", domain.AccountTypeCredit, domain.AccountTypeChecking, "1", domain.ErrInsufficientFunds},
		{"destination missing", domain.AccountTypeChecking, domain.AccountTypeLoan, "1", domain.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			ctx := context.Background()
			before, _ := store.ResolveUser(ctx, "user-002")

			err := store.Transfer(ctx, "user-002", tt.from, tt.to, decimal.RequireFromString(tt.amount))

			after, _ := store.ResolveUser(ctx, "user-002")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				for k, v := range before.SubAccounts {
					if !after.SubAccounts[k].Equal(v) {
						t.Errorf("expected %s unchanged, got %s -> %s", k, v, after.SubAccounts[k])
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			amount := decimal.RequireFromString(tt.amount)
			if !after.SubAccounts[tt.from].Equal(before.SubAccounts[tt.from].Sub(amount)) {
				t.Errorf("unexpected source balance %s", after.SubAccounts[tt.from])
			}
			if !after.SubAccounts[tt.to].Equal(before.SubAccounts[tt.to].Add(amount)) {
				t.Errorf("unexpected destination balance %s", after.SubAccounts[tt.to])
			}
		})
	}
}

func TestTransfer_ConcurrentConservesTotal(t *testing.T) {
	store := newTestStore()
	ctx := context.Background()
	one := decimal.NewFromInt(1)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Transfer(ctx, "user-001", domain.AccountTypeChecking, domain.AccountTypeSavings, one)
		}()
		go func() {
			defer wg.Done()
			_ = store.Transfer(ctx, "user-001", domain.AccountTypeSavings, domain.AccountTypeChecking, one)
		}()
	}
	wg.Wait()

	c, _, _ := store.GetBalance(ctx, "user-001", domain.AccountTypeChecking)
	s, _, _ := store.GetBalance(ctx, "user-001", domain.AccountTypeSavings)
	if total := c.Add(s); !total.Equal(decimal.RequireFromString("6700.75")) {
		t.Errorf("expected total 6700.75, got %s", total)
	}
}
