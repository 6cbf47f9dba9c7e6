package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
)

// setupStore starts miniredis and seeds two accounts.
func setupStore(t *testing.T) (*miniredis.Miniredis, *AccountStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewAccountStore(client, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, &domain.Account{
		UserID:      "user-001",
		DisplayName: "Alex Morgan",
		SubAccounts: map[domain.AccountType]decimal.Decimal{
			domain.AccountTypeChecking: decimal.RequireFromString("1500.75"),
			domain.AccountTypeSavings:  decimal.RequireFromString("5200.00"),
		},
	}))
	require.NoError(t, store.Put(ctx, &domain.Account{
		UserID: "user-002",
		SubAccounts: map[domain.AccountType]decimal.Decimal{
			domain.AccountTypeChecking: decimal.RequireFromString("10"),
		},
	}))
	return mr, store
}

func TestAccountStore_ResolveUser(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	acc, err := store.ResolveUser(ctx, "user-001")
	require.NoError(t, err)
	require.NotNil(t, acc)
	assert.Equal(t, "Alex Morgan", acc.DisplayName)
	assert.True(t, acc.SubAccounts[domain.AccountTypeSavings].Equal(decimal.NewFromInt(5200)))
	assert.Len(t, acc.SubAccounts, 2)

	missing, err := store.ResolveUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, "1500.75", mr.HGet("bank:account:user-001", "balance:checking"))
}

func TestAccountStore_DisplayNameAndBalance(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	name, err := store.DisplayName(ctx, "user-002")
	require.NoError(t, err)
	assert.Empty(t, name)

	name, err = store.DisplayName(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, name)

	b, ok, err := store.GetBalance(ctx, "user-001", domain.AccountTypeChecking)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1500.75", b.StringFixed(2))

	_, ok, err = store.GetBalance(ctx, "user-001", domain.AccountTypeLoan)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountStore_AdjustBalance(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.AdjustBalance(ctx, "user-002", domain.AccountTypeChecking, decimal.RequireFromString("-2.5")))
	b, _, err := store.GetBalance(ctx, "user-002", domain.AccountTypeChecking)
	require.NoError(t, err)
	assert.Equal(t, "7.50", b.StringFixed(2))

	err = store.AdjustBalance(ctx, "user-002", domain.AccountTypeSavings, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountStore_Transfer(t *testing.T) {
	_, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Transfer(ctx, "user-001", domain.AccountTypeChecking, domain.AccountTypeSavings, decimal.NewFromInt(500)))

	c, _, _ := store.GetBalance(ctx, "user-001", domain.AccountTypeChecking)
	s, _, _ := store.GetBalance(ctx, "user-001", domain.AccountTypeSavings)
	assert.Equal(t, "1000.75", c.StringFixed(2))
	assert.Equal(t, "5700.00", s.StringFixed(2))
}

func TestAccountStore_TransferRejectsWithoutMutation(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AccountType
		to      domain.AccountType
		amount  int64
		wantErr error
	}{
		{"insufficient", domain.AccountTypeChecking, domain.AccountTypeSavings, 10000, domain.ErrInsufficientFunds},
		{"source missing", domain.AccountTypeLoan, domain.AccountTypeSavings, 1, domain.ErrInsufficientFunds},
		{"destination missing", domain.AccountTypeChecking, domain.AccountTypeCredit, 1, domain.ErrAccountNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr, store := setupStore(t)
			ctx := context.Background()

			err := store.Transfer(ctx, "user-001", tt.from, tt.to, decimal.NewFromInt(tt.amount))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, "1500.75", mr.HGet("bank:account:user-001", "balance:checking"))
			assert.Equal(t, "5200", mr.HGet("bank:account:user-001", "balance:savings"))
		})
	}
}
