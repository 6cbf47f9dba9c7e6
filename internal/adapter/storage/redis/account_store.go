package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
	"github.com/seu-repo/bankbot/internal/ports"
)

const (
	keyPrefix     = "bank:account:"
	fieldUserID   = "user_id"
	fieldName     = "name"
	balancePrefix = "balance:"

	maxTxRetries = 10
)

var ErrConcurrentUpdate = errors.New("redis: too many concurrent updates")

// AccountStore keeps one hash per user:
//
//	bank:account:{userID} -> user_id, name, balance:{type}...
//
// Balances are stored as decimal strings. Mutations run under WATCH/MULTI and
// are retried when another client touched the same hash.
type AccountStore struct {
	client *goredis.Client
	log    *zap.Logger
}

func NewAccountStore(client *goredis.Client, log *zap.Logger) *AccountStore {
	return &AccountStore{
		client: client,
		log:    log,
	}
}

var _ ports.AccountStore = (*AccountStore)(nil)

func accountKey(userID string) string { return keyPrefix + userID }

func balanceField(t domain.AccountType) string { return balancePrefix + string(t) }

func observe(op string, start time.Time) {
	telemetry.StoreLatency.WithLabelValues("redis", op).Observe(time.Since(start).Seconds())
}

func (s *AccountStore) ResolveUser(ctx context.Context, userID string) (*domain.Account, error) {
	defer observe("resolve_user", time.Now())

	fields, err := s.client.HGetAll(ctx, accountKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", userID, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	acc := &domain.Account{
		UserID:      userID,
		DisplayName: fields[fieldName],
		SubAccounts: make(map[domain.AccountType]decimal.Decimal),
	}
	for f, v := range fields {
		if !strings.HasPrefix(f, balancePrefix) {
			continue
		}
		balance, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("corrupt balance %s for %s: %w", f, userID, err)
		}
		acc.SubAccounts[domain.AccountType(strings.TrimPrefix(f, balancePrefix))] = balance
	}
	return acc, nil
}

func (s *AccountStore) DisplayName(ctx context.Context, userID string) (string, error) {
	defer observe("display_name", time.Now())

	name, err := s.client.HGet(ctx, accountKey(userID), fieldName).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	return name, err
}

func (s *AccountStore) GetBalance(ctx context.Context, userID string, accountType domain.AccountType) (decimal.Decimal, bool, error) {
	defer observe("get_balance", time.Now())

	raw, err := s.client.HGet(ctx, accountKey(userID), balanceField(accountType)).Result()
	if errors.Is(err, goredis.Nil) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt balance for %s/%s: %w", userID, accountType, err)
	}
	return balance, true, nil
}

func (s *AccountStore) AdjustBalance(ctx context.Context, userID string, accountType domain.AccountType, delta decimal.Decimal) error {
	defer observe("adjust_balance", time.Now())

	key := accountKey(userID)
	field := balanceField(accountType)

	return s.watch(ctx, key, func(tx *goredis.Tx) error {
		raw, err := tx.HGet(ctx, key, field).Result()
		if errors.Is(err, goredis.Nil) {
			return fmt.Errorf("adjust %s/%s: %w", userID, accountType, domain.ErrAccountNotFound)
		}
		if err != nil {
			return err
		}
		balance, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("corrupt balance for %s/%s: %w", userID, accountType, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key, field, balance.Add(delta).String())
			return nil
		})
		return err
	})
}

func (s *AccountStore) Transfer(ctx context.Context, userID string, from, to domain.AccountType, amount decimal.Decimal) error {
	defer observe("transfer", time.Now())

	key := accountKey(userID)
	fromField, toField := balanceField(from), balanceField(to)

	return s.watch(ctx, key, func(tx *goredis.Tx) error {
		vals, err := tx.HMGet(ctx, key, fromField, toField).Result()
		if err != nil {
			return err
		}

		source, ok, err := parseBalance(vals[0])
		if err != nil {
			return err
		}
		if !ok || source.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		dest, ok, err := parseBalance(vals[1])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("transfer to %s: %w", to, domain.ErrAccountNotFound)
		}
		if from == to {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.HSet(ctx, key,
				fromField, source.Sub(amount).String(),
				toField, dest.Add(amount).String(),
			)
			return nil
		})
		return err
	})
}

// Put replaces the stored account with acc.
func (s *AccountStore) Put(ctx context.Context, acc *domain.Account) error {
	key := accountKey(acc.UserID)
	values := []interface{}{fieldUserID, acc.UserID, fieldName, acc.DisplayName}
	for t, b := range acc.SubAccounts {
		values = append(values, balanceField(t), b.String())
	}

	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store account %s: %w", acc.UserID, err)
	}
	return nil
}

func (s *AccountStore) watch(ctx context.Context, key string, fn func(tx *goredis.Tx) error) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, fn, key)
		if !errors.Is(err, goredis.TxFailedErr) {
			return err
		}
		s.log.Debug("Optimistic transaction conflict, retrying",
			zap.String("key", key),
			zap.Int("attempt", attempt+1),
		)
	}
	return ErrConcurrentUpdate
}

func parseBalance(v interface{}) (decimal.Decimal, bool, error) {
	if v == nil {
		return decimal.Zero, false, nil
	}
	raw, ok := v.(string)
	if !ok {
		return decimal.Zero, false, fmt.Errorf("unexpected balance type %T", v)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("corrupt balance %q: %w", raw, err)
	}
	return d, true, nil
}
