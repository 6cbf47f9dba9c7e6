package cached

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
	"github.com/seu-repo/bankbot/internal/ports"
)

const displayNamePrefix = "display_name:"

// AccountStore puts a cache in front of DisplayName, which is read on every
// greeting but practically never changes. All other calls go straight to the
// wrapped store. A name changed behind the wrapper keeps being served until the
// TTL expires; write through Put or call Forget to see it at once.
type AccountStore struct {
	ports.AccountStore
	cache ports.Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewAccountStore(next ports.AccountStore, cache ports.Cache, ttl time.Duration, log *zap.Logger) *AccountStore {
	return &AccountStore{
		AccountStore: next,
		cache:        cache,
		ttl:          ttl,
		log:          log,
	}
}

var _ ports.AccountStore = (*AccountStore)(nil)

var errPutUnsupported = errors.New("cached: wrapped store cannot replace accounts")

type accountPutter interface {
	Put(ctx context.Context, acc *domain.Account) error
}

// Put replaces the account in the wrapped store and drops its cached name.
func (s *AccountStore) Put(ctx context.Context, acc *domain.Account) error {
	putter, ok := s.AccountStore.(accountPutter)
	if !ok {
		return errPutUnsupported
	}
	if err := putter.Put(ctx, acc); err != nil {
		return err
	}
	return s.Forget(ctx, acc.UserID)
}

// Forget evicts the cached display name of userID.
func (s *AccountStore) Forget(ctx context.Context, userID string) error {
	return s.cache.Delete(ctx, displayNamePrefix+userID)
}

func (s *AccountStore) DisplayName(ctx context.Context, userID string) (string, error) {
	key := displayNamePrefix + userID

	name, err := s.cache.Get(ctx, key)
	if err == nil {
		telemetry.CacheLookups.WithLabelValues("hit").Inc()
		return name, nil
	}
	if !errors.Is(err, ports.ErrCacheMiss) {
		telemetry.CacheLookups.WithLabelValues("error").Inc()
		s.log.Warn("Display name cache read failed", zap.String("user_id", userID), zap.Error(err))
	} else {
		telemetry.CacheLookups.WithLabelValues("miss").Inc()
	}

	name, err = s.AccountStore.DisplayName(ctx, userID)
	if err != nil {
		return "", err
	}
	// Users without a name are not cached so a later rename shows up at once.
	if name != "" {
		if err := s.cache.Set(ctx, key, name, s.ttl); err != nil {
			s.log.Warn("Display name cache write failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return name, nil
}
