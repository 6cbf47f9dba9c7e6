package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
	"github.com/seu-repo/bankbot/internal/ports"
)

type AccountRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAccountRepository(db *gorm.DB, log *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:  db,
		log: log,
	}
}

var _ ports.AccountStore = (*AccountRepository)(nil)

func observe(op string, start time.Time) {
	telemetry.StoreLatency.WithLabelValues("postgres", op).Observe(time.Since(start).Seconds())
}

func (r *AccountRepository) ResolveUser(ctx context.Context, userID string) (*domain.Account, error) {
	defer observe("resolve_user", time.Now())

	var acc accountRow
	err := r.db.WithContext(ctx).First(&acc, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var subs []subAccountRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&subs).Error; err != nil {
		return nil, err
	}
	return toDomain(acc, subs), nil
}

func (r *AccountRepository) DisplayName(ctx context.Context, userID string) (string, error) {
	defer observe("display_name", time.Now())

	var acc accountRow
	err := r.db.WithContext(ctx).Select("display_name").First(&acc, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return acc.DisplayName, nil
}

func (r *AccountRepository) GetBalance(ctx context.Context, userID string, accountType domain.AccountType) (decimal.Decimal, bool, error) {
	defer observe("get_balance", time.Now())

	var sub subAccountRow
	err := r.db.WithContext(ctx).
		First(&sub, "user_id = ? AND account_type = ?", userID, string(accountType)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return sub.Balance, true, nil
}

func (r *AccountRepository) AdjustBalance(ctx context.Context, userID string, accountType domain.AccountType, delta decimal.Decimal) error {
	defer observe("adjust_balance", time.Now())

	res := r.db.WithContext(ctx).Model(&subAccountRow{}).
		Where("user_id = ? AND account_type = ?", userID, string(accountType)).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("adjust balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("adjust %s/%s: %w", userID, accountType, domain.ErrAccountNotFound)
	}
	return nil
}

// Transfer locks both sub-account rows (in primary key order, so concurrent
// transfers cannot deadlock) and applies the debit and the credit in one
// database transaction.
func (r *AccountRepository) Transfer(ctx context.Context, userID string, from, to domain.AccountType, amount decimal.Decimal) error {
	defer observe("transfer", time.Now())

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []subAccountRow
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND account_type IN ?", userID, []string{string(from), string(to)}).
			Order("account_type").
			Find(&rows).Error
		if err != nil {
			return fmt.Errorf("lock sub-accounts: %w", err)
		}

		var source, dest *subAccountRow
		for i := range rows {
			t := domain.AccountType(rows[i].AccountType)
			if t == from {
				source = &rows[i]
			}
			if t == to {
				dest = &rows[i]
			}
		}

		if source == nil || source.Balance.LessThan(amount) {
			return domain.ErrInsufficientFunds
		}
		if dest == nil {
			return fmt.Errorf("transfer to %s: %w", to, domain.ErrAccountNotFound)
		}
		if from == to {
			return nil
		}

		if err := tx.Model(&subAccountRow{}).
			Where("user_id = ? AND account_type = ?", userID, string(from)).
			Update("balance", gorm.Expr("balance - ?", amount)).Error; err != nil {
			return fmt.Errorf("debit %s: %w", from, err)
		}
		if err := tx.Model(&subAccountRow{}).
			Where("user_id = ? AND account_type = ?", userID, string(to)).
			Update("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
			return fmt.Errorf("credit %s: %w", to, err)
		}

		r.log.Debug("Transfer committed",
			zap.String("user_id", userID),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("amount", amount.String()),
		)
		return nil
	})
}

// Seed upserts the given accounts and their balances.
func (r *AccountRepository) Seed(ctx context.Context, accounts []domain.Account) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, acc := range accounts {
			row := accountRow{UserID: acc.UserID, DisplayName: acc.DisplayName}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("seed account %s: %w", acc.UserID, err)
			}

			for t, balance := range acc.SubAccounts {
				sub := subAccountRow{UserID: acc.UserID, AccountType: string(t), Balance: balance}
				if err := tx.Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "account_type"}},
					DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
				}).Create(&sub).Error; err != nil {
					return fmt.Errorf("seed sub-account %s/%s: %w", acc.UserID, t, err)
				}
			}
		}
		return nil
	})
}
