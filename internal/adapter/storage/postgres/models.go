package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/seu-repo/bankbot/internal/domain"
)

type accountRow struct {
	UserID      string `gorm:"primaryKey;size:64"`
	DisplayName string `gorm:"size:128"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (accountRow) TableName() string { return "bank_accounts" }

type subAccountRow struct {
	UserID      string          `gorm:"primaryKey;size:64"`
	AccountType string          `gorm:"primaryKey;size:32"`
	Balance     decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	UpdatedAt   time.Time
}

func (subAccountRow) TableName() string { return "bank_sub_accounts" }

func toDomain(acc accountRow, subs []subAccountRow) *domain.Account {
	out := &domain.Account{
		UserID:      acc.UserID,
		DisplayName: acc.DisplayName,
		SubAccounts: make(map[domain.AccountType]decimal.Decimal, len(subs)),
	}
	for _, s := range subs {
		out.SubAccounts[domain.AccountType(s.AccountType)] = s.Balance
	}
	return out
}
