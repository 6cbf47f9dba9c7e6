package memory

import (
	"github.com/shopspring/decimal"

	"github.com/seu-repo/bankbot/internal/domain"
)

// DemoAccounts is the data set used when no persistent backend is configured.
func DemoAccounts() []domain.Account {
	return []domain.Account{
		{
			UserID:      "user-001",
			DisplayName: "Alex Morgan",
			SubAccounts: map[domain.AccountType]decimal.Decimal{
				domain.AccountTypeChecking: decimal.RequireFromString("1500.75"),
				domain.AccountTypeSavings:  decimal.RequireFromString("5200.00"),
				domain.AccountTypeCredit:   decimal.RequireFromString("-250.40"),
				domain.AccountTypeLoan:     decimal.RequireFromString("-12000.00"),
			},
		},
		{
			UserID: "user-002",
			SubAccounts: map[domain.AccountType]decimal.Decimal{
				domain.AccountTypeChecking: decimal.RequireFromString("320.10"),
				domain.AccountTypeSavings:  decimal.RequireFromString("45.00"),
			},
		},
	}
}
