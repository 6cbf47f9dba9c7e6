package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCredit   AccountType = "credit"
	AccountTypeLoan     AccountType = "loan"
)

// NormalizeAccountType maps a free-form slot value onto the key used by stores.
func NormalizeAccountType(s string) AccountType {
	return AccountType(strings.ToLower(strings.TrimSpace(s)))
}

// Account is a customer with its typed sub-accounts. Credit and loan balances
// are usually negative.
type Account struct {
	UserID      string                          `json:"user_id"`
	DisplayName string                          `json:"display_name,omitempty"`
	SubAccounts map[AccountType]decimal.Decimal `json:"sub_accounts"`
}

// Balance returns the balance of the given sub-account.
func (a *Account) Balance(t AccountType) (decimal.Decimal, bool) {
	if a == nil || a.SubAccounts == nil {
		return decimal.Zero, false
	}
	b, ok := a.SubAccounts[t]
	return b, ok
}

// Clone returns a deep copy so callers never share the sub-account map.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	subs := make(map[AccountType]decimal.Decimal, len(a.SubAccounts))
	for k, v := range a.SubAccounts {
		subs[k] = v
	}
	return &Account{
		UserID:      a.UserID,
		DisplayName: a.DisplayName,
		SubAccounts: subs,
	}
}
