package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const SubjectTransferCompleted = "banking.transfer.completed"

// TransferEvent is published once a confirmed transfer has been applied.
type TransferEvent struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	FromAccount AccountType     `json:"from_account"`
	ToAccount   AccountType     `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
