package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/adapter/queue"
	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
)

func (r *Router) greet(ctx context.Context, account *domain.Account, attrs map[string]string) *domain.Response {
	name, err := r.store.DisplayName(ctx, account.UserID)
	if err != nil {
		r.log.Warn("Display name lookup failed, using resolved account",
			zap.String("user_id", account.UserID),
			zap.Error(err),
		)
		name = account.DisplayName
	}

	if name == "" {
		return fulfilled(attrs, msgGenericGreeting)
	}
	attrs[attrUserName] = name
	return fulfilled(attrs, fmt.Sprintf(msgNamedGreeting, name))
}

func (r *Router) inquire(ctx context.Context, account *domain.Account, req *domain.Request, attrs map[string]string) *domain.Response {
	accountType, hasType := req.Slots.Get(slotAccountType)
	if hasType {
		attrs[attrAccountType] = accountType
	} else if remembered := attrs[attrAccountType]; remembered != "" {
		accountType, hasType = remembered, true
	}

	operation, hasOperation := req.Slots.Get(slotBankingOperation)
	if !hasType || !hasOperation {
		return delegate(req.IntentName, req.Slots, attrs)
	}

	if !strings.EqualFold(operation, operationBalance) {
		msg := fmt.Sprintf(msgOperation, operation, accountType)
		if amount, ok := req.Slots.Get(slotAmount); ok {
			msg += fmt.Sprintf(msgOperationAmount, amount)
		} else {
			msg += "."
		}
		return fulfilled(attrs, msg)
	}

	balance, ok, err := r.store.GetBalance(ctx, account.UserID, domain.NormalizeAccountType(accountType))
	if err != nil {
		r.log.Error("Balance lookup failed",
			zap.String("user_id", account.UserID),
			zap.String("account_type", accountType),
			zap.Error(err),
		)
		return failed(attrs, msgTemporaryFailure)
	}
	if !ok {
		return fulfilled(attrs, fmt.Sprintf(msgNoSuchAccount, accountType))
	}
	return fulfilled(attrs, fmt.Sprintf(msgBalance, accountType, domain.FormatUSD(balance)))
}

func (r *Router) transfer(ctx context.Context, account *domain.Account, req *domain.Request, attrs map[string]string) *domain.Response {
	switch req.ConfirmationState {
	case domain.ConfirmationConfirmed:
		return r.applyTransfer(ctx, account, req, attrs)
	case domain.ConfirmationDenied:
		return fulfilled(attrs, msgTransferDenied)
	default:
		return delegate(req.IntentName, req.Slots, attrs)
	}
}

func (r *Router) applyTransfer(ctx context.Context, account *domain.Account, req *domain.Request, attrs map[string]string) *domain.Response {
	from, hasFrom := req.Slots.Get(slotFromAccountType)
	to, hasTo := req.Slots.Get(slotToAccountType)
	rawAmount, hasAmount := req.Slots.Get(slotTransferAmount)
	if !hasFrom || !hasTo || !hasAmount {
		return delegate(req.IntentName, req.Slots, attrs)
	}

	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		r.log.Warn("Rejected transfer amount",
			zap.String("user_id", account.UserID),
			zap.String("amount", rawAmount),
			zap.Error(err),
		)
		telemetry.TransfersTotal.WithLabelValues("malformed_amount").Inc()
		return failed(attrs, msgMalformedAmount)
	}

	fromType := domain.NormalizeAccountType(from)
	toType := domain.NormalizeAccountType(to)

	err = r.store.Transfer(ctx, account.UserID, fromType, toType, amount)
	switch {
	case err == nil:
		telemetry.TransfersTotal.WithLabelValues("completed").Inc()
		r.log.Info("Transfer completed",
			zap.String("user_id", account.UserID),
			zap.String("from", string(fromType)),
			zap.String("to", string(toType)),
			zap.String("amount", amount.StringFixed(2)),
		)
		r.publishTransfer(account.UserID, fromType, toType, amount)
		return fulfilled(attrs, fmt.Sprintf(msgTransferDone, domain.FormatUSD(amount), from, to))
	case errors.Is(err, domain.ErrInsufficientFunds):
		telemetry.TransfersTotal.WithLabelValues("insufficient_funds").Inc()
		return fulfilled(attrs, msgInsufficient)
	case errors.Is(err, domain.ErrAccountNotFound):
		telemetry.TransfersTotal.WithLabelValues("unknown_account").Inc()
		return fulfilled(attrs, fmt.Sprintf(msgNoSuchAccount, to))
	default:
		telemetry.TransfersTotal.WithLabelValues("error").Inc()
		r.log.Error("Transfer failed",
			zap.String("user_id", account.UserID),
			zap.Error(err),
		)
		return failed(attrs, msgTemporaryFailure)
	}
}

func (r *Router) publishTransfer(userID string, from, to domain.AccountType, amount decimal.Decimal) {
	if r.mq == nil {
		return
	}

	evt := domain.TransferEvent{
		ID:          uuid.New().String(),
		UserID:      userID,
		FromAccount: from,
		ToAccount:   to,
		Amount:      amount,
		OccurredAt:  r.now().UTC(),
	}
	if err := queue.PublishJSON(r.mq, domain.SubjectTransferCompleted, evt); err != nil {
		r.log.Warn("Failed to publish transfer event",
			zap.String("event_id", evt.ID),
			zap.Error(err),
		)
	}
}
