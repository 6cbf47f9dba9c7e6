package audit

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/seu-repo/bankbot/internal/adapter/storage/memory"
	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/mocks"
	"github.com/seu-repo/bankbot/internal/service/dialog"
)

func TestSubscribeTransfers_LogsRouterEvents(t *testing.T) {
	// Arrange
	core, logs := observer.New(zapcore.InfoLevel)
	mq := mocks.NewMockMessageQueue()
	if err := SubscribeTransfers(mq, zap.New(core)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	store := memory.NewAccountStore(memory.DemoAccounts(), zap.NewNop())
	router := dialog.NewRouter(store, mq, zap.NewNop())
	slot := func(v string) *domain.Slot { return &domain.Slot{Value: &domain.SlotValue{InterpretedValue: v}} }

	// Act
	router.Handle(context.Background(), &domain.Request{
		IntentName:        "TransferMoneyIntent",
		UserID:            "user-001",
		ConfirmationState: domain.ConfirmationConfirmed,
		Slots: domain.Slots{
			"fromAccountType": slot("checking"),
			"toAccountType":   slot("savings"),
			"transferAmount":  slot("12.5"),
		},
	})

	// Assert
	entries := logs.FilterMessage("Transfer completed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "user-001" || fields["amount"] != "12.50" || fields["from"] != "checking" {
		t.Errorf("unexpected audit fields %v", fields)
	}
}

func TestSubscribeTransfers_RejectsInvalidPayload(t *testing.T) {
	mq := mocks.NewMockMessageQueue()
	if err := SubscribeTransfers(mq, zap.NewNop()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mq.Publish(domain.SubjectTransferCompleted, []byte("{oops")); err == nil {
		t.Error("expected decode error from handler")
	}
}
