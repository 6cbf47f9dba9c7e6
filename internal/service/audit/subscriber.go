package audit

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/adapter/queue"
	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
)

// SubscribeTransfers writes every completed transfer seen on the queue to the
// audit log.
func SubscribeTransfers(mq queue.MessageQueue, log *zap.Logger) error {
	log = log.Named("audit")

	err := mq.Subscribe(domain.SubjectTransferCompleted, func(data []byte) error {
		var evt domain.TransferEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			telemetry.TransferEventsAudited.WithLabelValues("invalid").Inc()
			return fmt.Errorf("decode transfer event: %w", err)
		}

		telemetry.TransferEventsAudited.WithLabelValues("logged").Inc()
		log.Info("Transfer completed",
			zap.String("event_id", evt.ID),
			zap.String("user_id", evt.UserID),
			zap.String("from", string(evt.FromAccount)),
			zap.String("to", string(evt.ToAccount)),
			zap.String("amount", evt.Amount.StringFixed(2)),
			zap.Time("occurred_at", evt.OccurredAt),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", domain.SubjectTransferCompleted, err)
	}
	return nil
}
