package dialog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/adapter/queue"
	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
	"github.com/seu-repo/bankbot/internal/ports"
)

// Router dispatches one conversational turn to the handler of its intent.
// It keeps no state between turns; everything it remembers travels in the
// session attributes of the response.
type Router struct {
	store ports.AccountStore
	mq    queue.MessageQueue
	log   *zap.Logger
	now   func() time.Time
}

// NewRouter builds the dialog router. mq may be nil, in which case transfer
// events are not published.
func NewRouter(store ports.AccountStore, mq queue.MessageQueue, log *zap.Logger) *Router {
	return &Router{
		store: store,
		mq:    mq,
		log:   log,
		now:   time.Now,
	}
}

var _ ports.DialogService = (*Router)(nil)

// Handle processes a single turn. It never returns nil and never fails:
// every error is turned into a reply for the user.
func (r *Router) Handle(ctx context.Context, req *domain.Request) *domain.Response {
	start := r.now()
	if req == nil {
		req = &domain.Request{}
	}

	intent := domain.ParseIntent(req.IntentName)
	attrs := copyAttributes(req.SessionAttributes)

	resp := r.route(ctx, intent, req, attrs)

	outcome := turnOutcome(resp)
	telemetry.DialogTurnsTotal.WithLabelValues(intent.String(), outcome).Inc()
	telemetry.DialogLatency.Observe(r.now().Sub(start).Seconds())

	r.log.Info("Dialog turn handled",
		zap.String("intent", req.IntentName),
		zap.String("user_id", req.UserID),
		zap.String("dialog_action", string(resp.DialogAction)),
		zap.String("outcome", outcome),
	)
	return resp
}

func (r *Router) route(ctx context.Context, intent domain.Intent, req *domain.Request, attrs map[string]string) *domain.Response {
	account, err := r.store.ResolveUser(ctx, req.UserID)
	if err != nil {
		r.log.Error("Failed to resolve user", zap.String("user_id", req.UserID), zap.Error(err))
		return failed(attrs, msgAuthFailed)
	}
	if account == nil {
		r.log.Warn("Authentication failed", zap.String("user_id", req.UserID))
		return failed(attrs, msgAuthFailed)
	}

	switch intent {
	case domain.IntentGreeting:
		return r.greet(ctx, account, attrs)
	case domain.IntentBankingInquiry:
		return r.inquire(ctx, account, req, attrs)
	case domain.IntentTransferMoney:
		return r.transfer(ctx, account, req, attrs)
	case domain.IntentFallback:
		return fulfilled(attrs, msgFallback)
	case domain.IntentUnknown:
		return fulfilled(attrs, msgDefault)
	default:
		r.log.Error("Intent without handler", zap.Int("intent", int(intent)), zap.String("name", req.IntentName))
		return fulfilled(attrs, msgDefault)
	}
}

func turnOutcome(resp *domain.Response) string {
	if resp.DialogAction == domain.DialogActionDelegate {
		return "delegated"
	}
	if resp.IntentState == domain.IntentStateFailed {
		return "failed"
	}
	return "fulfilled"
}
