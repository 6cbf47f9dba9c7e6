package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/observability/telemetry"
	"github.com/seu-repo/bankbot/internal/ports"
)

type DialogHandler struct {
	service ports.DialogService
	log     *zap.Logger
}

func NewDialogHandler(service ports.DialogService, log *zap.Logger) *DialogHandler {
	return &DialogHandler{
		service: service,
		log:     log,
	}
}

// Handle runs one conversational turn. Business failures are reported in the
// dialog response itself, so only undecodable bodies produce an HTTP error.
func (h *DialogHandler) Handle(c *fiber.Ctx) error {
	ctx, span := telemetry.StartSpan(c.UserContext(), "dialog.turn")
	defer span.End()

	var req domain.Request
	if err := c.BodyParser(&req); err != nil {
		h.log.Warn("Invalid dialog request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	span.SetAttributes(
		attribute.String("dialog.intent", req.IntentName),
		attribute.String("dialog.confirmation_state", string(req.ConfirmationState)),
	)

	resp := h.service.Handle(ctx, &req)

	span.SetAttributes(
		attribute.String("dialog.action", string(resp.DialogAction)),
		attribute.String("dialog.intent_state", string(resp.IntentState)),
	)
	return c.JSON(resp)
}
