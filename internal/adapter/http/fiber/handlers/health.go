package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger reports whether a dependency is reachable.
type Pinger func(ctx context.Context) error

type CheckResult struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Duration int64  `json:"duration_ms"`
}

type ReadyResponse struct {
	Ready     bool                   `json:"ready"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

type HealthHandler struct {
	checks map[string]Pinger
	log    *zap.Logger
}

func NewHealthHandler(checks map[string]Pinger, log *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checks: checks,
		log:    log,
	}
}

func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// Ready runs every dependency check and answers 503 if any of them fails.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	resp := ReadyResponse{
		Ready:     true,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckResult, len(h.checks)),
	}
	for name, ping := range h.checks {
		start := time.Now()
		err := ping(ctx)
		result := CheckResult{Status: "healthy", Duration: time.Since(start).Milliseconds()}
		if err != nil {
			h.log.Warn("Readiness check failed", zap.String("dependency", name), zap.Error(err))
			result.Status = "unhealthy"
			result.Message = err.Error()
			resp.Ready = false
		}
		resp.Checks[name] = result
	}

	if !resp.Ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
