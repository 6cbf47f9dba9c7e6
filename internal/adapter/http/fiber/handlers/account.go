package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seu-repo/bankbot/internal/domain"
	"github.com/seu-repo/bankbot/internal/ports"
)

// AccountHandler exposes back-office operations on the account store.
type AccountHandler struct {
	store ports.AccountStore
	log   *zap.Logger
}

func NewAccountHandler(store ports.AccountStore, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		store: store,
		log:   log,
	}
}

type AdjustBalanceRequest struct {
	Delta string `json:"delta"`
}

type balanceView struct {
	UserID      string `json:"user_id"`
	AccountType string `json:"account_type"`
	Balance     string `json:"balance"`
}

type accountView struct {
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name,omitempty"`
	Balances    map[string]string `json:"balances"`
}

func (h *AccountHandler) Get(c *fiber.Ctx) error {
	userID := c.Params("userId")

	acc, err := h.store.ResolveUser(c.UserContext(), userID)
	if err != nil {
		h.log.Error("Failed to load account", zap.String("user_id", userID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load account"})
	}
	if acc == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}

	view := accountView{
		UserID:      acc.UserID,
		DisplayName: acc.DisplayName,
		Balances:    make(map[string]string, len(acc.SubAccounts)),
	}
	for t, b := range acc.SubAccounts {
		view.Balances[string(t)] = b.StringFixed(2)
	}
	return c.JSON(view)
}

func (h *AccountHandler) Adjust(c *fiber.Ctx) error {
	userID := c.Params("userId")
	accountType := domain.NormalizeAccountType(c.Params("accountType"))

	var req AdjustBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid delta"})
	}

	err = h.store.AdjustBalance(c.UserContext(), userID, accountType, delta)
	if errors.Is(err, domain.ErrAccountNotFound) || errors.Is(err, domain.ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Account not found"})
	}
	if err != nil {
		h.log.Error("Failed to adjust balance",
			zap.String("user_id", userID),
			zap.String("account_type", string(accountType)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not adjust balance"})
	}

	balance, _, err := h.store.GetBalance(c.UserContext(), userID, accountType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not read balance"})
	}

	h.log.Info("Balance adjusted",
		zap.String("user_id", userID),
		zap.String("account_type", string(accountType)),
		zap.String("delta", delta.String()),
	)
	return c.JSON(balanceView{
		UserID:      userID,
		AccountType: string(accountType),
		Balance:     balance.StringFixed(2),
	})
}
