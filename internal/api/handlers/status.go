/**
 * @description
 * Status API Handlers.
 * Serves the last check-in pass summary, the configured wallets and the
 * persisted check-in history.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 */

package handlers

import (
	"context"
	"strings"

	"github.com/assr-bot/assr/internal/logger"
	"github.com/assr-bot/assr/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultHistoryLimit = 30
	maxHistoryLimit     = 365
)

// SummarySource exposes the latest pass; implemented by services.CheckInService
type SummarySource interface {
	LastSummary() *models.PassSummary
}

// HistorySource reads persisted check-ins; implemented by services.HistoryRecorder
type HistorySource interface {
	Recent(ctx context.Context, wallet string, limit int) ([]models.CheckInRecord, error)
}

type StatusHandler struct {
	Source   SummarySource
	History  HistorySource // nil when DATABASE_URL is unset
	Accounts []models.Account
}

func NewStatusHandler(source SummarySource, history HistorySource, accounts []models.Account) *StatusHandler {
	return &StatusHandler{Source: source, History: history, Accounts: accounts}
}

// GetStatus returns the last pass with per-status counts
// GET /api/v1/status
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	summary := h.Source.LastSummary()
	if summary == nil {
		return c.JSON(fiber.Map{"state": "idle", "last_pass": nil})
	}
	return c.JSON(fiber.Map{
		"state":     "ran",
		"last_pass": summary,
		"counts": fiber.Map{
			string(models.CheckInSuccess):          summary.Count(models.CheckInSuccess),
			string(models.CheckInAlreadyPerformed): summary.Count(models.CheckInAlreadyPerformed),
			string(models.CheckInMissingToken):     summary.Count(models.CheckInMissingToken),
			string(models.CheckInFailed):           summary.Count(models.CheckInFailed),
		},
	})
}

type accountView struct {
	Index  int    `json:"index"`
	ID     int    `json:"id"`
	Wallet string `json:"wallet"`
}

// GetAccounts lists the configured wallets. Private keys never leave the process.
// GET /api/v1/accounts
func (h *StatusHandler) GetAccounts(c *fiber.Ctx) error {
	out := make([]accountView, 0, len(h.Accounts))
	for i, acc := range h.Accounts {
		out = append(out, accountView{Index: i, ID: acc.ID, Wallet: acc.Wallet})
	}
	return c.JSON(out)
}

// GetHistory returns the latest persisted check-ins of one wallet
// GET /api/v1/history?wallet=...&limit=30
func (h *StatusHandler) GetHistory(c *fiber.Ctx) error {
	if h.History == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "History is disabled (DATABASE_URL not set)"})
	}

	wallet := strings.TrimSpace(c.Query("wallet"))
	if wallet == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "wallet query parameter is required"})
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be between 1 and 365"})
	}

	records, err := h.History.Recent(c.UserContext(), wallet, limit)
	if err != nil {
		logger.Error("history lookup for %s failed: %v", wallet, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load history"})
	}
	if records == nil {
		records = []models.CheckInRecord{}
	}
	return c.JSON(records)
}
