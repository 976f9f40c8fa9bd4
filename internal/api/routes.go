/**
 * @description
 * Status API route definitions.
 * Exposes the health of the bot and the last check-in pass while it runs.
 *
 * @dependencies
 * - github.com/gofiber/fiber/v2
 * - internal/api/handlers
 * - internal/api/middleware
 */

package api

import (
	"github.com/assr-bot/assr/internal/api/handlers"
	"github.com/assr-bot/assr/internal/api/middleware"
	"github.com/assr-bot/assr/internal/config"
	"github.com/assr-bot/assr/internal/models"
	"github.com/gofiber/fiber/v2"
)

// NewApp builds the Fiber app serving the status routes
// history may be nil, in which case /history answers 503.
func NewApp(cfg *config.Config, source handlers.SummarySource, history handlers.HistorySource, accounts []models.Account) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "ASSR Bot Status",
		DisableStartupMessage: true,
		StrictRouting:         true,
		CaseSensitive:         true,
	})
	SetupRoutes(app, cfg, source, history, accounts)
	return app
}

// SetupRoutes configures all status routes
func SetupRoutes(app *fiber.App, cfg *config.Config, source handlers.SummarySource, history handlers.HistorySource, accounts []models.Account) {
	statusHandler := handlers.NewStatusHandler(source, history, accounts)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": "assr-bot"})
	})

	protected := middleware.Protected(cfg.App.StatusToken)
	v1.Get("/status", protected, statusHandler.GetStatus)
	v1.Get("/accounts", protected, statusHandler.GetAccounts)
	v1.Get("/history", protected, statusHandler.GetHistory)
}
