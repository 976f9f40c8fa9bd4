package services

import (
	"context"
	"time"

	"github.com/assr-bot/assr/internal/incentive"
	"github.com/assr-bot/assr/internal/logger"
	"github.com/assr-bot/assr/internal/models"
	"github.com/assr-bot/assr/internal/store"
	"github.com/shopspring/decimal"
)

// NotAvailable fills table cells we could not resolve
const NotAvailable = "N/A"

// AccountRow is one line of the account table
type AccountRow struct {
	ID           int
	Username     string
	Wallet       string
	Points       string
	TokenExpires string
	OK           bool
}

// OverviewService builds the account table shown at startup
type OverviewService struct {
	api IncentiveAPI
}

func NewOverviewService(api IncentiveAPI) *OverviewService {
	return &OverviewService{api: api}
}

// Rows fetches every account's profile, sequentially. Failures become N/A cells.
func (s *OverviewService) Rows(ctx context.Context, bearers store.BearerTable, accounts []models.Account) []AccountRow {
	rows := make([]AccountRow, 0, len(accounts))
	for i, acc := range accounts {
		row := AccountRow{
			ID:           acc.ID,
			Username:     NotAvailable,
			Wallet:       acc.Wallet,
			Points:       NotAvailable,
			TokenExpires: NotAvailable,
		}

		bearer := bearers.Get(i)
		if bearer == "" {
			rows = append(rows, row)
			continue
		}
		if exp, ok := incentive.TokenExpiry(bearer); ok {
			row.TokenExpires = exp.Local().Format(time.DateTime)
		}

		profile, err := s.api.GetUser(ctx, bearer)
		if err != nil {
			logger.Warn("account %d: profile fetch failed: %v", acc.ID, err)
			rows = append(rows, row)
			continue
		}
		if profile.HasUsername() {
			row.Username = *profile.Username
		}
		row.Points = FormatPoints(profile.Points)
		row.OK = true
		rows = append(rows, row)
	}
	return rows
}

// FormatPoints renders raw points with two implied decimals (12345 -> "123.45").
func FormatPoints(points *int64) string {
	if points == nil {
		return NotAvailable
	}
	return decimal.New(*points, -2).StringFixed(2)
}
