package ui

import (
	"fmt"
	"strconv"

	"github.com/assr-bot/assr/internal/services"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderAccounts returns the account table as a string
func RenderAccounts(rows []services.AccountRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(cyan).
		Headers("ID", "USERNAME", "WALLET", "POINTS", "TOKEN EXPIRES").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cellStyle.Inherit(cyan).Bold(true)
			}
			if row >= 0 && row < len(rows) && !rows[row].OK && (col == 1 || col == 3) {
				return cellStyle.Inherit(red)
			}
			return cellStyle
		})

	for _, r := range rows {
		t.Row(strconv.Itoa(r.ID), r.Username, r.Wallet, r.Points, r.TokenExpires)
	}
	return t.Render()
}

// Accounts prints the account table
func (c *Console) Accounts(rows []services.AccountRow) {
	fmt.Fprintln(c.out, RenderAccounts(rows))
}
