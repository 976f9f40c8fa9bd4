// Package ui renders the interactive console: banner, account table, colored
// progress messages and prompts.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	iconSuccess  = "✅"
	iconError    = "❌"
	iconInfo     = "ℹ️ "
	iconWarn     = "⚠️ "
	iconWelcome  = "👋"
	iconFetching = "⏳"
)

var (
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(1, 6)
)

// Console writes user-facing messages; it implements services.Reporter.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) line(style lipgloss.Style, icon, format string, args ...interface{}) {
	fmt.Fprintln(c.out, style.Render(icon+" "+fmt.Sprintf(format, args...)))
}

func (c *Console) Info(format string, args ...interface{}) {
	c.line(yellow, iconInfo, format, args...)
}

func (c *Console) Success(format string, args ...interface{}) {
	c.line(green, iconSuccess, format, args...)
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.line(yellow, iconWarn, format, args...)
}

func (c *Console) Failure(format string, args ...interface{}) {
	c.line(red, iconError, format, args...)
}

// Highlight prints a cyan line without icon
func (c *Console) Highlight(format string, args ...interface{}) {
	fmt.Fprintln(c.out, cyan.Render(fmt.Sprintf(format, args...)))
}

// Clear wipes the terminal
func (c *Console) Clear() {
	fmt.Fprint(c.out, "\033[H\033[2J")
}

// Banner prints the title box and the welcome lines
func (c *Console) Banner() {
	fmt.Fprintln(c.out, bannerStyle.Render(strings.Join(strings.Split("ASSR BOT", ""), " ")))
	fmt.Fprintln(c.out, green.Render(iconWelcome+" Hello! Welcome to the Assisterr daily check-in bot"))
	fmt.Fprintln(c.out, green.Render(iconFetching+" We're fetching your data... Please wait"))
	fmt.Fprintln(c.out)
}
