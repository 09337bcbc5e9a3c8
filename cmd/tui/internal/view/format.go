package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/accounting"
)

const dbTimeout = 5 * time.Second

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	pad         = lipgloss.NewStyle().Padding(1)
)

var badgeColors = map[accounting.Badge]lipgloss.Color{
	accounting.BadgeRed:    lipgloss.Color("196"),
	accounting.BadgeYellow: lipgloss.Color("220"),
	accounting.BadgeGreen:  lipgloss.Color("46"),
	accounting.BadgeMuted:  lipgloss.Color("240"),
}

// RenderBadge colors a status label with its badge color.
func RenderBadge(b accounting.Badge, label string) string {
	return lipgloss.NewStyle().Foreground(badgeColors[b]).Render(label)
}

func renderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("Error: %v", err))
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
