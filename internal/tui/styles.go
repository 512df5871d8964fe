package tui

import (
	"github.com/charmbracelet/lipgloss"

	"sidecap/internal/config"
)

// Styles holds the lipgloss styles for the editor, built once from
// the configured theme.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Emphasis lipgloss.Style
	Sic      lipgloss.Style
	Pane     lipgloss.Style
	Help     lipgloss.Style
}

// NewStyles builds the style set from the theme colors.
func NewStyles(cfg *config.Config) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(cfg.Theme.Primary)).
			Padding(0, 1),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Error)),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Info)),

		Emphasis: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Emphasis)),

		Sic: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Theme.Sic)).
			Underline(true),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(cfg.Theme.Border)).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
