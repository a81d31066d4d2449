package shell

import "github.com/charmbracelet/lipgloss"

var (
	brand       = lipgloss.Color("#1E88E5")
	muted       = lipgloss.Color("#8A94A6")
	destructive = lipgloss.Color("#E53935")
	highlight   = lipgloss.Color("#FFC107")
)

// Styles groups the lipgloss styles used by the console.
type Styles struct {
	Title      lipgloss.Style
	Topbar     lipgloss.Style
	Sidebar    lipgloss.Style
	NavItem    lipgloss.Style
	NavActive  lipgloss.Style
	NavCursor  lipgloss.Style
	Body       lipgloss.Style
	Muted      lipgloss.Style
	Error      lipgloss.Style
	Key        lipgloss.Style
	Match      lipgloss.Style
	Dialog     lipgloss.Style
	LoginPanel lipgloss.Style
}

// DefaultStyles returns the console palette.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(brand),
		Topbar:     lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(muted),
		Sidebar:    lipgloss.NewStyle().Width(22).Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(muted),
		NavItem:    lipgloss.NewStyle(),
		NavActive:  lipgloss.NewStyle().Bold(true).Foreground(brand),
		NavCursor:  lipgloss.NewStyle().Reverse(true),
		Body:       lipgloss.NewStyle().Padding(0, 2),
		Muted:      lipgloss.NewStyle().Foreground(muted),
		Error:      lipgloss.NewStyle().Foreground(destructive),
		Key:        lipgloss.NewStyle().Bold(true).Width(20),
		Match:      lipgloss.NewStyle().Foreground(highlight).Bold(true),
		Dialog:     lipgloss.NewStyle().Padding(1, 2).Border(lipgloss.RoundedBorder()).BorderForeground(destructive),
		LoginPanel: lipgloss.NewStyle().Padding(1, 3).Border(lipgloss.RoundedBorder()).BorderForeground(brand),
	}
}
