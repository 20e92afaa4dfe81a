package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Header     lipgloss.Style
	StageName  lipgloss.Style
	StageInfo  lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Faint      lipgloss.Style
	Box        lipgloss.Style
	Spinner    lipgloss.Style
	StageFetch lipgloss.Style
	StageMerge lipgloss.Style
	Prompt     lipgloss.Style
}

// DefaultStyles is shared with commands that print styled tables.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:      base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Subtitle:   base.Faint(true),
		Header:     base.Bold(true),
		StageName:  base.Width(10).Foreground(lipgloss.Color("#A3A3A3")),
		StageInfo:  base.Foreground(lipgloss.Color("#D1D5DB")),
		Success:    base.Foreground(lipgloss.Color("#22C55E")),
		Error:      base.Foreground(lipgloss.Color("#EF4444")),
		Warning:    base.Foreground(lipgloss.Color("#F59E0B")),
		Faint:      base.Faint(true),
		Box:        base.Padding(0, 1),
		Spinner:    base.Foreground(lipgloss.Color("#22D3EE")),
		StageFetch: base.Foreground(lipgloss.Color("#06B6D4")),
		StageMerge: base.Foreground(lipgloss.Color("#D946EF")),
		Prompt:     base.Bold(true).Foreground(lipgloss.Color("#60A5FA")),
	}
}
