package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/subs-cli/internal/domain"
)

var tierColors = map[domain.Tier]lipgloss.Color{
	domain.TierDanger:  lipgloss.Color("#ef4444"),
	domain.TierWarning: lipgloss.Color("#f59e0b"),
	domain.TierPrimary: lipgloss.Color("#22c55e"),
}

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	cardLabel  lipgloss.Style
	cardValue  lipgloss.Style
	service    lipgloss.Style
	detail     lipgloss.Style
	fieldKey   lipgloss.Style
	problem    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cardLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		cardValue:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		service:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		fieldKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		problem:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

func (s styles) tier(t domain.Tier) lipgloss.Style {
	color, ok := tierColors[t]
	if !ok {
		color = tierColors[domain.TierPrimary]
	}
	return lipgloss.NewStyle().Foreground(color)
}

func (s styles) badge(t domain.Tier) lipgloss.Style {
	return s.tier(t).Bold(true)
}
