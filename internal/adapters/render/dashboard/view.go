package dashboard

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/subs-cli/internal/application"
	"github.com/bnema/subs-cli/internal/domain"
)

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func dashboardView(d application.Dashboard, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Minhas assinaturas"),
		summaryCards(d.Summary, s),
	}

	if len(d.Subscriptions) == 0 {
		lines = append(lines, s.section.Render(s.empty.Render("Nenhuma assinatura cadastrada.")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, view := range d.Subscriptions {
		lines = append(lines, s.section.Render(subscriptionCard(view, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func summaryCards(summary domain.Summary, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.cardLabel.Render("Total mensal: "),
		s.cardValue.Render(summary.TotalMonthlyText()),
		"   ",
		s.cardLabel.Render("Vencendo em 7 dias: "),
		s.cardValue.Render(fmt.Sprintf("%d", summary.ExpiringSoonCount)),
	)
}

func subscriptionCard(view application.SubscriptionView, opts RenderOptions, s styles) string {
	sub := view.Subscription
	title := s.service.Render(fmt.Sprintf("#%d %s", sub.ID, sub.ServiceName()))

	meta := s.detail.Render(fmt.Sprintf("%s · %s · renova %s",
		domain.PriceLabel(sub.Price),
		sub.RenewalPeriod.Label(),
		shortDate(sub.RenewalDate),
	))

	if view.Status == nil {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			title+" "+s.problem.Render("[Data inválida]"),
			meta,
			s.problem.Render(view.Problem),
		)
	}

	status := *view.Status
	due := s.tier(status.Tier()).Render(status.DueText())
	if status.ProgressVisible {
		due = lipgloss.JoinHorizontal(lipgloss.Top, due, " ", progressBar(status, opts.barWidth(), s))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title+" "+s.badge(status.Tier()).Render("["+status.Category.Label()+"]"),
		meta,
		due,
	)
}

func detailView(view application.SubscriptionView, opts RenderOptions, s styles) string {
	sub := view.Subscription

	header := s.title.Render(sub.ServiceName())
	countdown := s.problem.Render(view.Problem)
	if view.Status != nil {
		status := *view.Status
		header += " " + s.badge(status.Tier()).Render("["+status.Category.Label()+"]")
		countdown = s.tier(status.Tier()).Render(status.CountdownText())
	}

	lines := []string{
		header,
		field("Vence em", countdown, s),
		field("Renovação", longDate(sub.RenewalDate), s),
		field("Valor", domain.PriceLabel(sub.Price), s),
		field("Período", sub.RenewalPeriod.Label(), s),
		field("Notificar", notifyLabel(sub.NotifyBefore), s),
	}

	if view.Status != nil && view.Status.ProgressVisible {
		lines = append(lines, s.section.Render(progressBar(*view.Status, opts.barWidth(), s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(key, value string, s styles) string {
	return s.fieldKey.Render(fmt.Sprintf("%-11s", key+":")) + " " + s.detail.Render(value)
}

func notifyLabel(p domain.Period) string {
	label := p.Label()
	if label == "-" {
		return label
	}
	return label + " antes"
}

// progressBar fills with the remaining share of the renewal cycle.
func progressBar(status domain.RenewalStatus, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * status.Progress))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.tier(status.Tier()).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

// shortDate renders "04 jan".
func shortDate(raw string) string {
	date, err := domain.ParseRenewalDate(raw, time.UTC)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return fmt.Sprintf("%02d %s", date.Day(), abbreviate(monthNames[date.Month()-1]))
}

// longDate renders "04 de janeiro de 2025".
func longDate(raw string) string {
	date, err := domain.ParseRenewalDate(raw, time.UTC)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return fmt.Sprintf("%02d de %s de %d", date.Day(), monthNames[date.Month()-1], date.Year())
}

func abbreviate(month string) string {
	runes := []rune(month)
	if len(runes) <= 3 {
		return month
	}
	return string(runes[:3])
}
