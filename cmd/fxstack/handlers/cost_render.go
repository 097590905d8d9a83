package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/fxstack/internal/pricing"
)

var (
	costColorBlue  = lipgloss.Color("#3b82f6")
	costColorDim   = lipgloss.Color("#6b7280")
	costColorWhite = lipgloss.Color("#f9fafb")
)

var (
	costTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(costColorWhite)

	costSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(costColorBlue)

	costDimStyle = lipgloss.NewStyle().
			Foreground(costColorDim)
)

// renderCostEstimate produces a lipgloss-styled cost table.
func renderCostEstimate(e *pricing.Estimate) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(costTitleStyle.Render(fmt.Sprintf("  fxstack cost: %s", e.Stack)))
	b.WriteString("\n")
	b.WriteString(costDimStyle.Render(fmt.Sprintf("  %s in %s", e.ServerType, e.Location)))
	b.WriteString("\n\n")

	b.WriteString(costSectionStyle.Render("  Monthly"))
	b.WriteString("\n")
	b.WriteString(costDimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")
	b.WriteString(costDimStyle.Render(fmt.Sprintf("  %-22s %12s %12s", "Resource", "Net", "Gross")))
	b.WriteString("\n")

	for _, item := range e.Items {
		fmt.Fprintf(&b, "  %-22s %s %8.2f %s %8.2f\n",
			item.Name, e.Currency, item.MonthlyNet, e.Currency, item.MonthlyGross)
	}

	b.WriteString(costDimStyle.Render("  " + strings.Repeat("─", 50)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-22s %s %8.2f %s %8.2f\n",
		"Total", e.Currency, e.Total.MonthlyNet, e.Currency, e.Total.MonthlyGross)
	b.WriteString("\n")
	b.WriteString(costDimStyle.Render(fmt.Sprintf("  Annual estimate: %s %.2f gross. Firewall and SSH key are free.", e.Currency, e.Annual())))
	b.WriteString("\n")

	return b.String()
}
