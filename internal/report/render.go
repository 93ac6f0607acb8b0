package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(colorText)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	alertStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// separatorRow splits a table body.
const separatorRow = "---"

// Table is a bordered text table. The first column is left aligned, the
// others right aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(50).
		Align(lipgloss.Center).
		Padding(0, 1)
	return border.Render(titleStyle.Render(title))
}

// RenderTable renders t with box drawing borders.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right) + "\n")
	}

	row := func(cells []string, style lipgloss.Style) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				b.WriteString(style.Render(" " + cell + pad + " "))
			} else {
				b.WriteString(style.Render(" " + pad + cell + " "))
			}
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│") + "\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		row(t.Headers, headerStyle)
		rule("├", "┼", "┤")
	}
	for _, r := range t.Rows {
		if len(r) == 1 && r[0] == separatorRow {
			rule("├", "┼", "┤")
			continue
		}
		row(r, valueStyle)
	}
	rule("╰", "┴", "╯")

	return b.String()
}

// FormatMoney renders an amount with two decimals and thousands separators,
// e.g. -1234.5 -> "-1,234.50".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	sign := ""
	if d.IsNegative() && fixed != "0.00" {
		sign = "-"
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + whole + "." + frac
	}
	return sign + humanize.Comma(n) + "." + frac
}

// FormatDay renders a paycheck day as an ordinal, e.g. 15 -> "15th".
func FormatDay(day int) string {
	return humanize.Ordinal(day)
}

// highlightNegative renders negative amounts in the alert color.
func highlightNegative(d decimal.Decimal) string {
	if d.IsNegative() {
		return alertStyle.Render(FormatMoney(d))
	}
	return FormatMoney(d)
}

func muted(format string, args ...any) string {
	return mutedStyle.Render(fmt.Sprintf(format, args...))
}
