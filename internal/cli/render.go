package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
)

const (
	nameWidth    = 24
	addressWidth = 36
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleHeader  = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleCheck   = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleVisited = lipgloss.NewStyle().Foreground(colorDim).Strikethrough(true)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

// fit truncates s to width cells and pads it back to width.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

func renderRow(c visit.Client) string {
	mark := styleDim.Render("○")
	if c.Visited {
		mark = styleCheck.Render("✓")
	}

	text := fit(c.Name, nameWidth) + "  " + fit(c.Address, addressWidth)
	if c.Visited {
		text = styleVisited.Render(text)
	}
	return fmt.Sprintf("%s %s  %s", mark, text, styleDim.Render(c.ID))
}

func renderClients(w io.Writer, clients []visit.Client) {
	if len(clients) == 0 {
		fmt.Fprintln(w, styleDim.Render("  no clients"))
		return
	}
	for _, c := range clients {
		fmt.Fprintln(w, renderRow(c))
	}
}

func renderHeader(w io.Writer, day visit.Day, s visit.Summary) {
	fmt.Fprintf(w, "%s  %s\n", styleHeader.Render(strings.ToUpper(day.Label())), remaining(s))
}

// remaining is the "left / total" counter.
func remaining(s visit.Summary) string {
	return styleDim.Render(fmt.Sprintf("%d / %d remaining", s.Remaining, s.Total))
}

func renderMore(w io.Writer, more int) {
	if more > 0 {
		fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("  +%d more", more)))
	}
}

func renderTotals(w io.Writer, s visit.Summary) {
	fmt.Fprintln(w, styleDim.Render(fmt.Sprintf("total %d · visited %d · unvisited %d", s.Total, s.Visited, s.Remaining)))
}

func renderBanner(w io.Writer, msg string) {
	if msg != "" {
		fmt.Fprintln(w, styleError.Render("! "+msg))
	}
}
