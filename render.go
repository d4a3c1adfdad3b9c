package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"}).
			MarginBottom(1)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	valueStyle = lipgloss.NewStyle().
			Bold(true)
	accentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"})
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"})
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}).
			Padding(0, 1)
)

// currency formats v as Australian dollars with cents, e.g. $1,234.50.
func currency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// wholeDollars formats v rounded to the dollar, e.g. $1,235.
func wholeDollars(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.", -v)
	}
	return "$" + humanize.FormatFloat("#,###.", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

type row struct {
	label string
	value string
	style *lipgloss.Style
}

func line(label, value string) row { return row{label: label, value: value} }

func highlight(label, value string) row { return row{label: label, value: value, style: &accentStyle} }

func warning(label, value string) row { return row{label: label, value: value, style: &warnStyle} }

// renderTable prints a titled, boxed two column table.
func renderTable(w io.Writer, title string, rows []row) error {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		style := valueStyle
		if r.style != nil {
			style = *r.style
		}
		label := labelStyle.Width(width + 2).Render(r.label)
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label, style.Render(r.value)))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), strings.Join(lines, "\n"))
	_, err := fmt.Fprintln(w, boxStyle.Render(body))
	return err
}

// renderColumns prints a titled table with a header row, used for
// projections and term options.
func renderColumns(w io.Writer, title string, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	format := func(cells []string, style lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i]).Align(lipgloss.Right).Render(cell)
		}
		return strings.Join(parts, "  ")
	}

	lines := []string{format(header, labelStyle)}
	for _, r := range rows {
		lines = append(lines, format(r, lipgloss.NewStyle()))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), strings.Join(lines, "\n"))
	_, err := fmt.Fprintln(w, boxStyle.Render(body))
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
