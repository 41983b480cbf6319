package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasklog/internal/core"
)

// RenderTable renders a simple aligned table with a header separator line.
// Columns are padded to the widest visible cell, header included.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(cell)
			if i < cols-1 {
				pad := widths[i] - lipgloss.Width(cell)
				if pad < 0 {
					pad = 0
				}
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHours renders an ordered key to hours mapping under a title, one row
// per key in encounter order, hours truncated to two decimals.
func RenderHours(title, keyHeader, hoursHeader string, hours core.OrderedHours) string {
	rows := make([][]string, 0, hours.Len())
	for _, e := range hours.Entries() {
		rows = append(rows, []string{e.Key, core.FormatHours(e.Hours)})
	}
	return Header(title) + "\n" + RenderTable([]string{keyHeader, hoursHeader}, rows)
}

// RenderRecords renders task records in the six sheet columns.
func RenderRecords(records []core.TaskRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		recorded := ""
		if !r.RecordedAt.IsZero() {
			recorded = r.RecordedAt.Format(core.RecordedAtLayout)
		}
		rows = append(rows, []string{
			r.Name,
			r.Task,
			r.DateText(),
			core.FormatHours(r.Hours),
			string(r.Type),
			recorded,
		})
	}
	return RenderTable([]string{"Name", "Task", "Date", "Hours", "Type", "Recorded At"}, rows)
}
