package results

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	explainWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	explainSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	explainInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	timingError    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	timingWarning  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// IsExplain reports whether query (the last executed query, §4.5) should
// render through the EXPLAIN path: it begins, case-insensitively and after
// trimming whitespace, with EXPLAIN.
func IsExplain(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "EXPLAIN")
}

// RenderPlanLine colors a single line of a single-column "Query Plan"
// EXPLAIN result: sequential scans as a warning, index scans as a success,
// joins as info, everything else unstyled.
func RenderPlanLine(line string) string {
	upper := strings.ToUpper(line)
	switch {
	case strings.Contains(upper, "SEQ SCAN") || strings.Contains(upper, "SEQUENTIAL SCAN"):
		return explainWarning.Render(line)
	case strings.Contains(upper, "INDEX SCAN") || strings.Contains(upper, "INDEX ONLY SCAN"):
		return explainSuccess.Render(line)
	case strings.Contains(upper, "JOIN"):
		return explainInfo.Render(line)
	default:
		return line
	}
}

// RenderPlan joins plan lines, coloring each.
func RenderPlan(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = RenderPlanLine(l)
	}
	return strings.Join(out, "\n")
}

// RenderTiming colors an EXPLAIN ANALYZE timing cell (milliseconds) by
// threshold: >1000ms error, >100ms warning, else unstyled.
func RenderTiming(cell string, ms float64) string {
	switch {
	case ms > 1000:
		return timingError.Render(cell)
	case ms > 100:
		return timingWarning.Render(cell)
	default:
		return cell
	}
}

// CopyExplain serializes a result set's plan rows into one text blob: one
// line per row, tab-joined when there is more than one column (EXPLAIN
// ANALYZE), or the bare plan text when there is exactly one column
// ("Query Plan").
func CopyExplain(headers []string, rows [][]string) string {
	var lines []string
	for _, row := range rows {
		if len(headers) <= 1 {
			if len(row) > 0 {
				lines = append(lines, row[0])
			}
			continue
		}
		lines = append(lines, strings.Join(row, "\t"))
	}
	return strings.Join(lines, "\n")
}
