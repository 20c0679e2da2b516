package ui

import (
	"fmt"
	"strings"

	"github.com/ehfeng/querycrafter/internal/action"
	"github.com/ehfeng/querycrafter/internal/query"
	"github.com/ehfeng/querycrafter/internal/results"
	"github.com/ehfeng/querycrafter/internal/theme"
)

// View renders the full frame: the three panels, with the Error, Help or
// Autocomplete overlay drawn above them when it is the active one (§4.2,
// §4.7). Preview renders inside the Results panel; the Table-info and
// Row-details overlays draw nothing here, though they still take input
// precedence in handleKey.
func (a *App) View() string {
	body := lipglossJoinHorizontal(
		a.renderHome(),
		a.renderQuery(),
		a.renderResults(),
	)
	frame := body + "\n" + a.renderStatusBar()

	switch a.ActiveOverlay() {
	case OverlayError:
		return theme.ErrorStyle.Render("Error: "+a.errorMsg) + "\n(Esc to dismiss)\n\n" + frame
	case OverlayHelp:
		return a.renderHelp() + "\n\n" + frame
	case OverlayAutocomplete:
		return a.renderAutocomplete() + "\n\n" + frame
	default:
		return frame
	}
}

func lipglossJoinHorizontal(panels ...string) string {
	return strings.Join(panels, "  ")
}

func (a *App) panelStyle(focus action.Focus) func(string) string {
	if a.focus == focus {
		return theme.FocusedPanelStyle.Render
	}
	return theme.PanelStyle.Render
}

func (a *App) renderHome() string {
	var b strings.Builder
	b.WriteString("Tables\n")
	for i, t := range a.db.Tables {
		marker := "  "
		if i == a.db.SelectedIdx {
			marker = "> "
		}
		line := marker + t.QualifiedName()
		if i == a.db.SelectedIdx && a.focus == action.FocusHome {
			line = theme.SelectedRowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return a.panelStyle(action.FocusHome)(b.String())
}

func (a *App) renderQuery() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Query [%s]\n", a.db.Editor.Mode()))
	if a.onHistoryTab {
		for i, e := range a.db.History.Reversed() {
			b.WriteString(fmt.Sprintf("%2d. %s\n", i, e.Query))
		}
	} else {
		b.WriteString(a.db.Editor.GetText())
	}
	return a.panelStyle(action.FocusQuery)(b.String())
}

func (a *App) renderResults() string {
	var b strings.Builder
	title := a.resultsTitle()
	b.WriteString(title + "\n")
	if a.filterActive || a.db.Nav.Filter() != "" {
		b.WriteString("/" + a.db.Nav.Filter() + "\n")
	}

	if a.db.Lifecycle.State == query.Running {
		b.WriteString(spinnerFrames[a.spinnerFrame%len(spinnerFrames)] + " running...\n")
		return a.panelStyle(action.FocusResults)(b.String())
	}

	switch a.db.Nav.Mode {
	case results.Preview:
		b.WriteString(a.renderPreview())
	default:
		b.WriteString(a.renderTable())
	}
	return a.panelStyle(action.FocusResults)(b.String())
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

func (a *App) resultsTitle() string {
	set := a.db.Nav.Set
	if len(set.Headers) == 0 {
		return "Results"
	}
	return fmt.Sprintf("Results — %d rows, %d cols", len(set.Rows), len(set.Headers))
}

func (a *App) renderTable() string {
	set := a.db.Nav.Set
	if len(set.Headers) == 0 {
		return "(no results)"
	}
	lo, hi := a.db.Nav.VisibleColumnRange()
	var b strings.Builder
	b.WriteString(strings.Join(results.PadRow(set.Headers[lo:hi]), " | ") + "\n")
	for i := 0; i < a.db.Nav.RowCount(); i++ {
		row := results.PadRow(a.db.Nav.RowValuesAt(i)[lo:hi])
		line := strings.Join(row, " | ")
		if i == a.db.Nav.SelectedDisplayRow() {
			line = theme.SelectedRowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (a *App) renderPreview() string {
	vals := a.db.Nav.SelectedRowValues()
	headers := a.db.Nav.Set.Headers
	var b strings.Builder
	for i, h := range headers {
		line := fmt.Sprintf("%s: %s", h, valueAt(vals, i))
		b.WriteString(line + "\n")
	}
	return b.String()
}

func valueAt(vals []string, i int) string {
	if i < 0 || i >= len(vals) {
		return ""
	}
	return vals[i]
}

func (a *App) renderStatusBar() string {
	status := fmt.Sprintf(" %s | focus: %s ", a.cfg.Database, a.focus)
	return theme.StatusBarStyle.Render(status)
}

func (a *App) renderAutocomplete() string {
	return theme.HelpStyle.Render(strings.Join(a.autocompleteItems, "  "))
}

func (a *App) renderHelp() string {
	return theme.HelpStyle.Render(
		"1/2/3 focus  ?: help  q: quit (Normal mode)  ctrl+enter: execute\n" +
			"i/a/o: insert  Esc: normal  v/V: visual  =  =: format  e: EXPLAIN  E: EXPLAIN ANALYZE",
	)
}
