// Package dbview is the Db aggregate component §9 calls out: it owns the
// table list, the query editor, the results navigator, the query lifecycle,
// history, and autocomplete, and exposes the handful of operations the UI
// router drives — grounded on ted/database.go's Sheet aggregate, which
// plays the same "one struct holds everything about the current connection"
// role for ted's tview panes.
package dbview

import (
	"strings"
	"time"

	"github.com/ehfeng/querycrafter/internal/autocomplete"
	"github.com/ehfeng/querycrafter/internal/driver"
	"github.com/ehfeng/querycrafter/internal/editor"
	"github.com/ehfeng/querycrafter/internal/history"
	"github.com/ehfeng/querycrafter/internal/query"
	"github.com/ehfeng/querycrafter/internal/results"
)

// Db holds everything the Query/Results/Home components render and mutate.
// It is not itself a bubbletea component; internal/ui's App is the one
// component, and it renders the Home, Query and Results panels from it.
type Db struct {
	Driver driver.Driver

	Tables      []driver.Table
	TableSearch string
	SelectedIdx int

	Editor *editor.Editor
	Nav    *results.Navigator

	Lifecycle query.Lifecycle
	History   *history.History

	Autocomplete *autocomplete.Engine

	// LastExecutedQuery is the text of the most recently started query,
	// EXPLAIN toggles operate on this, not on the current editor buffer,
	// per §9's resolved Open Question.
	LastExecutedQuery string
}

// New wires a Db around an already-connected driver and a loaded history
// log. Autocomplete starts in the given backend.
func New(d driver.Driver, h *history.History, acBackend autocomplete.Backend) *Db {
	return &Db{
		Driver:       d,
		Editor:       editor.New(),
		Nav:          results.NewNavigator(driver.ResultSet{}),
		History:      h,
		Autocomplete: autocomplete.New(acBackend),
	}
}

// ApplyTables replaces the table list, sorted by name per the driver
// contract (§6), and clamps the selection. It does not filter the list.
func (db *Db) ApplyTables(tables []driver.Table) {
	driver.SortTables(tables)
	db.Tables = tables
	if db.SelectedIdx >= len(tables) {
		db.SelectedIdx = len(tables) - 1
	}
	if db.SelectedIdx < 0 {
		db.SelectedIdx = 0
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.QualifiedName()
	}
	db.Autocomplete.UpdateTables(names)
}

// MoveTableSelection moves the Home table list cursor by delta, clamping
// (no wrap, matching ted's table list behavior).
func (db *Db) MoveTableSelection(delta int) {
	if len(db.Tables) == 0 {
		return
	}
	db.SelectedIdx += delta
	if db.SelectedIdx < 0 {
		db.SelectedIdx = 0
	}
	if db.SelectedIdx >= len(db.Tables) {
		db.SelectedIdx = len(db.Tables) - 1
	}
}

// SelectedTable returns the table under the Home cursor, or false if none.
func (db *Db) SelectedTable() (driver.Table, bool) {
	if db.SelectedIdx < 0 || db.SelectedIdx >= len(db.Tables) {
		return driver.Table{}, false
	}
	return db.Tables[db.SelectedIdx], true
}

// ApplyTableColumns caches the loaded columns for table and feeds the
// autocomplete engine, per the driver contract's "ordinal order" guarantee.
func (db *Db) ApplyTableColumns(table string, cols []driver.Column) {
	for i := range db.Tables {
		if db.Tables[i].QualifiedName() == table || db.Tables[i].Name == table {
			if db.Tables[i].Columns == nil {
				db.Tables[i].Columns = make(map[string]driver.Column, len(cols))
			}
			for _, c := range cols {
				db.Tables[i].Columns[c.Name] = c
			}
		}
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	db.Autocomplete.UpdateTableColumns(table, names)
}

// LoadSelectedTableQuery builds the "SELECT * FROM x" text LoadSelectedTable
// writes into the editor and issues (§8 scenario 1).
func (db *Db) LoadSelectedTableQuery() (string, bool) {
	t, ok := db.SelectedTable()
	if !ok {
		return "", false
	}
	return "SELECT * FROM " + t.QualifiedName(), true
}

// QueryText returns the text ExecuteQuery should run: the editor's
// selection if one is active, else the whole buffer, trimmed of trailing
// whitespace (§8 boundary behavior).
func (db *Db) QueryText() string {
	if sel, ok := db.Editor.GetSelectedText(); ok && strings.TrimSpace(sel) != "" {
		return strings.TrimRight(sel, " \t\r\n")
	}
	return strings.TrimRight(db.Editor.GetText(), " \t\r\n")
}

// StartQuery transitions the lifecycle Idle/Completed/Failed -> Running and
// records the text as the authoritative last-executed query. Auto-format
// on execute (§4.3) is the caller's responsibility before calling this,
// since format errors must not block execution.
func (db *Db) StartQuery(text string, now time.Time) {
	text = strings.TrimRight(strings.TrimSpace(text), " \t\r\n")
	db.Lifecycle.Start(text, now)
	db.LastExecutedQuery = text
}

// CompleteQuery records a successful result, feeds the results navigator,
// and writes a history entry for every successful query, EXPLAIN included
// (subject to History.Add's deduplication).
func (db *Db) CompleteQuery(set driver.ResultSet, reportedMS int64, now time.Time) error {
	db.Lifecycle.Complete(set, reportedMS, now)
	db.Nav = results.NewNavigator(set)

	if db.History == nil {
		return nil
	}
	return db.History.Add(history.Entry{
		Query:           db.Lifecycle.Text,
		Timestamp:       now,
		RowCount:        len(set.Rows),
		ExecutionTimeMS: db.Lifecycle.ExecutionTimeMS,
	})
}

// FailQuery records a failed query. Failed queries are never written to
// history (§4.5).
func (db *Db) FailQuery(err error) {
	db.Lifecycle.Fail(err)
}

// ToggleExplainView and ToggleExplainAnalyze operate on LastExecutedQuery,
// not the current editor text (§9's resolved Open Question #2), returning
// the new query text to execute next.

func (db *Db) ToggleExplainView() string {
	if db.LastExecutedQuery == "" {
		return ""
	}
	return query.ToggleExplainView(db.LastExecutedQuery)
}

func (db *Db) ToggleExplainAnalyze() string {
	if db.LastExecutedQuery == "" {
		return ""
	}
	return query.ToggleExplainAnalyze(db.LastExecutedQuery)
}

// IsExplain reports whether the lifecycle's current query text is an
// EXPLAIN, switching the results renderer to the EXPLAIN view (§4.4).
func (db *Db) IsExplain() bool {
	return results.IsExplain(db.Lifecycle.Text)
}
