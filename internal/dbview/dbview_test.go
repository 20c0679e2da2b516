package dbview

import (
	"errors"
	"testing"
	"time"

	"github.com/ehfeng/querycrafter/internal/autocomplete"
	"github.com/ehfeng/querycrafter/internal/driver"
	"github.com/ehfeng/querycrafter/internal/history"
)

func newTestDb(t *testing.T) *Db {
	t.Helper()
	h, err := history.Load(t.TempDir())
	if err != nil {
		t.Fatalf("history.Load: %v", err)
	}
	return New(nil, h, autocomplete.Builtin)
}

func TestLoadSelectedTableQuery(t *testing.T) {
	db := newTestDb(t)
	db.ApplyTables([]driver.Table{
		{Schema: "public", Name: "posts"},
		{Schema: "public", Name: "users"},
	})
	if _, ok := db.SelectedTable(); !ok {
		t.Fatalf("expected a selected table")
	}
	q, ok := db.LoadSelectedTableQuery()
	if !ok {
		t.Fatalf("expected ok")
	}
	if q != "SELECT * FROM public.posts" {
		t.Fatalf("got %q", q)
	}
}

func TestMoveTableSelectionClamps(t *testing.T) {
	db := newTestDb(t)
	db.ApplyTables([]driver.Table{{Name: "a"}, {Name: "b"}})
	db.MoveTableSelection(-5)
	if db.SelectedIdx != 0 {
		t.Fatalf("expected clamp to 0, got %d", db.SelectedIdx)
	}
	db.MoveTableSelection(5)
	if db.SelectedIdx != 1 {
		t.Fatalf("expected clamp to 1, got %d", db.SelectedIdx)
	}
}

func TestQueryLifecycleWritesHistoryOnSuccess(t *testing.T) {
	db := newTestDb(t)
	now := time.Unix(0, 0)
	db.StartQuery("  SELECT 1  ", now)
	if db.Lifecycle.Text != "SELECT 1" {
		t.Fatalf("expected trimmed text, got %q", db.Lifecycle.Text)
	}
	set := driver.ResultSet{Headers: []string{"x"}, Rows: [][]string{{"1"}}}
	if err := db.CompleteQuery(set, 5, now.Add(time.Millisecond)); err != nil {
		t.Fatalf("CompleteQuery: %v", err)
	}
	if len(db.History.Entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(db.History.Entries))
	}
	if db.Nav.RowCount() != 1 {
		t.Fatalf("expected navigator to see 1 row, got %d", db.Nav.RowCount())
	}
}

func TestFailedQueryWritesNoHistory(t *testing.T) {
	db := newTestDb(t)
	db.StartQuery("SELECT bogus", time.Unix(0, 0))
	db.FailQuery(errors.New("syntax error"))
	if len(db.History.Entries) != 0 {
		t.Fatalf("expected no history entries after failure, got %d", len(db.History.Entries))
	}
	if db.Lifecycle.Err == nil {
		t.Fatalf("expected lifecycle error to be set")
	}
}

func TestToggleExplainViewOperatesOnLastExecutedQuery(t *testing.T) {
	db := newTestDb(t)
	db.StartQuery("SELECT 1", time.Unix(0, 0))
	// Editor buffer diverges from the executed query; toggle must still
	// use LastExecutedQuery, not the live buffer (§9 resolved Open Question).
	db.Editor.SetText("SELECT 2")

	got := db.ToggleExplainView()
	if got != "EXPLAIN SELECT 1" {
		t.Fatalf("got %q", got)
	}
}

func TestToggleExplainAnalyzeCycles(t *testing.T) {
	db := newTestDb(t)
	db.StartQuery("SELECT 1", time.Unix(0, 0))

	analyzed := db.ToggleExplainAnalyze()
	if analyzed != "EXPLAIN (ANALYZE) SELECT 1" {
		t.Fatalf("got %q", analyzed)
	}

	db.StartQuery(analyzed, time.Unix(0, 0))
	if back := db.ToggleExplainAnalyze(); back != "SELECT 1" {
		t.Fatalf("expected cycle back to plain, got %q", back)
	}
}
