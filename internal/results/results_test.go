package results

import (
	"strings"
	"testing"

	"github.com/ehfeng/querycrafter/internal/driver"
)

func sampleSet() driver.ResultSet {
	return driver.ResultSet{
		Headers: []string{"id", "name", "email"},
		Rows: [][]string{
			{"1", "alice", "alice@example.com"},
			{"2", "bob", "bob@example.com"},
			{"3", "carol", "carol@example.com"},
		},
	}
}

func TestTableModeRowWraps(t *testing.T) {
	n := NewNavigator(sampleSet())
	n.MoveRow(-1)
	if n.SelectedRow() != 2 {
		t.Fatalf("expected wrap to last row, got %d", n.SelectedRow())
	}
}

func TestFilterPreservesUnderlyingIndex(t *testing.T) {
	n := NewNavigator(sampleSet())
	n.SetFilter("bob")
	if n.RowCount() != 1 {
		t.Fatalf("expected 1 match, got %d", n.RowCount())
	}
	if got := n.SelectedRowValues()[1]; got != "bob" {
		t.Fatalf("expected bob, got %q", got)
	}
}

func TestFilterClearRestoresAllRows(t *testing.T) {
	n := NewNavigator(sampleSet())
	n.SetFilter("alice")
	n.SetFilter("")
	if n.RowCount() != 3 {
		t.Fatalf("expected all 3 rows restored, got %d", n.RowCount())
	}
}

func TestCellModeCopy(t *testing.T) {
	n := NewNavigator(sampleSet())
	n.EnterCell()
	n.MoveCell(1)
	if got := n.CopyCell(); got != "alice" {
		t.Fatalf("CopyCell() = %q, want alice", got)
	}
}

func TestCopyRowIsTabJoined(t *testing.T) {
	n := NewNavigator(sampleSet())
	if got := n.CopyRow(); got != "1\talice\talice@example.com" {
		t.Fatalf("CopyRow() = %q", got)
	}
}

func TestIsExplainCaseInsensitive(t *testing.T) {
	if !IsExplain("  explain select 1") {
		t.Fatalf("expected EXPLAIN prefix to match case-insensitively")
	}
	if IsExplain("select 1") {
		t.Fatalf("plain select should not be EXPLAIN")
	}
}

func TestCopyExplainSingleColumn(t *testing.T) {
	got := CopyExplain([]string{"Query Plan"}, [][]string{{"Seq Scan on users"}, {"  Filter: id = 1"}})
	want := "Seq Scan on users\n  Filter: id = 1"
	if got != want {
		t.Fatalf("CopyExplain() = %q, want %q", got, want)
	}
}

func TestExportCSVFilenameFollowsNamingConvention(t *testing.T) {
	n := NewNavigator(sampleSet())
	path, err := n.ExportCSV(t.TempDir())
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	name := path[strings.LastIndexAny(path, `/\`)+1:]
	if !strings.HasPrefix(name, "query_results_") || !strings.HasSuffix(name, ".csv") {
		t.Fatalf("filename %q does not match query_results_YYYYMMDD_HHMMSS.csv", name)
	}
}
