package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehfeng/querycrafter/internal/action"
	"github.com/ehfeng/querycrafter/internal/config"
	"github.com/ehfeng/querycrafter/internal/driver"
	"github.com/ehfeng/querycrafter/internal/editor"
	"github.com/ehfeng/querycrafter/internal/history"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	h, err := history.Load(t.TempDir())
	if err != nil {
		t.Fatalf("history.Load: %v", err)
	}
	return NewApp(config.Defaults(), nil, h)
}

func TestNewAppStartsFocusedOnHome(t *testing.T) {
	app := newTestApp(t)
	if app.focus != action.FocusHome {
		t.Fatalf("focus = %v, want FocusHome", app.focus)
	}
	if app.ActiveOverlay() != OverlayNone {
		t.Fatalf("ActiveOverlay() = %v, want OverlayNone", app.ActiveOverlay())
	}
}

func TestTablesLoadedAppliesAndPrefetchesColumns(t *testing.T) {
	app := newTestApp(t)
	msg := action.TablesLoaded{Tables: []action.TableDescriptor{
		{Schema: "public", Name: "zebras"},
		{Schema: "public", Name: "apples"},
	}}

	model, cmd := app.Update(msg)
	app = model.(*App)

	if len(app.db.Tables) != 2 {
		t.Fatalf("Tables = %d, want 2", len(app.db.Tables))
	}
	if app.db.Tables[0].Name != "apples" {
		t.Fatalf("Tables[0] = %s, want apples (sorted)", app.db.Tables[0].Name)
	}
	if cmd == nil {
		t.Fatal("expected a prefetch tea.Cmd, got nil")
	}

	// db.Driver is nil in this test, so the prefetch command short-circuits
	// to an empty SchemaPrefetched rather than panicking.
	result := cmd()
	prefetched, ok := result.(action.SchemaPrefetched)
	if !ok {
		t.Fatalf("prefetch cmd returned %T, want action.SchemaPrefetched", result)
	}
	if len(prefetched.Columns) != 0 {
		t.Fatalf("Columns = %v, want empty (nil driver)", prefetched.Columns)
	}
}

func TestSchemaPrefetchedFeedsTableColumns(t *testing.T) {
	app := newTestApp(t)
	app.db.ApplyTables([]driver.Table{{Schema: "public", Name: "users"}})

	model, _ := app.Update(action.SchemaPrefetched{Columns: map[string][]action.ColumnDescriptor{
		"users": {{Name: "id", DataType: "integer"}},
	}})
	app = model.(*App)

	if app.showTableInfo {
		t.Fatal("SchemaPrefetched must not open the table-info overlay (that's TableColumnsLoaded's job)")
	}
	cols := app.db.Tables[0].Columns
	if len(cols) != 1 || cols["id"].DataType != "integer" {
		t.Fatalf("Columns = %v, want {id: integer}", cols)
	}
}

func TestTableColumnsLoadedOpensTableInfo(t *testing.T) {
	app := newTestApp(t)
	app.db.ApplyTables([]driver.Table{{Schema: "public", Name: "users"}})

	model, _ := app.Update(action.TableColumnsLoaded{
		Table:   "users",
		Columns: []action.ColumnDescriptor{{Name: "id", DataType: "integer"}},
	})
	app = model.(*App)

	if !app.showTableInfo {
		t.Fatal("TableColumnsLoaded must open the table-info overlay")
	}
	if app.ActiveOverlay() != OverlayTableInfo {
		t.Fatalf("ActiveOverlay() = %v, want OverlayTableInfo", app.ActiveOverlay())
	}
}

func TestErrorOverlayDismissedWithEsc(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(action.Error{Err: errTest{"boom"}})
	app = model.(*App)

	if app.ActiveOverlay() != OverlayError {
		t.Fatalf("ActiveOverlay() = %v, want OverlayError", app.ActiveOverlay())
	}

	app.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if app.errorMsg != "" {
		t.Fatalf("errorMsg = %q, want empty after Esc", app.errorMsg)
	}
}

func TestDispatchSwitchTabTogglesHistoryView(t *testing.T) {
	app := newTestApp(t)
	if app.onHistoryTab {
		t.Fatal("onHistoryTab should start false")
	}
	app.dispatch(action.KindSwitchTab)
	if !app.onHistoryTab {
		t.Fatal("KindSwitchTab should flip onHistoryTab to true")
	}
}

func TestDispatchFocusChangesRouteFocus(t *testing.T) {
	app := newTestApp(t)
	app.dispatch(action.KindFocusResults)
	if app.focus != action.FocusResults {
		t.Fatalf("focus = %v, want FocusResults", app.focus)
	}
}

func TestHandleKeyInsertModeRoutesToEditor(t *testing.T) {
	app := newTestApp(t)
	app.focus = action.FocusQuery
	app.db.Editor.HandleKey(editor.Key{Type: editor.KeyRune, Rune: 'i'}) // enter Insert mode

	app.handleKey(runeKeyMsg('x'))
	if got := app.db.Editor.GetText(); got != "x" {
		t.Fatalf("GetText() = %q, want %q", got, "x")
	}
}

func runeKeyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

type errTest struct{ msg string }

func (e errTest) Error() string { return e.msg }
