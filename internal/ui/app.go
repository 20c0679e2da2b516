package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/ehfeng/querycrafter/internal/action"
	"github.com/ehfeng/querycrafter/internal/autocomplete"
	"github.com/ehfeng/querycrafter/internal/clipboard"
	"github.com/ehfeng/querycrafter/internal/config"
	"github.com/ehfeng/querycrafter/internal/dbview"
	"github.com/ehfeng/querycrafter/internal/driver"
	"github.com/ehfeng/querycrafter/internal/editor"
	"github.com/ehfeng/querycrafter/internal/history"
	"github.com/ehfeng/querycrafter/internal/report"
	"github.com/ehfeng/querycrafter/internal/results"
)

const (
	tickRate  = time.Second           // §4.1 "low, e.g. 1 Hz"
	frameRate = 60 * time.Millisecond // ~16Hz, within §4.1's 4-60Hz range
)

// App is the root tea.Model: the event loop and component router §4.1/§4.2
// describe, grounded on ted/tui.go's App but rebuilt on bubbletea's
// Init/Update/View instead of tview's input-capture callbacks.
type App struct {
	cfg *config.Config
	db  *dbview.Db

	focus  action.Focus
	keymap Keymap
	seqBuf SequenceBuffer

	errorMsg         string
	showHelp         bool
	showTableInfo    bool
	showRowDetails   bool
	showAutocomplete bool
	onHistoryTab     bool // 't' toggles Query <-> History tab (§4.7)
	filterActive     bool // '/' opens the inline fuzzy filter in Results (§4.4)

	width, height int
	spinnerFrame  int

	autocompleteItems []string
}

// NewApp wires an App around an already-connected driver.
func NewApp(cfg *config.Config, drv driver.Driver, hist *history.History) *App {
	backend := autocomplete.Builtin
	switch cfg.AutocompleteBackend {
	case "lsp":
		backend = autocomplete.Lsp
	case "hybrid":
		backend = autocomplete.Hybrid
	}

	db := dbview.New(drv, hist, backend)
	if cfg.AutoFormat {
		db.Editor.ToggleAutoFormat()
	}

	overrides := make(map[string]map[string]action.Kind, len(cfg.Keybindings))
	for focus, bindings := range cfg.Keybindings {
		overrides[focus] = make(map[string]action.Kind, len(bindings))
		for seq, kind := range bindings {
			overrides[focus][seq] = action.Kind(kind)
		}
	}

	return &App{
		cfg:    cfg,
		db:     db,
		focus:  action.FocusHome,
		keymap: DefaultKeymap().Merge(overrides),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(tickCmd(), frameCmd(), loadTablesCmd(a.db, ""))
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return action.Tick{At: t} })
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return action.Render{At: t} })
}

func loadTablesCmd(db *dbview.Db, search string) tea.Cmd {
	return func() tea.Msg {
		if db.Driver == nil {
			return action.TablesLoaded{}
		}
		tables, err := db.Driver.LoadTables(context.Background(), search)
		if err != nil {
			return action.Error{Err: fmt.Errorf("load tables: %w", err)}
		}
		out := make([]action.TableDescriptor, len(tables))
		for i, t := range tables {
			out[i] = action.TableDescriptor{Schema: t.Schema, Name: t.Name}
		}
		return action.TablesLoaded{Tables: out}
	}
}

// prefetchColumnsCmd concurrently loads columns for every table right
// after the table list arrives, using errgroup to fan the driver calls
// out and wait for them all, so autocomplete sees full schema knowledge
// without the user having to open each table's info panel first.
func prefetchColumnsCmd(db *dbview.Db, tables []driver.Table) tea.Cmd {
	return func() tea.Msg {
		if db.Driver == nil || len(tables) == 0 {
			return action.SchemaPrefetched{}
		}

		var mu sync.Mutex
		out := make(map[string][]action.ColumnDescriptor, len(tables))

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(8)
		for _, t := range tables {
			t := t
			g.Go(func() error {
				cols, err := db.Driver.LoadTableColumns(ctx, t.Name, t.Schema)
				if err != nil {
					return nil // best-effort: a single table's schema failing shouldn't sink the batch
				}
				descs := make([]action.ColumnDescriptor, len(cols))
				for i, c := range cols {
					descs[i] = action.ColumnDescriptor{Name: c.Name, DataType: c.DataType, IsNullable: c.IsNullable}
				}
				mu.Lock()
				out[t.Name] = descs
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
		return action.SchemaPrefetched{Columns: out}
	}
}

func loadTableColumnsCmd(db *dbview.Db, table, schema string) tea.Cmd {
	return func() tea.Msg {
		cols, err := db.Driver.LoadTableColumns(context.Background(), table, schema)
		if err != nil {
			return action.Error{Err: fmt.Errorf("load columns for %s: %w", table, err)}
		}
		out := make([]action.ColumnDescriptor, len(cols))
		for i, c := range cols {
			out[i] = action.ColumnDescriptor{Name: c.Name, DataType: c.DataType, IsNullable: c.IsNullable}
		}
		return action.TableColumnsLoaded{Table: table, Columns: out}
	}
}

// executeQueryCmd runs text against the driver in a goroutine and reports
// back over the Action channel (§5: "I/O-bound work ... runs on spawned
// tasks that communicate back exclusively via the Action channel").
func executeQueryCmd(db *dbview.Db, text string) tea.Cmd {
	return func() tea.Msg {
		return queryOutcomeMsg{outcome: db.Driver.Query(context.Background(), text)}
	}
}

// queryOutcomeMsg carries a completed query's full outcome (result plus
// driver-reported timing) back into Update in one message, since §5 says
// only the most recently started query is authoritative and the result and
// timing must be applied together.
type queryOutcomeMsg struct{ outcome driver.QueryOutcome }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case action.Tick:
		a.seqBuf.ClearOnTick(msg.At)
		return a, tickCmd()

	case action.Render:
		a.spinnerFrame++
		return a, frameCmd()

	case action.Quit:
		return a, tea.Quit

	case action.Error:
		a.errorMsg = msg.Err.Error()
		report.CaptureError(msg.Err)
		return a, nil

	case action.TablesLoaded:
		tables := make([]driver.Table, len(msg.Tables))
		for i, t := range msg.Tables {
			tables[i] = driver.Table{Schema: t.Schema, Name: t.Name}
		}
		a.db.ApplyTables(tables)
		return a, prefetchColumnsCmd(a.db, tables)

	case action.SchemaPrefetched:
		for table, descs := range msg.Columns {
			cols := make([]driver.Column, len(descs))
			for i, c := range descs {
				cols[i] = driver.Column{Name: c.Name, DataType: c.DataType, IsNullable: c.IsNullable}
			}
			a.db.ApplyTableColumns(table, cols)
		}
		return a, nil

	case action.TableColumnsLoaded:
		cols := make([]driver.Column, len(msg.Columns))
		for i, c := range msg.Columns {
			cols[i] = driver.Column{Name: c.Name, DataType: c.DataType, IsNullable: c.IsNullable}
		}
		a.db.ApplyTableColumns(msg.Table, cols)
		a.showTableInfo = true
		return a, nil

	case action.LoadSelectedTable:
		q, ok := a.db.LoadSelectedTableQuery()
		if !ok {
			return a, nil
		}
		a.db.Editor.SetText(q)
		a.focus = action.FocusQuery
		return a, a.startQueryCmd()

	case queryOutcomeMsg:
		return a, a.completeQueryCmd(msg.outcome)

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}
	return a, nil
}

// startQueryCmd runs auto-format (if enabled, ignoring its error per
// §4.3), snapshots the editor's query text, transitions the lifecycle to
// Running, and dispatches the query to the driver.
func (a *App) startQueryCmd() tea.Cmd {
	if a.db.Editor.IsAutoFormatEnabled() {
		_ = a.db.Editor.FormatAll()
	}
	text := a.db.QueryText()
	if text == "" {
		return nil
	}
	a.db.StartQuery(text, time.Now())
	report.Breadcrumbs.RecordQuery(text, true)
	return executeQueryCmd(a.db, text)
}

func (a *App) completeQueryCmd(outcome driver.QueryOutcome) tea.Cmd {
	if outcome.Err != nil {
		a.db.FailQuery(outcome.Err)
		report.Breadcrumbs.RecordQuery(a.db.Lifecycle.Text, false)
		err := outcome.Err
		return func() tea.Msg { return action.Error{Err: err} }
	}
	if err := a.db.CompleteQuery(outcome.Result, outcome.ExecutionTimeMS, time.Now()); err != nil {
		a.errorMsg = err.Error()
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if a.errorMsg != "" {
		if key == "esc" {
			a.errorMsg = ""
		}
		return nil
	}
	if ov := a.ActiveOverlay(); ov != OverlayNone && ov != OverlayPreview {
		if key == "esc" {
			a.showHelp, a.showTableInfo, a.showRowDetails, a.showAutocomplete = false, false, false, false
		}
		return nil
	}

	if a.filterActive {
		return a.handleFilterKey(msg)
	}

	// Insert mode suspends every global shortcut except Esc (§4.7).
	textInput := a.focus == action.FocusQuery && a.db.Editor.Mode().Kind == editor.Insert
	if textInput {
		return a.routeToEditor(msg)
	}

	if kind, ok := a.keymap.Resolve(a.focus, key, textInput); ok {
		return a.dispatch(kind)
	}

	switch a.focus {
	case action.FocusQuery:
		return a.routeToEditor(msg)
	case action.FocusResults:
		return nil // unmapped key in Results, no-op
	case action.FocusHome:
		return nil
	}
	return nil
}

// handleFilterKey feeds typed characters into the Results navigator's
// inline fuzzy filter (§4.4 "/"), re-filtering on every keystroke. Esc
// cancels back to the unfiltered view; Enter keeps the current filter and
// returns keyboard control to the normal Results bindings.
func (a *App) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.db.Nav.SetFilter("")
		a.filterActive = false
	case tea.KeyEnter:
		a.filterActive = false
	case tea.KeyBackspace:
		if cur := []rune(a.db.Nav.Filter()); len(cur) > 0 {
			a.db.Nav.SetFilter(string(cur[:len(cur)-1]))
		}
	case tea.KeySpace:
		a.db.Nav.SetFilter(a.db.Nav.Filter() + " ")
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			a.db.Nav.SetFilter(a.db.Nav.Filter() + string(msg.Runes[0]))
		}
	}
	return nil
}

func (a *App) routeToEditor(msg tea.KeyMsg) tea.Cmd {
	k, ok := teaKeyToEditorKey(msg)
	if !ok {
		return nil
	}
	result := a.db.Editor.HandleKey(k)
	if result.Quit {
		return func() tea.Msg { return action.Quit{} }
	}
	return nil
}

// dispatch executes a resolved action.Kind, mirroring the follow-up-action
// pattern §9 describes: most Kinds mutate state directly and return nil;
// the ones that trigger I/O return a tea.Cmd.
func (a *App) dispatch(kind action.Kind) tea.Cmd {
	switch kind {
	case action.KindQuit:
		return func() tea.Msg { return action.Quit{} }
	case action.KindHelp:
		a.showHelp = !a.showHelp
		return nil
	case action.KindFocusHome:
		a.focus = action.FocusHome
		return nil
	case action.KindFocusQuery:
		a.focus = action.FocusQuery
		return nil
	case action.KindFocusResults:
		a.focus = action.FocusResults
		return nil
	case action.KindSwitchTab:
		a.onHistoryTab = !a.onHistoryTab
		return nil
	case action.KindExecuteQuery:
		return a.startQueryCmd()
	case action.KindLoadSelected:
		t, ok := a.db.SelectedTable()
		if !ok {
			return nil
		}
		return loadTableColumnsCmd(a.db, t.Name, t.Schema)
	case action.KindViewColumns, action.KindViewSchema:
		t, ok := a.db.SelectedTable()
		if !ok {
			return nil
		}
		return loadTableColumnsCmd(a.db, t.Name, t.Schema)
	case action.KindExportCSV:
		if a.db.Nav.RowCount() == 0 {
			a.errorMsg = "No results to export"
			return nil
		}
		if _, err := a.db.Nav.ExportCSV("."); err != nil {
			a.errorMsg = err.Error()
		}
		return nil
	case action.KindToggleExplain:
		text := a.db.ToggleExplainView()
		if text == "" {
			return nil
		}
		a.db.StartQuery(text, time.Now())
		return executeQueryCmd(a.db, text)
	case action.KindToggleAnalyze:
		text := a.db.ToggleExplainAnalyze()
		if text == "" {
			return nil
		}
		a.db.StartQuery(text, time.Now())
		return executeQueryCmd(a.db, text)
	case action.KindCopyExplain:
		out := results.CopyExplain(a.db.Nav.Set.Headers, a.db.Nav.Set.Rows)
		return copyToClipboardCmd(out)
	case action.KindRowDetails:
		a.showRowDetails = !a.showRowDetails
		return nil
	case action.KindTableMoveUp:
		a.db.MoveTableSelection(-1)
		return nil
	case action.KindTableMoveDown:
		a.db.MoveTableSelection(1)
		return nil
	case action.KindRowMoveUp:
		if a.db.Nav.Mode == results.Preview {
			a.db.Nav.MoveField(-1)
		} else {
			a.db.Nav.MoveRow(-1)
		}
		return nil
	case action.KindRowMoveDown:
		if a.db.Nav.Mode == results.Preview {
			a.db.Nav.MoveField(1)
		} else {
			a.db.Nav.MoveRow(1)
		}
		return nil
	case action.KindScrollLeft:
		a.db.Nav.PageColumns(-1)
		return nil
	case action.KindScrollRight:
		a.db.Nav.PageColumns(1)
		return nil
	case action.KindEnterCell:
		if a.db.Nav.RowCount() == 0 {
			return nil
		}
		a.db.Nav.EnterCell()
		return nil
	case action.KindOpenPreview:
		if a.db.Nav.RowCount() == 0 {
			return nil
		}
		a.db.Nav.OpenPreview()
		return nil
	case action.KindBack:
		a.db.Nav.Back()
		return nil
	case action.KindJumpTop:
		if a.focus == action.FocusHome {
			a.db.MoveTableSelection(-len(a.db.Tables))
		} else {
			a.db.Nav.MoveRow(-a.db.Nav.RowCount())
		}
		return nil
	case action.KindJumpBottom:
		if a.focus == action.FocusHome {
			a.db.MoveTableSelection(len(a.db.Tables))
		} else {
			a.db.Nav.MoveRow(a.db.Nav.RowCount())
		}
		return nil
	case action.KindPageUp:
		a.db.Nav.MoveRow(-results.VisibleColumns)
		return nil
	case action.KindPageDown:
		a.db.Nav.MoveRow(results.VisibleColumns)
		return nil
	case action.KindCopyCell:
		return copyToClipboardCmd(a.db.Nav.CopyCell())
	case action.KindCopyRow:
		if a.db.Nav.Mode != results.Table {
			return copyToClipboardCmd(a.db.Nav.CopyCell())
		}
		return copyToClipboardCmd(a.db.Nav.CopyRow())
	case action.KindTriggerComplete:
		a.triggerAutocomplete()
		return nil
	case action.KindStartFilter:
		a.filterActive = true
		return nil
	}
	return nil
}

// triggerAutocomplete infers the SQL context from the text before the
// cursor and populates the autocomplete overlay (§4.6).
func (a *App) triggerAutocomplete() {
	before := a.db.Editor.GetTextUpToCursor()
	ctx := autocomplete.InferContext(before)
	word := autocomplete.CurrentWord(before)
	table := autocomplete.InferTable(before)
	suggestions := a.db.Autocomplete.GetSuggestions(ctx, word, table)

	a.autocompleteItems = a.autocompleteItems[:0]
	for _, s := range suggestions {
		a.autocompleteItems = append(a.autocompleteItems, s.Text)
	}
	a.showAutocomplete = len(a.autocompleteItems) > 0
}

func copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.Write(stdoutWriter{}, text); err != nil {
			return action.Error{Err: err}
		}
		return nil
	}
}

// HandleKey and RegisterConfig make App itself satisfy ui.Component: the
// Db aggregate root is not split into separately-focused sub-models (§9
// permits this — "may be split into submodules ... without changing the
// external contract"), so the root tea.Model is also the one Component
// the router ever has to consult.
func (a *App) HandleKey(msg tea.KeyMsg) tea.Cmd { return a.handleKey(msg) }

func (a *App) RegisterConfig(cfg *config.Config) { a.cfg = cfg }

var _ Component = (*App)(nil)
