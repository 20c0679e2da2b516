// Package action defines the tagged messages that flow through the
// bubbletea dispatch loop (§4.1, §9): every state mutation in the core is
// triggered by one of these arriving at a component's Update method, and a
// component reacts by returning a tea.Cmd that itself resolves to another
// message — the "follow-up action" the spec's Action queue describes.
package action

import "time"

// Tick fires at the low, fixed cadence (§4.1: "tick rate"). App uses it to
// clear its pending multi-key sequence buffer; the spinner advances on
// Render instead.
type Tick struct{ At time.Time }

// Render fires at the frame cadence; it is the only message with a
// side effect on the terminal surface (the bubbletea runtime repaints after
// every Update call, so Render exists purely so components can tell apart
// "a frame tick happened" from "something changed").
type Render struct{ At time.Time }

// Resize reports a terminal resize.
type Resize struct{ Width, Height int }

type Suspend struct{}
type Resume struct{}
type Quit struct{}

// Error is the catch-all user-visible, recoverable failure (§7 tier 1):
// query errors, unreachable database, missing table on column load. Nothing
// converts a panic while drawing into an Error. It never aborts the loop.
type Error struct{ Err error }

// Help toggles the help overlay.
type Help struct{}

// TableDescriptor mirrors driver.Table without importing internal/driver
// from this leaf package (keeps the action package dependency-free so every
// other package, including internal/driver's own callers, can depend on it).
type TableDescriptor struct {
	Schema string
	Name   string
}

// ColumnDescriptor mirrors driver.Column.
type ColumnDescriptor struct {
	Name       string
	DataType   string
	IsNullable bool
}

type TablesLoaded struct{ Tables []TableDescriptor }

type TableMoveUp struct{}
type TableMoveDown struct{}
type RowMoveUp struct{}
type RowMoveDown struct{}
type ScrollTableLeft struct{}
type ScrollTableRight struct{}

type LoadSelectedTable struct{}
type LoadTables struct{ Search string }
type LoadTable struct{ Table string }

type ViewTableColumns struct{}
type ViewTableSchema struct{}

type TableColumnsLoaded struct {
	Table   string
	Columns []ColumnDescriptor
}

// SchemaPrefetched carries columns for every table loaded concurrently in
// the background right after TablesLoaded, so autocomplete has full
// schema knowledge without the user having to open each table's info
// panel first. Distinct from TableColumnsLoaded so the UI layer doesn't
// mistake a background fetch for an explicit "view columns" request.
type SchemaPrefetched struct {
	Columns map[string][]ColumnDescriptor
}

type QueryResult struct {
	Headers []string
	Rows    [][]string
}

type QueryExecutionTime struct{ Millis int64 }

// Focus identifies which top-level component has keyboard focus (§3).
type Focus int

const (
	FocusHome Focus = iota
	FocusQuery
	FocusResults
)

func (f Focus) String() string {
	switch f {
	case FocusHome:
		return "Home"
	case FocusQuery:
		return "Query"
	case FocusResults:
		return "Results"
	default:
		return "Unknown"
	}
}

type FocusQueryMsg struct{}
type FocusResultsMsg struct{}
type FocusHomeMsg struct{}
type SelectComponent struct{ Component Focus }

type ExecuteQuery struct{}
type HandleQuery struct{ Text string }
type QueryStarted struct{}
type QueryCompleted struct{}

type RowDetails struct{}
type SwitchEditor struct{}
type ClearQuery struct{}

type TriggerAutocomplete struct{}
type UpdateAutocompleteDocument struct{ Text string }

type RequestAutocomplete struct {
	Text       string
	CursorLine int
	CursorCol  int
	Context    string
}

// AutocompleteItem mirrors autocomplete.Suggestion for the same
// dependency-direction reason as TableDescriptor above.
type AutocompleteItem struct {
	Text string
	Kind string
}

type AutocompleteResults struct{ Items []AutocompleteItem }

type SetTunnelMode struct{ Enabled bool }

type ExportResultsToCsv struct{}

type RowJumpToTop struct{}
type RowJumpToBottom struct{}
type TableJumpToTop struct{}
type TableJumpToBottom struct{}
type RowPageUp struct{}
type RowPageDown struct{}
type TablePageUp struct{}
type TablePageDown struct{}

type FormatQuery struct{}
type FormatSelection struct{}
type ToggleAutoFormat struct{}

type ExplainQuery struct{}
type ExplainAnalyzeQuery struct{}
type ToggleExplainView struct{}
type ToggleExplainAnalyze struct{}
type CopyExplainResults struct{}

// Kind names an action for the keybinding configuration surface (§6's
// two-level "focus -> sequence of keys -> Action" map). Keybindings are
// data (a map loaded from YAML), so the map's values have to be comparable,
// serializable names rather than the message types themselves — ui.Keymap
// resolves a Kind back to a constructed message.
type Kind string

const (
	KindQuit            Kind = "quit"
	KindHelp            Kind = "help"
	KindFocusHome       Kind = "focus_home"
	KindFocusQuery      Kind = "focus_query"
	KindFocusResults    Kind = "focus_results"
	KindSwitchTab       Kind = "switch_tab"
	KindExecuteQuery    Kind = "execute_query"
	KindLoadSelected    Kind = "load_selected_table"
	KindViewColumns     Kind = "view_table_columns"
	KindViewSchema      Kind = "view_table_schema"
	KindExportCSV       Kind = "export_csv"
	KindToggleExplain   Kind = "toggle_explain_view"
	KindToggleAnalyze   Kind = "toggle_explain_analyze"
	KindCopyExplain     Kind = "copy_explain_results"
	KindRowDetails      Kind = "row_details"
	KindTriggerComplete Kind = "trigger_autocomplete"

	KindTableMoveUp   Kind = "table_move_up"
	KindTableMoveDown Kind = "table_move_down"
	KindRowMoveUp     Kind = "row_move_up"
	KindRowMoveDown   Kind = "row_move_down"
	KindScrollLeft    Kind = "scroll_table_left"
	KindScrollRight   Kind = "scroll_table_right"
	KindEnterCell     Kind = "enter_cell"
	KindOpenPreview   Kind = "open_preview"
	KindBack          Kind = "back"
	KindJumpTop       Kind = "jump_top"
	KindJumpBottom    Kind = "jump_bottom"
	KindPageUp        Kind = "page_up"
	KindPageDown      Kind = "page_down"
	KindCopyCell      Kind = "copy_cell"
	KindCopyRow       Kind = "copy_row"
	KindStartFilter   Kind = "start_filter"
)
