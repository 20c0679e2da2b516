package results

import "github.com/ehfeng/querycrafter/internal/driver"

// SelectionMode is one of the three selection modes §4.4 names (Row mode
// from the original design was folded into Table mode, see DESIGN.md).
type SelectionMode int

const (
	Table SelectionMode = iota
	Cell
	Preview
)

// VisibleColumns is how many columns the viewport shows at once.
const VisibleColumns = 3

// Navigator holds a ResultSet and the cursor/selection state over it.
type Navigator struct {
	Set driver.ResultSet

	Mode SelectionMode

	row        int // selected row, index into filtered view
	col        int // selected column (Cell mode) or field (Preview mode)
	colPage    int // leftmost visible column, multiple of VisibleColumns

	filter     string
	filtered   []int // indices into Set.Rows, in filtered order
	matchScore map[int]int

	register string // last copied value, for tests/inspection
}

// NewNavigator wraps a ResultSet with an unfiltered view.
func NewNavigator(set driver.ResultSet) *Navigator {
	n := &Navigator{Set: set}
	n.resetFilter()
	return n
}

func (n *Navigator) resetFilter() {
	n.filtered = make([]int, len(n.Set.Rows))
	for i := range n.Set.Rows {
		n.filtered[i] = i
	}
	n.matchScore = nil
	n.row = 0
}

// RowCount returns how many rows are visible under the current filter.
func (n *Navigator) RowCount() int { return len(n.filtered) }

// SelectedRow returns the underlying row index currently selected, or -1
// if there are no rows.
func (n *Navigator) SelectedRow() int {
	if n.row < 0 || n.row >= len(n.filtered) {
		return -1
	}
	return n.filtered[n.row]
}

// SelectedRowValues returns the cell values of the selected row.
func (n *Navigator) SelectedRowValues() []string {
	idx := n.SelectedRow()
	if idx < 0 {
		return nil
	}
	return n.Set.Rows[idx]
}

// SelectedDisplayRow returns the cursor's position within the filtered
// view (as opposed to SelectedRow's underlying-Set index), for renderers
// that need to highlight the current display row.
func (n *Navigator) SelectedDisplayRow() int { return n.row }

// RowValuesAt returns the cell values for display row i (an index into
// the filtered view), for renderers that iterate the whole visible table.
func (n *Navigator) RowValuesAt(i int) []string {
	if i < 0 || i >= len(n.filtered) {
		return nil
	}
	return n.Set.Rows[n.filtered[i]]
}

func (n *Navigator) clampRow() {
	if len(n.filtered) == 0 {
		n.row = 0
		return
	}
	if n.row < 0 {
		n.row = len(n.filtered) - 1 // wraps, per §4.4 Table mode
	}
	if n.row >= len(n.filtered) {
		n.row = 0
	}
}

func (n *Navigator) clampCol() {
	cols := len(n.Set.Headers)
	if cols == 0 {
		n.col = 0
		return
	}
	if n.col < 0 {
		n.col = 0
	}
	if n.col >= cols {
		n.col = cols - 1
	}
}

// MoveRow moves the row selection by delta, wrapping in Table mode and
// clamping (no wrap) in Cell/Preview modes.
func (n *Navigator) MoveRow(delta int) {
	n.row += delta
	if n.Mode == Table {
		n.clampRow()
		return
	}
	if n.row < 0 {
		n.row = 0
	}
	if n.row >= len(n.filtered) {
		n.row = len(n.filtered) - 1
	}
}

// PageColumns moves the visible column window left/right by one page
// (Table mode 'h'/'l').
func (n *Navigator) PageColumns(delta int) {
	n.colPage += delta * VisibleColumns
	maxPage := (len(n.Set.Headers) - 1) / VisibleColumns * VisibleColumns
	if n.colPage < 0 {
		n.colPage = 0
	}
	if n.colPage > maxPage {
		n.colPage = maxPage
	}
}

// VisibleColumnRange returns [lo, hi) of header indices currently shown.
func (n *Navigator) VisibleColumnRange() (int, int) {
	lo := n.colPage
	hi := lo + VisibleColumns
	if hi > len(n.Set.Headers) {
		hi = len(n.Set.Headers)
	}
	return lo, hi
}

// MoveCell moves the cell cursor by delta columns (Cell mode 'h'/'l'),
// auto-scrolling the column page when the cursor leaves the viewport.
func (n *Navigator) MoveCell(delta int) {
	n.col += delta
	n.clampCol()
	lo, hi := n.VisibleColumnRange()
	if n.col < lo {
		n.colPage = (n.col / VisibleColumns) * VisibleColumns
	} else if n.col >= hi {
		n.colPage = (n.col / VisibleColumns) * VisibleColumns
	}
}

// MoveField moves the selected field in Preview mode (same column index
// space as Cell mode, full row rather than a 3-wide page).
func (n *Navigator) MoveField(delta int) {
	n.col += delta
	n.clampCol()
}

// EnterCell switches Table -> Cell, keeping the current row.
func (n *Navigator) EnterCell() {
	n.Mode = Cell
	n.clampCol()
}

// OpenPreview switches to Preview mode from Table or Cell.
func (n *Navigator) OpenPreview() { n.Mode = Preview }

// Back leaves Cell/Preview back to Table.
func (n *Navigator) Back() { n.Mode = Table }

// SelectedCell returns the value at the current (row, col).
func (n *Navigator) SelectedCell() string {
	row := n.SelectedRowValues()
	if row == nil || n.col < 0 || n.col >= len(row) {
		return ""
	}
	return row[n.col]
}

// CopyRow returns the TSV-joined selected row ('y' in Table mode).
func (n *Navigator) CopyRow() string {
	row := n.SelectedRowValues()
	out := ""
	for i, v := range row {
		if i > 0 {
			out += "\t"
		}
		out += v
	}
	n.register = out
	return out
}

// CopyCell returns and stashes the selected cell's value.
func (n *Navigator) CopyCell() string {
	v := n.SelectedCell()
	n.register = v
	return v
}
