package results

import "github.com/mattn/go-runewidth"

// CellWidth is the fixed display width each cell is padded/truncated to
// when rendering a table row, wide enough for typical column values while
// keeping rows aligned regardless of CJK or other double-width runes.
const CellWidth = 20

// PadCell truncates or pads s to CellWidth display columns, using
// go-runewidth so multi-byte/double-width runes don't throw off column
// alignment the way a naive len(s) or range over bytes would.
func PadCell(s string) string {
	w := runewidth.StringWidth(s)
	if w > CellWidth {
		t := runewidth.Truncate(s, CellWidth, "…")
		return t + padding(CellWidth-runewidth.StringWidth(t))
	}
	if w < CellWidth {
		return s + padding(CellWidth-w)
	}
	return s
}

func padding(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// PadRow applies PadCell to every value in row.
func PadRow(row []string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = PadCell(v)
	}
	return out
}
