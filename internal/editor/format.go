package editor

import "github.com/ehfeng/querycrafter/internal/sqlfmt"

// FormatAll rewrites the whole buffer via sqlfmt. On error the buffer is
// left untouched (§4.3).
func (e *Editor) FormatAll() error {
	out, err := sqlfmt.Format(e.GetText())
	if err != nil {
		return err
	}
	e.SetText(out)
	return nil
}

// FormatQuery formats either the current selection (selectionOnly) or the
// whole buffer, matching the "Operator('=') + G" and "Operator('=') + '='"
// transitions.
func (e *Editor) FormatQuery(selectionOnly bool) error {
	if !selectionOnly {
		return e.FormatAll()
	}
	sel, ok := e.GetSelectedText()
	if !ok {
		return e.FormatAll()
	}
	out, err := sqlfmt.Format(sel)
	if err != nil {
		return err
	}
	lo, hi, _ := e.selectionRange()
	e.replaceRange(lo, hi, out)
	e.hasSel = false
	e.mode = Mode{Kind: Normal}
	return nil
}

// replaceRange substitutes the text between lo and hi (inclusive start,
// exclusive end) with replacement. The buffer is rebuilt through SetText,
// so the cursor ends up at (0,0) and callers reposition it themselves.
func (e *Editor) replaceRange(lo, hi Pos, replacement string) {
	before := e.textBetween(Pos{Row: 0, Col: 0}, lo)
	after := e.textBetween(hi, Pos{Row: len(e.lines) - 1, Col: len(e.lines[len(e.lines)-1])})
	e.SetText(before + replacement + after)
}
