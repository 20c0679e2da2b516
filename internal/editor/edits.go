package editor

// deleteToLineEnd implements D/C: delete from the cursor to the end of the
// current line, stashing the deleted text in the register.
func (e *Editor) deleteToLineEnd() {
	line := e.lineAt(e.cursor.Row)
	col := clamp(e.cursor.Col, 0, len(line))
	e.register = string(line[col:])
	e.lines[e.cursor.Row] = line[:col]
}

// deleteCharForward implements 'x'.
func (e *Editor) deleteCharForward() {
	line := e.lineAt(e.cursor.Row)
	col := e.cursor.Col
	if col >= len(line) {
		return
	}
	e.register = string(line[col])
	e.lines[e.cursor.Row] = append(line[:col], line[col+1:]...)
}

// deleteSelection removes the selected range, stashing it in the register,
// and leaves the cursor at the start of the deletion.
func (e *Editor) deleteSelection() {
	lo, hi, ok := e.selectionRange()
	if !ok {
		return
	}
	e.register = e.textBetween(lo, hi)
	e.replaceRange(lo, hi, "")
	e.cursor = lo
	e.hasSel = false
}

// yankSelection copies the selection into the register without mutating
// the buffer.
func (e *Editor) yankSelection() {
	lo, hi, ok := e.selectionRange()
	if !ok {
		return
	}
	e.register = e.textBetween(lo, hi)
	e.cursor = lo
	e.hasSel = false
}

// paste implements 'p': insert the register after the cursor.
func (e *Editor) paste() {
	if e.register == "" {
		return
	}
	e.moveRight()
	e.InsertTextAtCursor(e.register)
}
