package editor

// HandleKey feeds one key press through the mode transition table and
// returns whether anything changed and whether the key meant "quit" (vim's
// 'q' in Normal mode, mapped by the caller to action.Quit).
func (e *Editor) HandleKey(k Key) Result {
	before := e.GetText()
	quit := false

	switch e.mode.Kind {
	case Insert:
		e.handleInsert(k)
	case OperatorPending:
		quit = e.handleOperatorSecondKey(k)
	default: // Normal, Visual
		quit = e.handleCommand(k)
	}

	e.clampCursor()
	return Result{Quit: quit, Changed: e.GetText() != before}
}

func (e *Editor) handleInsert(k Key) {
	switch k.Type {
	case KeyEsc:
		e.mode = Mode{Kind: Normal}
		e.moveLeft()
	case KeyEnter:
		e.splitLine()
	case KeyBackspace:
		e.backspace()
	case KeyTab:
		e.InsertTextAtCursor("  ")
	case KeyRune:
		if k.Ctrl && k.Rune == 'c' {
			e.mode = Mode{Kind: Normal}
			return
		}
		e.InsertTextAtCursor(string(k.Rune))
	}
}

func (e *Editor) backspace() {
	if e.cursor.Col > 0 {
		line := e.lineAt(e.cursor.Row)
		e.cursor.Col--
		e.lines[e.cursor.Row] = append(line[:e.cursor.Col], line[e.cursor.Col+1:]...)
		return
	}
	if e.cursor.Row == 0 {
		return
	}
	prevLen := len(e.lineAt(e.cursor.Row - 1))
	e.lines[e.cursor.Row-1] = append(e.lines[e.cursor.Row-1], e.lineAt(e.cursor.Row)...)
	e.lines = append(e.lines[:e.cursor.Row], e.lines[e.cursor.Row+1:]...)
	e.cursor.Row--
	e.cursor.Col = prevLen
}

// applyMotion moves the cursor according to one of the shared hjkl/w/b/^/$
// motions, reporting whether k was a recognized motion key.
func (e *Editor) applyMotion(k Key) bool {
	if k.Type != KeyRune {
		return false
	}
	switch k.Rune {
	case 'h':
		e.moveLeft()
	case 'l':
		e.moveRight()
	case 'j':
		e.moveDown()
	case 'k':
		e.moveUp()
	case 'w':
		e.moveWordForward()
	case 'b':
		e.moveWordBack()
	case '^':
		e.moveLineHead()
	case '$':
		e.moveLineEnd()
	default:
		return false
	}
	return true
}

func (e *Editor) handleScroll(k Key) bool {
	if !k.Ctrl || k.Type != KeyRune {
		return false
	}
	switch k.Rune {
	case 'e':
		e.scroll(1)
	case 'y':
		e.scroll(-1)
	case 'd':
		e.scroll(10)
	case 'u':
		e.scroll(-10)
	case 'f':
		e.scroll(20)
	case 'b':
		e.scroll(-20)
	default:
		return false
	}
	return true
}

// handleCommand handles Normal and Visual mode keys (everything but Insert
// and a pending operator's second key). Returns true on 'q' (quit).
func (e *Editor) handleCommand(k Key) bool {
	if e.handleScroll(k) {
		return false
	}
	if e.applyMotion(k) {
		return false
	}
	if k.Type == KeyEsc {
		if e.mode.Kind == Visual {
			e.hasSel = false
			e.mode = Mode{Kind: Normal}
		}
		return false
	}
	if k.Type != KeyRune {
		return false
	}

	visual := e.mode.Kind == Visual

	switch k.Rune {
	case 'q':
		return !visual
	case 'G':
		e.moveBufferBottom()
	case 'g':
		if !visual {
			e.anchor = e.cursor
			e.mode = Mode{Kind: OperatorPending, Pending: 'g'}
		}
	case 'v':
		if visual {
			e.hasSel = false
			e.mode = Mode{Kind: Normal}
		} else {
			e.anchor = e.cursor
			e.hasSel = true
			e.visLine = false
			e.mode = Mode{Kind: Visual}
		}
	case 'V':
		if visual {
			e.hasSel = false
			e.mode = Mode{Kind: Normal}
		} else {
			e.anchor = e.cursor
			e.hasSel = true
			e.visLine = true
			e.mode = Mode{Kind: Visual}
		}
	case 'y':
		if visual {
			e.yankSelection()
			e.mode = Mode{Kind: Normal}
		} else {
			e.anchor = e.cursor
			e.mode = Mode{Kind: OperatorPending, Pending: 'y'}
		}
	case 'd':
		if visual {
			e.deleteSelection()
			e.mode = Mode{Kind: Normal}
		} else {
			e.anchor = e.cursor
			e.mode = Mode{Kind: OperatorPending, Pending: 'd'}
		}
	case 'c':
		if visual {
			e.deleteSelection()
			e.mode = Mode{Kind: Insert}
		} else {
			e.anchor = e.cursor
			e.mode = Mode{Kind: OperatorPending, Pending: 'c'}
		}
	case '=':
		if visual {
			e.hasSel = true
			_ = e.FormatQuery(true)
			e.mode = Mode{Kind: Normal}
		} else {
			e.anchor = e.cursor
			e.mode = Mode{Kind: OperatorPending, Pending: '='}
		}
	case 'D':
		if !visual {
			e.deleteToLineEnd()
		}
	case 'C':
		if !visual {
			e.deleteToLineEnd()
			e.mode = Mode{Kind: Insert}
		}
	case 'p':
		if !visual {
			e.paste()
		}
	case 'x':
		if !visual {
			e.deleteCharForward()
		}
	case 'i':
		if !visual {
			e.hasSel = false
			e.mode = Mode{Kind: Insert}
		}
	case 'a':
		if !visual {
			e.hasSel = false
			e.moveRight()
			e.mode = Mode{Kind: Insert}
		}
	case 'A':
		if !visual {
			e.hasSel = false
			e.moveLineEnd()
			e.mode = Mode{Kind: Insert}
		}
	case 'I':
		if !visual {
			e.hasSel = false
			e.moveLineHead()
			e.mode = Mode{Kind: Insert}
		}
	case 'o':
		if !visual {
			e.moveLineEnd()
			e.splitLine()
			e.mode = Mode{Kind: Insert}
		}
	case 'O':
		if !visual {
			e.moveLineHead()
			e.splitLine()
			e.moveUp()
			e.mode = Mode{Kind: Insert}
		}
	case 'u':
		// undo is out of scope: no durable op stack is part of this
		// editor's contract.
	}
	return false
}

// handleOperatorSecondKey resolves the pending operator (g/y/d/c/=) against
// its second key, either completing a doubled command (yy/dd/cc/gg/gc) or
// applying the operator over a motion (e.g. d$, yw).
func (e *Editor) handleOperatorSecondKey(k Key) bool {
	pending := e.mode.Pending

	if pending == 'g' {
		if k.Type == KeyRune && k.Rune == 'g' {
			e.moveBufferTop()
		} else if k.Type == KeyRune && k.Rune == 'c' {
			e.toggleLineComments()
		}
		e.mode = Mode{Kind: Normal}
		return false
	}

	if pending == '=' {
		switch {
		case k.Type == KeyRune && k.Rune == '=':
			_ = e.FormatAll()
		case k.Type == KeyRune && k.Rune == 'G':
			e.hasSel = true
			e.visLine = false
			e.anchor.Col = 0
			e.cursor = Pos{Row: len(e.lines) - 1, Col: len(e.lines[len(e.lines)-1])}
			// FormatQuery reads the selection only in Visual mode.
			e.mode = Mode{Kind: Visual}
			_ = e.FormatQuery(true)
		case k.Type == KeyRune && k.Rune == 'a':
			e.ToggleAutoFormat()
		}
		e.mode = Mode{Kind: Normal}
		return false
	}

	// pending is one of y, d, c: doubled letter selects the whole
	// current line, anything else is a motion defining the range.
	if k.Type == KeyRune && rune(pending) == k.Rune {
		e.hasSel = true
		e.visLine = true
	} else if e.applyMotion(k) {
		e.hasSel = true
		e.visLine = false
	} else {
		e.mode = Mode{Kind: Normal}
		return false
	}

	switch pending {
	case 'y':
		e.yankSelection()
		e.mode = Mode{Kind: Normal}
	case 'd':
		e.deleteSelection()
		e.mode = Mode{Kind: Normal}
	case 'c':
		e.deleteSelection()
		e.mode = Mode{Kind: Insert}
	}
	return false
}
