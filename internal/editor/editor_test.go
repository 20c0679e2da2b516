package editor

import "testing"

func rk(r rune) Key { return Key{Type: KeyRune, Rune: r} }

func feed(e *Editor, keys string) {
	for _, r := range keys {
		e.HandleKey(rk(r))
	}
}

func TestInsertModeRoundTrip(t *testing.T) {
	e := New()
	feed(e, "i")
	if e.Mode().Kind != Insert {
		t.Fatalf("expected Insert mode after 'i'")
	}
	e.InsertTextAtCursor("select 1")
	e.HandleKey(Key{Type: KeyEsc})
	if e.Mode().Kind != Normal {
		t.Fatalf("expected Normal mode after Esc")
	}
	if e.GetText() != "select 1" {
		t.Fatalf("GetText() = %q", e.GetText())
	}
}

func TestDeleteLineWithDD(t *testing.T) {
	e := New()
	e.SetText("one\ntwo\nthree")
	feed(e, "dd")
	if e.GetText() != "two\nthree" {
		t.Fatalf("after dd: %q", e.GetText())
	}
}

func TestYankAndPasteLine(t *testing.T) {
	e := New()
	e.SetText("one\ntwo")
	feed(e, "yy")
	feed(e, "j")
	feed(e, "p")
	if e.GetText() == "one\ntwo" {
		t.Fatalf("paste had no effect")
	}
}

func TestVisualSelectionBounds(t *testing.T) {
	e := New()
	e.SetText("select * from t")
	feed(e, "v")
	for i := 0; i < 6; i++ {
		e.HandleKey(rk('l'))
	}
	sel, ok := e.GetSelectedText()
	if !ok {
		t.Fatalf("expected a selection")
	}
	if sel == "" {
		t.Fatalf("expected non-empty selection, got %q", sel)
	}
}

func TestVisualEscCancelsSelection(t *testing.T) {
	e := New()
	e.SetText("abc")
	feed(e, "v")
	e.HandleKey(rk('l'))
	e.HandleKey(Key{Type: KeyEsc})
	if e.Mode().Kind != Normal {
		t.Fatalf("expected Normal after Esc from Visual")
	}
	if _, ok := e.GetSelectedText(); ok {
		t.Fatalf("selection should be cleared")
	}
}

func TestCommentToggleIsIdempotentOverTwoApplications(t *testing.T) {
	e := New()
	e.SetText("select 1")
	feed(e, "gc")
	if e.GetText() != "-- select 1" {
		t.Fatalf("after gc: %q", e.GetText())
	}
	feed(e, "gc")
	if e.GetText() != "select 1" {
		t.Fatalf("after second gc: %q", e.GetText())
	}
}

func TestFormatAllViaOperatorEqualsEquals(t *testing.T) {
	e := New()
	e.SetText("select * from t where id=1")
	feed(e, "==")
	if e.Mode().Kind != Normal {
		t.Fatalf("expected Normal mode after format")
	}
	if e.GetText() == "select * from t where id=1" {
		t.Fatalf("expected formatting to change the text")
	}
}

func TestToggleAutoFormatViaOperatorEqualsA(t *testing.T) {
	e := New()
	if e.IsAutoFormatEnabled() {
		t.Fatalf("auto-format should start disabled")
	}
	feed(e, "=a")
	if !e.IsAutoFormatEnabled() {
		t.Fatalf("expected auto-format enabled after =a")
	}
}

func TestGGAndGMotions(t *testing.T) {
	e := New()
	e.SetText("a\nb\nc")
	feed(e, "G")
	if row, _ := e.GetCursorPosition(); row != 2 {
		t.Fatalf("G should move to last line, got row %d", row)
	}
	feed(e, "gg")
	if row, _ := e.GetCursorPosition(); row != 0 {
		t.Fatalf("gg should move to first line, got row %d", row)
	}
}

func TestWordMotions(t *testing.T) {
	e := New()
	e.SetText("select from")
	feed(e, "w")
	if _, col := e.GetCursorPosition(); col != 7 {
		t.Fatalf("w should land at start of second word, got col %d", col)
	}
	feed(e, "b")
	if _, col := e.GetCursorPosition(); col != 0 {
		t.Fatalf("b should land back at start, got col %d", col)
	}
}

func TestGetTextUpToCursor(t *testing.T) {
	e := New()
	e.SetText("select id from users")
	for i := 0; i < 9; i++ {
		e.HandleKey(rk('l'))
	}
	if got := e.GetTextUpToCursor(); got != "select id" {
		t.Fatalf("GetTextUpToCursor() = %q", got)
	}
}
