package autocomplete

import "testing"

func TestInferContextAfterSelect(t *testing.T) {
	if got := InferContext("select "); got != AfterSelect {
		t.Fatalf("got %v", got)
	}
}

func TestInferContextAfterFrom(t *testing.T) {
	if got := InferContext("select * from "); got != AfterFrom {
		t.Fatalf("got %v", got)
	}
}

func TestInferContextColumnNameAfterFromTable(t *testing.T) {
	if got := InferContext("select * from users where "); got != AfterWhere {
		t.Fatalf("got %v", got)
	}
	if got := InferContext("select * from users "); got != ColumnName {
		t.Fatalf("got %v", got)
	}
}

func TestInferContextNone(t *testing.T) {
	if got := InferContext(""); got != None {
		t.Fatalf("got %v", got)
	}
}

func TestCurrentWord(t *testing.T) {
	if got := CurrentWord("select * from use"); got != "use" {
		t.Fatalf("got %q", got)
	}
}

func TestGetSuggestionsTruncatesTo20(t *testing.T) {
	e := New(Builtin)
	tables := make([]string, 30)
	for i := range tables {
		tables[i] = "table_" + string(rune('a'+i%26))
	}
	e.UpdateTables(tables)
	got := e.GetSuggestions(AfterFrom, "", "")
	if len(got) != 20 {
		t.Fatalf("expected truncation to 20, got %d", len(got))
	}
}

func TestGetSuggestionsColumnsPreferKnownTable(t *testing.T) {
	e := New(Builtin)
	e.UpdateTableColumns("users", []string{"id", "email"})
	e.UpdateTableColumns("posts", []string{"id", "title"})
	got := e.GetSuggestions(ColumnName, "", "users")
	if len(got) != 2 {
		t.Fatalf("expected 2 columns for users, got %d", len(got))
	}
}

func TestInferTableFindsTableAfterFrom(t *testing.T) {
	if got := InferTable("select id, name from users "); got != "users" {
		t.Fatalf("got %q, want %q", got, "users")
	}
}

func TestInferTableEmptyWithoutFrom(t *testing.T) {
	if got := InferTable("select "); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestInferTableTrimsPunctuation(t *testing.T) {
	if got := InferTable("select * from users, "); got != "users" {
		t.Fatalf("got %q, want %q", got, "users")
	}
}

func TestSetTunnelModeForcesBuiltin(t *testing.T) {
	e := New(Lsp)
	e.SetTunnelMode(true)
	if e.Backend() != Builtin {
		t.Fatalf("expected Builtin after tunnel mode, got %v", e.Backend())
	}
}
