package driver

import "testing"

func TestStringifyNull(t *testing.T) {
	if got := Stringify(nil); got != "NULL" {
		t.Fatalf("Stringify(nil) = %q, want NULL", got)
	}
}

func TestStringifyBytes(t *testing.T) {
	got := Stringify([]byte{0xde, 0xad, 0xbe, 0xef})
	want := "\\xdeadbeef"
	if got != want {
		t.Fatalf("Stringify(bytes) = %q, want %q", got, want)
	}
}

func TestStringifyArray(t *testing.T) {
	got := Stringify([]any{"a", "b", 3})
	want := "a,b,3"
	if got != want {
		t.Fatalf("Stringify(array) = %q, want %q", got, want)
	}
}

func TestFilterTablesCaseInsensitive(t *testing.T) {
	tables := []Table{{Name: "Users"}, {Name: "posts"}, {Name: "comments"}}
	got := FilterTables(tables, "US")
	if len(got) != 1 || got[0].Name != "Users" {
		t.Fatalf("FilterTables = %+v, want only Users", got)
	}
}

func TestFilterTablesEmptySearch(t *testing.T) {
	tables := []Table{{Name: "b"}, {Name: "a"}}
	got := FilterTables(tables, "")
	if len(got) != 2 {
		t.Fatalf("FilterTables with empty search should keep all, got %d", len(got))
	}
}

func TestSortTablesByName(t *testing.T) {
	tables := []Table{{Name: "zeta"}, {Name: "alpha"}, {Name: "mid"}}
	SortTables(tables)
	if tables[0].Name != "alpha" || tables[1].Name != "mid" || tables[2].Name != "zeta" {
		t.Fatalf("SortTables did not sort: %+v", tables)
	}
}

func TestResultSetValid(t *testing.T) {
	rs := ResultSet{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3", "4"}}}
	if !rs.Valid() {
		t.Fatalf("expected valid result set")
	}
	rs.Rows = append(rs.Rows, []string{"only-one"})
	if rs.Valid() {
		t.Fatalf("expected invalid result set after arity mismatch")
	}
}
