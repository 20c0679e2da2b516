package history

import (
	"path/filepath"
	"testing"
	"time"
)

func TestAddDedupesAgainstLastTen(t *testing.T) {
	h := &History{path: filepath.Join(t.TempDir(), "query_history.json")}
	for i := 0; i < 10; i++ {
		if err := h.Add(Entry{Query: "select 1", Timestamp: time.Now()}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if len(h.Entries) != 1 {
		t.Fatalf("expected dedup to collapse to 1 entry, got %d", len(h.Entries))
	}
}

func TestAddCapsAtMaxEntries(t *testing.T) {
	h := &History{path: filepath.Join(t.TempDir(), "query_history.json")}
	for i := 0; i < maxEntries+20; i++ {
		q := "select " + string(rune('a'+i%20))
		if err := h.Add(Entry{Query: q, Timestamp: time.Now()}); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if len(h.Entries) > maxEntries {
		t.Fatalf("expected at most %d entries, got %d", maxEntries, len(h.Entries))
	}
}

func TestDeleteByDisplayIndex(t *testing.T) {
	h := &History{path: filepath.Join(t.TempDir(), "query_history.json")}
	h.Entries = []Entry{{Query: "a"}, {Query: "b"}, {Query: "c"}}
	if err := h.Delete(0); err != nil { // most recent is "c"
		t.Fatalf("Delete: %v", err)
	}
	if len(h.Entries) != 2 || h.Entries[len(h.Entries)-1].Query != "b" {
		t.Fatalf("unexpected entries after delete: %+v", h.Entries)
	}
}

func TestLoadUsesQueryHistoryFilename(t *testing.T) {
	dir := t.TempDir()
	h, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "query_history.json"); h.path != want {
		t.Fatalf("path = %q, want %q", h.path, want)
	}
}

func TestReversedIsNewestFirst(t *testing.T) {
	h := &History{}
	h.Entries = []Entry{{Query: "a"}, {Query: "b"}}
	rev := h.Reversed()
	if rev[0].Query != "b" || rev[1].Query != "a" {
		t.Fatalf("unexpected order: %+v", rev)
	}
}
