package config

import (
	"path/filepath"
	"testing"
)

func TestDataDirRespectsXDGDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdgdata")
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	if want := filepath.Join("/tmp/xdgdata", "query-crafter"); dir != want {
		t.Fatalf("DataDir() = %q, want %q", dir, want)
	}
}

func TestDataDirDistinctFromConfigDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdgdata")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgconfig")

	data, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir: %v", err)
	}
	cfg, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if data == cfg {
		t.Fatalf("DataDir and Dir must not resolve to the same path, got %q for both", data)
	}
}
