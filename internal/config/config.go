// Package config resolves how querycrafter connects to a database and
// where it keeps its on-disk state, layering CLI flags over environment
// variables over a YAML settings file — the same three-tier precedence
// ted's config.go and settings.go implement separately, merged here into
// one surface because SPEC_FULL.md's configuration section unifies them.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ehfeng/querycrafter/internal/driver"

	"gopkg.in/yaml.v3"
)

// Config is the resolved set of options querycrafter runs with: LoadSettings
// reads settings.yaml, then the caller applies CLI flags and FromEnv fills
// whatever the flags left empty.
type Config struct {
	Database string `yaml:"-"`
	Host     string `yaml:"-"`
	Port     string `yaml:"-"`
	Username string `yaml:"-"`
	Password string `yaml:"-"`
	SSLMode  string `yaml:"-"`

	DriverOverride string `yaml:"-"` // "postgres" or "sqlite", empty means auto-detect

	VimMode               bool `yaml:"vim_mode"`
	AutoFormat            bool `yaml:"auto_format"`
	CrashReportingEnabled bool `yaml:"crash_reporting_enabled"`
	FirstRunComplete      bool `yaml:"first_run_complete"`

	TunnelEnabled bool   `yaml:"-"`
	TunnelProfile string `yaml:"-"`

	// EditorBackend is §6's enumerated editor.backend; only "vim" exists
	// today (see internal/editor.Backend and DESIGN.md).
	EditorBackend string `yaml:"editor_backend"`

	// AutocompleteBackend is one of "builtin", "lsp", "hybrid" (§6).
	AutocompleteBackend string `yaml:"autocomplete_backend"`

	LSPEnabled           bool     `yaml:"lsp_enabled"`
	LSPServerCommand     string   `yaml:"lsp_server_command"`
	LSPServerArgs        []string `yaml:"lsp_server_args"`
	LSPTriggerCharacters []string `yaml:"lsp_trigger_characters"`

	// Keybindings is the two-level focus -> key sequence -> action map §6
	// and §4.2 describe, loaded as data instead of ted's hardcoded switch.
	// nil means "use the built-in defaults" (internal/ui.DefaultKeymap).
	Keybindings map[string]map[string]string `yaml:"keybindings,omitempty"`
}

// Defaults returns the built-in configuration a first run starts from.
func Defaults() *Config {
	return &Config{
		AutoFormat:           true,
		EditorBackend:        "vim",
		AutocompleteBackend:  "builtin",
		LSPTriggerCharacters: []string{".", " "},
	}
}

// detectDriverType mirrors ted's Config.detectDatabaseType, trimmed to the
// two drivers SPEC_FULL.md keeps (PostgreSQL, SQLite — MySQL is dropped,
// see DESIGN.md).
func (c *Config) detectDriverType() driver.Type {
	switch c.DriverOverride {
	case "postgres":
		return driver.PostgreSQL
	case "sqlite":
		return driver.SQLite
	}
	if strings.HasSuffix(c.Database, ".sqlite") || strings.HasSuffix(c.Database, ".db") {
		return driver.SQLite
	}
	return driver.PostgreSQL
}

// buildConnectionString ports ted's Config.buildConnectionString, dropping
// the MySQL branch.
func (c *Config) buildConnectionString() (string, driver.Type, error) {
	dbType := c.detectDriverType()

	switch dbType {
	case driver.SQLite:
		if _, err := os.Stat(c.Database); os.IsNotExist(err) {
			return "", dbType, fmt.Errorf("sqlite file does not exist: %s", c.Database)
		}
		return c.Database, dbType, nil

	case driver.PostgreSQL:
		connStr := fmt.Sprintf("dbname=%s", c.Database)
		if c.Host != "" {
			connStr += fmt.Sprintf(" host=%s", c.Host)
		}
		if c.Port != "" {
			connStr += fmt.Sprintf(" port=%s", c.Port)
		}
		if c.Username != "" {
			connStr += fmt.Sprintf(" user=%s", c.Username)
		} else if currentUser, err := user.Current(); err == nil {
			connStr += fmt.Sprintf(" user=%s", currentUser.Username)
		}
		if c.Password != "" {
			connStr += fmt.Sprintf(" password=%s", c.Password)
		}
		sslmode := c.SSLMode
		if sslmode == "" {
			sslmode = "disable"
		}
		connStr += " sslmode=" + sslmode
		return connStr, dbType, nil

	default:
		return "", dbType, fmt.Errorf("unsupported database type")
	}
}

// Open connects using the resolved configuration, returning the concrete
// driver.Driver the rest of the application depends on.
func (c *Config) Open() (driver.Driver, error) {
	connStr, dbType, err := c.buildConnectionString()
	if err != nil {
		return nil, err
	}

	switch dbType {
	case driver.SQLite:
		return driver.OpenSQLite(connStr)
	case driver.PostgreSQL:
		return driver.OpenPostgres(connStr)
	default:
		return nil, fmt.Errorf("unsupported database type")
	}
}

// FromEnv layers the PG* environment variables spec §6 names over c,
// leaving flag-set fields (already non-empty) untouched.
func (c *Config) FromEnv() {
	if c.Host == "" {
		c.Host = os.Getenv("PGHOST")
	}
	if c.Port == "" {
		c.Port = os.Getenv("PGPORT")
	}
	if c.Username == "" {
		c.Username = os.Getenv("PGUSER")
	}
	if c.Database == "" {
		c.Database = os.Getenv("PGDATABASE")
	}
	if c.Password == "" {
		c.Password = os.Getenv("PGPASSWORD")
	}
	if c.SSLMode == "" {
		c.SSLMode = os.Getenv("PGSSLMODE")
	}
}

// Dir returns the XDG config directory, ted's getConfigDir ported to this
// project's name.
func Dir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "querycrafter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "querycrafter"), nil
}

// DataDir returns the platform user-data directory (XDG_DATA_HOME, or
// ~/.local/share, on Linux) under "query-crafter" — distinct from Dir's
// config directory. §6's history file path contract lives here, matching
// the original's ProjectDirs::from(...).data_dir().join("query_history.json").
func DataDir() (string, error) {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "query-crafter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "query-crafter"), nil
}

func settingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

// EnsureDir creates the XDG config directory.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// LoadSettings reads settings.yaml, returning defaults (first-run) if it
// doesn't exist yet — ted's LoadSettings, rebased on YAML.
func LoadSettings() (*Config, error) {
	if err := EnsureDir(); err != nil {
		return nil, err
	}
	path, err := settingsPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not stat settings file: %w", err)
		}
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read settings file: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse settings file: %w", err)
	}
	return cfg, nil
}

// SaveSettings persists the ambient (non-connection) fields of cfg.
func SaveSettings(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	path, err := settingsPath()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
