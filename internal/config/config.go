// Package config provides reading and writing of bookrab configuration.
// Supports both global (~/.bookrab/config.yaml) and local (.bookrab/config.yaml).
// Reading: uses local if it exists, otherwise global, otherwise the legacy
// TOML file at ~/.config/bookrab/config.toml.
// Writing: defaults to global, use --local for local.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jpl-au/bookrab/internal/repo"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Environment overrides.
const (
	EnvDir         = "BOOKRAB_DIR"
	EnvDatabaseURL = "BOOKRAB_DATABASE_URL"
)

// Scope represents the configuration scope.
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.bookrab/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is project config in .bookrab/config.yaml
	ScopeLocal
	// ScopeLegacy is the read-only TOML file ~/.config/bookrab/config.toml
	ScopeLegacy
)

func (s Scope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeLegacy:
		return "legacy"
	default:
		return "global"
	}
}

// History backend names accepted by history.backends.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// History selects and configures search history backends.
type History struct {
	Backends    *string `yaml:"backends,omitempty" toml:"backends,omitempty"`
	JSONPath    string  `yaml:"json_path,omitempty" toml:"json_path,omitempty"`
	SQLitePath  string  `yaml:"sqlite_path,omitempty" toml:"sqlite_path,omitempty"`
	DatabaseURL string  `yaml:"database_url,omitempty" toml:"database_url,omitempty"`
}

// Search holds search defaults.
type Search struct {
	Workers   *int  `yaml:"workers,omitempty" toml:"workers,omitempty"`
	SmartCase *bool `yaml:"smart_case,omitempty" toml:"smart_case,omitempty"`
}

// Limits holds size limit configuration options.
type Limits struct {
	MaxTitle      *int   `yaml:"max_title,omitempty" toml:"max_title,omitempty"`
	MaxLineLength *int   `yaml:"max_line_length,omitempty" toml:"max_line_length,omitempty"`
	MaxUpload     *int64 `yaml:"max_upload,omitempty" toml:"max_upload,omitempty"`
}

// Server holds REST server options.
type Server struct {
	Addr      string   `yaml:"addr,omitempty" toml:"addr,omitempty"`
	RateLimit *float64 `yaml:"rate_limit,omitempty" toml:"rate_limit,omitempty"`
	RateBurst *int     `yaml:"rate_burst,omitempty" toml:"rate_burst,omitempty"`
}

// Log configures the operational slog logger.
type Log struct {
	Level      string `yaml:"level,omitempty" toml:"level,omitempty"`
	Format     string `yaml:"format,omitempty" toml:"format,omitempty"`
	Dir        string `yaml:"dir,omitempty" toml:"dir,omitempty"`
	MaxSizeMB  *int   `yaml:"max_size_mb,omitempty" toml:"max_size_mb,omitempty"`
	MaxBackups *int   `yaml:"max_backups,omitempty" toml:"max_backups,omitempty"`
	MaxAgeDays *int   `yaml:"max_age_days,omitempty" toml:"max_age_days,omitempty"`
	Compress   *bool  `yaml:"compress,omitempty" toml:"compress,omitempty"`
}

// Default values applied when not configured.
const (
	DefaultBackends      = BackendJSON
	DefaultMaxTitle      = 255
	DefaultMaxLineLength = 10 * 1024 * 1024  // 10 MB
	DefaultMaxUpload     = 100 * 1024 * 1024 // 100 MB
	DefaultAddr          = ":8080"
	DefaultRateBurst     = 20
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// Validation bounds for configuration values.
const (
	MinMaxTitle      = 1
	MaxMaxTitle      = 4096
	MinMaxLineLength = 1
	MaxMaxLineLength = 1024 * 1024 * 1024 // 1 GB
	MinMaxUpload     = 1
	MaxMaxUpload     = 10 * 1024 * 1024 * 1024 // 10 GB
	MaxWorkers       = 256
)

// Config contains configuration for bookrab.
type Config struct {
	BookPath string  `yaml:"book_path,omitempty" toml:"book_path,omitempty"`
	History  History `yaml:"history,omitempty" toml:"history,omitempty"`
	Search   Search  `yaml:"search,omitempty" toml:"search,omitempty"`
	Limits   Limits  `yaml:"limits,omitempty" toml:"limits,omitempty"`
	Server   Server  `yaml:"server,omitempty" toml:"server,omitempty"`
	Log      Log     `yaml:"log,omitempty" toml:"log,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds.
// Returns nil if all values are valid or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.History.Backends != nil {
		if _, err := parseBackends(*c.History.Backends); err != nil {
			return err
		}
	}
	if v := c.Search.Workers; v != nil && (*v < 0 || *v > MaxWorkers) {
		return fmt.Errorf("%w: search.workers must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWorkers, *v)
	}
	if v := c.Limits.MaxTitle; v != nil && (*v < MinMaxTitle || *v > MaxMaxTitle) {
		return fmt.Errorf("%w: max_title must be between %d and %d, got %d",
			ErrInvalidValue, MinMaxTitle, MaxMaxTitle, *v)
	}
	if v := c.Limits.MaxLineLength; v != nil && (*v < MinMaxLineLength || *v > MaxMaxLineLength) {
		return fmt.Errorf("%w: max_line_length must be between %d and %d, got %d",
			ErrInvalidValue, MinMaxLineLength, MaxMaxLineLength, *v)
	}
	if v := c.Limits.MaxUpload; v != nil && (*v < MinMaxUpload || *v > MaxMaxUpload) {
		return fmt.Errorf("%w: max_upload must be between %d and %d, got %d",
			ErrInvalidValue, MinMaxUpload, int64(MaxMaxUpload), *v)
	}
	if v := c.Server.RateLimit; v != nil && *v < 0 {
		return fmt.Errorf("%w: server.rate_limit must not be negative", ErrInvalidValue)
	}
	if v := c.Server.RateBurst; v != nil && *v < 1 {
		return fmt.Errorf("%w: server.rate_burst must be positive", ErrInvalidValue)
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be text or json", ErrInvalidValue)
	}
	return nil
}

// BaseDir is the directory holding this config's data files. Local config
// resolves to its workspace directory, everything else to ~/.bookrab.
func (c *Config) BaseDir() string {
	if c.scope == ScopeLocal {
		if c.path != "" {
			return filepath.Dir(c.path)
		}
		return repo.Dir
	}
	return GlobalDir()
}

// Books returns the book root. BOOKRAB_DIR wins over book_path, which
// defaults to <base>/books.
func (c *Config) Books() string {
	if d := os.Getenv(EnvDir); d != "" {
		return d
	}
	if c.BookPath != "" {
		return c.resolve(c.BookPath)
	}
	return filepath.Join(c.BaseDir(), "books")
}

// Backends returns the enabled history backends in configured order.
func (c *Config) Backends() []string {
	raw := DefaultBackends
	if c.History.Backends != nil {
		raw = *c.History.Backends
	}
	b, err := parseBackends(raw)
	if err != nil {
		return []string{DefaultBackends}
	}
	return b
}

// JSONHistoryPath returns the JSON history file (defaults to <base>/history.json).
func (c *Config) JSONHistoryPath() string {
	if c.History.JSONPath != "" {
		return c.resolve(c.History.JSONPath)
	}
	return filepath.Join(c.BaseDir(), "history.json")
}

// SQLiteHistoryPath returns the SQLite history file (defaults to <base>/history.db).
func (c *Config) SQLiteHistoryPath() string {
	if c.History.SQLitePath != "" {
		return c.resolve(c.History.SQLitePath)
	}
	return filepath.Join(c.BaseDir(), "history.db")
}

// DatabaseURL returns the PostgreSQL URL. BOOKRAB_DATABASE_URL wins.
func (c *Config) DatabaseURL() string {
	if u := os.Getenv(EnvDatabaseURL); u != "" {
		return u
	}
	return c.History.DatabaseURL
}

// Workers returns the batch search parallelism (0 means sequential).
func (c *Config) Workers() int {
	if c.Search.Workers == nil {
		return 0
	}
	return *c.Search.Workers
}

// SmartCase reports whether smart case is on by default (defaults to false).
func (c *Config) SmartCase() bool {
	return c.Search.SmartCase != nil && *c.Search.SmartCase
}

// MaxTitle returns the maximum title length in bytes (defaults to 255).
func (c *Config) MaxTitle() int {
	if c.Limits.MaxTitle == nil {
		return DefaultMaxTitle
	}
	return *c.Limits.MaxTitle
}

// MaxLineLength returns the maximum line length for scanning (defaults to 10 MB).
func (c *Config) MaxLineLength() int {
	if c.Limits.MaxLineLength == nil {
		return DefaultMaxLineLength
	}
	return *c.Limits.MaxLineLength
}

// MaxUpload returns the maximum upload size in bytes (defaults to 100 MB).
func (c *Config) MaxUpload() int64 {
	if c.Limits.MaxUpload == nil {
		return DefaultMaxUpload
	}
	return *c.Limits.MaxUpload
}

// Addr returns the REST listen address (defaults to :8080).
func (c *Config) Addr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// RateLimit returns requests per second allowed by the REST server.
// Zero disables limiting.
func (c *Config) RateLimit() float64 {
	if c.Server.RateLimit == nil {
		return 0
	}
	return *c.Server.RateLimit
}

// RateBurst returns the token bucket size (defaults to 20).
func (c *Config) RateBurst() int {
	if c.Server.RateBurst == nil {
		return DefaultRateBurst
	}
	return *c.Server.RateBurst
}

// LocalPath returns the config file of the enclosing workspace, found by
// walking up from the working directory, or .bookrab/config.yaml when there
// is none.
func LocalPath() string {
	if ws, err := repo.Discover(); err == nil {
		return filepath.Join(ws, repo.ConfigFile)
	}
	return filepath.Join(repo.Dir, repo.ConfigFile)
}

// GlobalDir returns ~/.bookrab, or .bookrab when the home directory is unknown.
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bookrab"
	}
	return filepath.Join(home, ".bookrab")
}

// GlobalPath returns the path to the global (user) config file: ~/.bookrab/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bookrab", "config.yaml")
}

// LegacyPath returns ~/.config/bookrab/config.toml.
func LegacyPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "bookrab", "config.toml")
}

// Load reads configuration: local if it exists, then global, then the
// legacy TOML file.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	if p := GlobalPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return LoadScope(ScopeGlobal)
		}
	}
	if p := LegacyPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			return LoadScope(ScopeLegacy)
		}
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}
	return loadFile(path, scope)
}

// LoadFile reads the YAML or TOML file at path, chosen by extension.
func LoadFile(path string) (*Config, error) {
	scope := ScopeGlobal
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		scope = ScopeLegacy
	}
	return loadFile(path, scope)
}

func loadFile(path string, scope Scope) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if scope == ScopeLegacy {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("malformed config file %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Path returns the file this config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to its original location. A config read
// from the legacy TOML file is saved to the global YAML file instead.
func (c *Config) Save() error {
	if c.scope == ScopeLegacy {
		c.scope = ScopeGlobal
		c.path = ""
	}
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	if scope == ScopeLegacy {
		return fmt.Errorf("%w: legacy config is read-only", ErrNoConfigPath)
	}
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	case ScopeLegacy:
		return LegacyPath()
	default:
		return ""
	}
}

func parseBackends(raw string) ([]string, error) {
	var out []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.ToLower(strings.TrimSpace(b))
		switch b {
		case "":
			continue
		case BackendJSON, BackendSQLite, BackendPostgres:
			out = append(out, b)
		default:
			return nil, fmt.Errorf("%w: unknown history backend %q (valid: json, sqlite, postgres)", ErrInvalidValue, b)
		}
	}
	return out, nil
}

// resolve expands ~ and anchors relative paths in a workspace config to
// the workspace directory.
func (c *Config) resolve(p string) string {
	p = expandHome(p)
	if c.scope == ScopeLocal && !filepath.IsAbs(p) {
		return filepath.Join(c.BaseDir(), p)
	}
	return p
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
