// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. config.go focuses on file structure and loading, while this
// file handles the CLI and MCP interface where config is accessed by dotted
// keys (e.g., "limits.max_upload").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". Defaults apply only
// when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"book_path",
		"history.backends", "history.json_path", "history.sqlite_path", "history.database_url",
		"search.workers", "search.smart_case",
		"limits.max_title", "limits.max_line_length", "limits.max_upload",
		"server.addr", "server.rate_limit", "server.rate_burst",
		"log.level", "log.format", "log.dir",
		"log.max_size_mb", "log.max_backups", "log.max_age_days", "log.compress",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "book_path":
		return c.Books(), nil
	case "history.backends":
		return strings.Join(c.Backends(), ","), nil
	case "history.json_path":
		return c.JSONHistoryPath(), nil
	case "history.sqlite_path":
		return c.SQLiteHistoryPath(), nil
	case "history.database_url":
		return c.DatabaseURL(), nil
	case "search.workers":
		return strconv.Itoa(c.Workers()), nil
	case "search.smart_case":
		return strconv.FormatBool(c.SmartCase()), nil
	case "limits.max_title":
		return strconv.Itoa(c.MaxTitle()), nil
	case "limits.max_line_length":
		return strconv.Itoa(c.MaxLineLength()), nil
	case "limits.max_upload":
		return strconv.FormatInt(c.MaxUpload(), 10), nil
	case "server.addr":
		return c.Addr(), nil
	case "server.rate_limit":
		return strconv.FormatFloat(c.RateLimit(), 'g', -1, 64), nil
	case "server.rate_burst":
		return strconv.Itoa(c.RateBurst()), nil
	case "log.level":
		return c.LogLevel(), nil
	case "log.format":
		return c.LogFormat(), nil
	case "log.dir":
		return c.Log.Dir, nil
	case "log.max_size_mb":
		return strconv.Itoa(c.LogMaxSizeMB()), nil
	case "log.max_backups":
		return strconv.Itoa(c.LogMaxBackups()), nil
	case "log.max_age_days":
		return strconv.Itoa(c.LogMaxAgeDays()), nil
	case "log.compress":
		return strconv.FormatBool(c.LogCompress()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "book_path":
		c.BookPath = value
	case "history.backends":
		b, err := parseBackends(value)
		if err != nil {
			return err
		}
		v := strings.Join(b, ",")
		c.History.Backends = &v
	case "history.json_path":
		c.History.JSONPath = value
	case "history.sqlite_path":
		c.History.SQLitePath = value
	case "history.database_url":
		c.History.DatabaseURL = value
	case "search.workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 || n > MaxWorkers {
			return fmt.Errorf("%w: search.workers must be an integer between 0 and %d", ErrInvalidValue, MaxWorkers)
		}
		c.Search.Workers = &n
	case "search.smart_case":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Search.SmartCase = &b
	case "limits.max_title":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxTitle = &n
	case "limits.max_line_length":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxLineLength = &n
	case "limits.max_upload":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: limits.max_upload must be a positive integer", ErrInvalidValue)
		}
		c.Limits.MaxUpload = &n
	case "server.addr":
		c.Server.Addr = value
	case "server.rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%w: server.rate_limit must be a non-negative number", ErrInvalidValue)
		}
		c.Server.RateLimit = &f
	case "server.rate_burst":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Server.RateBurst = &n
	case "log.level":
		v := strings.ToLower(value)
		if !slices.Contains([]string{"debug", "info", "warn", "error"}, v) {
			return fmt.Errorf("%w: log.level must be debug, info, warn or error", ErrInvalidValue)
		}
		c.Log.Level = v
	case "log.format":
		v := strings.ToLower(value)
		if v != "text" && v != "json" {
			return fmt.Errorf("%w: log.format must be text or json", ErrInvalidValue)
		}
		c.Log.Format = v
	case "log.dir":
		c.Log.Dir = value
	case "log.max_size_mb":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Log.MaxSizeMB = &n
	case "log.max_backups":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: log.max_backups must be a non-negative integer", ErrInvalidValue)
		}
		c.Log.MaxBackups = &n
	case "log.max_age_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: log.max_age_days must be a non-negative integer", ErrInvalidValue)
		}
		c.Log.MaxAgeDays = &n
	case "log.compress":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		c.Log.Compress = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	m := make(map[string]string, len(ValidKeys()))
	for _, k := range ValidKeys() {
		v, _ := c.Get(k)
		m[k] = v
	}
	return m
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "book_path":
		return c.BookPath != ""
	case "history.backends":
		return c.History.Backends != nil
	case "history.json_path":
		return c.History.JSONPath != ""
	case "history.sqlite_path":
		return c.History.SQLitePath != ""
	case "history.database_url":
		return c.History.DatabaseURL != ""
	case "search.workers":
		return c.Search.Workers != nil
	case "search.smart_case":
		return c.Search.SmartCase != nil
	case "limits.max_title":
		return c.Limits.MaxTitle != nil
	case "limits.max_line_length":
		return c.Limits.MaxLineLength != nil
	case "limits.max_upload":
		return c.Limits.MaxUpload != nil
	case "server.addr":
		return c.Server.Addr != ""
	case "server.rate_limit":
		return c.Server.RateLimit != nil
	case "server.rate_burst":
		return c.Server.RateBurst != nil
	case "log.level":
		return c.Log.Level != ""
	case "log.format":
		return c.Log.Format != ""
	case "log.dir":
		return c.Log.Dir != ""
	case "log.max_size_mb":
		return c.Log.MaxSizeMB != nil
	case "log.max_backups":
		return c.Log.MaxBackups != nil
	case "log.max_age_days":
		return c.Log.MaxAgeDays != nil
	case "log.compress":
		return c.Log.Compress != nil
	default:
		return false
	}
}

// LogLevel returns the slog level name (defaults to info).
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return DefaultLogLevel
	}
	return c.Log.Level
}

// LogFormat returns text or json (defaults to text).
func (c *Config) LogFormat() string {
	if c.Log.Format == "" {
		return DefaultLogFormat
	}
	return c.Log.Format
}

// LogMaxSizeMB returns the size at which log files rotate.
func (c *Config) LogMaxSizeMB() int {
	if c.Log.MaxSizeMB == nil {
		return DefaultLogMaxSizeMB
	}
	return *c.Log.MaxSizeMB
}

// LogMaxBackups returns how many rotated files are kept.
func (c *Config) LogMaxBackups() int {
	if c.Log.MaxBackups == nil {
		return DefaultLogMaxBackups
	}
	return *c.Log.MaxBackups
}

// LogMaxAgeDays returns how long rotated files are kept.
func (c *Config) LogMaxAgeDays() int {
	if c.Log.MaxAgeDays == nil {
		return DefaultLogMaxAgeDays
	}
	return *c.Log.MaxAgeDays
}

// LogCompress reports whether rotated files are gzipped.
func (c *Config) LogCompress() bool {
	return c.Log.Compress != nil && *c.Log.Compress
}

func parseBool(key, value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s must be true or false", ErrInvalidValue, key)
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
	}
	return n, nil
}
