package glade

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/pkg/logging"
)

// ConnectionConfig holds parsed connection string parameters
type ConnectionConfig struct {
	FilePath       string       // Database file path
	Layout         glade.Layout // Storage layout: flat or leaf (default: flat)
	MaxPages       int          // Maximum number of pages in the file (default: 1000)
	MaxCachedPages int          // Maximum number of pages to cache (default: 0 = unlimited)
	LogLevel       string       // Log level: debug, info, warn, error (default: warn)
}

// DefaultConnectionConfig returns default configuration
func DefaultConnectionConfig(filePath string) *ConnectionConfig {
	return &ConnectionConfig{
		FilePath: filePath,
		Layout:   glade.LayoutFlat,
		MaxPages: glade.DefaultMaxPages,
		LogLevel: "warn",
	}
}

// ParseConnectionString parses a connection string with optional query parameters.
//
// Format: /path/to/database.db?param1=value1&param2=value2
//
// Supported parameters:
//   - layout=flat|leaf : Storage layout (default: flat)
//   - max_pages=N : Page limit of the file, inserts past it fail (default: 1000)
//   - max_cached_pages=N : Pages kept in memory, 0 keeps all (default: 0)
//   - log_level=debug|info|warn|error : Set logging level (default: warn)
//
// Examples:
//   - "./my.db"                              : Default settings
//   - "./my.db?layout=leaf"                  : Single root leaf layout
//   - "./my.db?max_cached_pages=64&log_level=debug" : Both settings
func ParseConnectionString(connStr string) (*ConnectionConfig, error) {
	// Split on first '?' to separate path from query params
	parts := strings.SplitN(connStr, "?", 2)

	if parts[0] == "" {
		return nil, fmt.Errorf("connection string must start with a database file path")
	}
	config := DefaultConnectionConfig(parts[0])

	// No query parameters
	if len(parts) == 1 {
		return config, nil
	}

	queryParams, err := url.ParseQuery(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid connection string query parameters: %w", err)
	}

	if layout := queryParams.Get("layout"); layout != "" {
		switch glade.Layout(strings.ToLower(layout)) {
		case glade.LayoutFlat, glade.LayoutLeaf:
			config.Layout = glade.Layout(strings.ToLower(layout))
		default:
			return nil, fmt.Errorf("invalid layout parameter: must be 'flat' or 'leaf', got %q", layout)
		}
	}

	if maxPagesStr := queryParams.Get("max_pages"); maxPagesStr != "" {
		maxPages, err := strconv.Atoi(maxPagesStr)
		if err != nil || maxPages <= 0 {
			return nil, fmt.Errorf("invalid max_pages parameter: must be a positive integer, got %q", maxPagesStr)
		}
		config.MaxPages = maxPages
	}

	if maxPagesStr := queryParams.Get("max_cached_pages"); maxPagesStr != "" {
		maxPages, err := strconv.Atoi(maxPagesStr)
		if err != nil {
			return nil, fmt.Errorf("invalid max_cached_pages parameter: must be a non-negative integer, got %q", maxPagesStr)
		}
		if maxPages < 0 {
			return nil, fmt.Errorf("invalid max_cached_pages parameter: must be non-negative, got %d", maxPages)
		}
		if maxPages > 0 && maxPages < glade.MinCachedPages {
			return nil, fmt.Errorf("invalid max_cached_pages parameter: must be 0 or at least %d, got %d", glade.MinCachedPages, maxPages)
		}
		config.MaxCachedPages = maxPages
	}

	if logLevel := queryParams.Get("log_level"); logLevel != "" {
		logLevel = strings.ToLower(logLevel)
		switch logLevel {
		case "debug", "info", "warn", "error":
			config.LogLevel = logLevel
		default:
			return nil, fmt.Errorf("invalid log_level parameter: must be 'debug', 'info', 'warn', or 'error', got %q", logLevel)
		}
	}

	return config, nil
}

// Glade returns the storage engine options.
func (c *ConnectionConfig) Glade() glade.Config {
	return glade.Config{
		FilePath:       c.FilePath,
		Layout:         c.Layout,
		MaxPages:       c.MaxPages,
		MaxCachedPages: c.MaxCachedPages,
	}
}

// Logger builds a logger at the configured level.
func (c *ConnectionConfig) Logger() (*zap.Logger, error) {
	return logging.New(c.LogLevel)
}
