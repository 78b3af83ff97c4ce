package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RichardKnop/glade/internal/glade"
)

const EnvPrefix = "GLADE"

// Config keys, flags use the same names with dashes.
const (
	KeyDBFile         = "db_file"
	KeyLayout         = "layout"
	KeyMaxPages       = "max_pages"
	KeyMaxCachedPages = "max_cached_pages"
	KeyLogLevel       = "log_level"
	KeyHistoryFile    = "history_file"
)

type Config struct {
	DBFile         string `mapstructure:"db_file"`
	Layout         string `mapstructure:"layout"`
	MaxPages       int    `mapstructure:"max_pages"`
	MaxCachedPages int    `mapstructure:"max_cached_pages"`
	LogLevel       string `mapstructure:"log_level"`
	HistoryFile    string `mapstructure:"history_file"`
}

// New returns a viper instance with defaults set and environment variables
// (GLADE_DB_FILE, GLADE_LAYOUT...) enabled.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyDBFile, "glade.db")
	v.SetDefault(KeyLayout, string(glade.LayoutFlat))
	v.SetDefault(KeyMaxPages, glade.DefaultMaxPages)
	v.SetDefault(KeyMaxCachedPages, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyHistoryFile, ".glade_history")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// AddFlags registers a flag for every config key.
func AddFlags(fs *pflag.FlagSet) {
	fs.String(flagName(KeyDBFile), "glade.db", "database `file`")
	fs.String(flagName(KeyLayout), string(glade.LayoutFlat), "storage layout: flat or leaf")
	fs.Int(flagName(KeyMaxPages), glade.DefaultMaxPages, "maximum number of pages in the database file")
	fs.Int(flagName(KeyMaxCachedPages), 0, "maximum number of pages kept in memory, 0 for unlimited")
	fs.String(flagName(KeyLogLevel), "info", "log level: debug, info, warn or error")
	fs.String(flagName(KeyHistoryFile), ".glade_history", "`file` to keep command history in, empty to disable")
}

// BindFlags makes flags registered by AddFlags override every other source
// when they are set on the command line.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyDBFile, KeyLayout, KeyMaxPages, KeyMaxCachedPages, KeyLogLevel, KeyHistoryFile} {
		flg := fs.Lookup(flagName(key))
		if flg == nil {
			continue
		}
		if err := v.BindPFlag(key, flg); err != nil {
			return fmt.Errorf("bind flag %s: %w", flg.Name, err)
		}
	}
	return nil
}

// Load reads the optional config file at path and decodes the merged
// configuration.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Glade().Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Glade converts the configuration to the storage engine options.
func (c *Config) Glade() glade.Config {
	return glade.Config{
		FilePath:       c.DBFile,
		Layout:         glade.Layout(strings.ToLower(c.Layout)),
		MaxPages:       c.MaxPages,
		MaxCachedPages: c.MaxCachedPages,
	}
}
