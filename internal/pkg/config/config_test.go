package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RichardKnop/glade/internal/glade"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, &Config{
		DBFile:         "glade.db",
		Layout:         "flat",
		MaxPages:       1000,
		MaxCachedPages: 0,
		LogLevel:       "info",
		HistoryFile:    ".glade_history",
	}, cfg)

	assert.Equal(t, glade.DefaultConfig("glade.db"), cfg.Glade())
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "glade.yaml")
	err := os.WriteFile(path, []byte("db_file: accounts.db\nlayout: LEAF\nmax_cached_pages: 16\n"), 0600)
	require.NoError(t, err)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "accounts.db", cfg.DBFile)
	assert.Equal(t, glade.LayoutLeaf, cfg.Glade().Layout)
	assert.Equal(t, 16, cfg.MaxCachedPages)
	assert.Equal(t, 1000, cfg.MaxPages)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	v := New()
	v.Set(KeyLayout, "btree")

	_, err := Load(v, "")
	assert.Error(t, err)
}

func TestLoad_SingleCachedPage(t *testing.T) {
	t.Parallel()

	v := New()
	v.Set(KeyMaxCachedPages, 1)

	_, err := Load(v, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max cached pages must be 0 or at least 2")
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("GLADE_MAX_PAGES", "5")
	t.Setenv("GLADE_LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestBindFlags(t *testing.T) {
	t.Parallel()

	fs := pflag.NewFlagSet("glade", pflag.ContinueOnError)
	AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--db-file", "flags.db", "--max-pages", "3"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, "flags.db", cfg.DBFile)
	assert.Equal(t, 3, cfg.MaxPages)
	// Unset flags fall back to their defaults
	assert.Equal(t, "flat", cfg.Layout)
	assert.Equal(t, ".glade_history", cfg.HistoryFile)
}
