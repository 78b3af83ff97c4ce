package glade

import (
	"fmt"
)

type Layout string

const (
	// LayoutFlat packs records back to back, 56 per page, without headers.
	LayoutFlat Layout = "flat"
	// LayoutLeaf stores records as cells of a single root leaf node on page 0.
	LayoutLeaf Layout = "leaf"
)

type Config struct {
	FilePath       string
	Layout         Layout
	MaxPages       int
	MaxCachedPages int // 0 keeps every loaded page in memory
}

// MinCachedPages is the smallest bounded cache. Page 0 is never evicted so
// one more slot is needed to load any other page.
const MinCachedPages = 2

func DefaultConfig(filePath string) Config {
	return Config{
		FilePath: filePath,
		Layout:   LayoutFlat,
		MaxPages: DefaultMaxPages,
	}
}

func (c Config) Validate() error {
	if c.FilePath == "" {
		return fmt.Errorf("database file path cannot be empty")
	}
	switch c.Layout {
	case LayoutFlat, LayoutLeaf:
	default:
		return fmt.Errorf("%w: %q", errUnrecognizedStore, c.Layout)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive, got %d", c.MaxPages)
	}
	if c.MaxCachedPages < 0 {
		return fmt.Errorf("max cached pages must be non-negative, got %d", c.MaxCachedPages)
	}
	if c.MaxCachedPages > 0 && c.MaxCachedPages < MinCachedPages {
		return fmt.Errorf("max cached pages must be 0 or at least %d, got %d", MinCachedPages, c.MaxCachedPages)
	}
	return nil
}
