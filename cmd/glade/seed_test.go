package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/glade/gladetest"
	"github.com/RichardKnop/glade/internal/parser"
)

func TestSeedRows(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := glade.DefaultConfig(filepath.Join(t.TempDir(), "test_db"))
	cfg.Layout = glade.LayoutLeaf

	aDatabase, err := glade.Open(ctx, zap.NewNop(), parser.New(), cfg)
	require.NoError(t, err)

	inserted, err := seedRows(ctx, zap.NewNop(), aDatabase, gladetest.NewDataGen(42), 10)
	require.NoError(t, err)
	assert.Equal(t, 10, inserted)

	// The leaf layout fills up part way through
	inserted, err = seedRows(ctx, zap.NewNop(), aDatabase, gladetest.NewDataGen(43), glade.LeafNodeMaxCells)
	assert.ErrorIs(t, err, glade.ErrPageOverflow)
	assert.Equal(t, glade.LeafNodeMaxCells-10, inserted)

	require.NoError(t, aDatabase.Close(ctx))

	aDatabase, err = glade.Open(ctx, zap.NewNop(), parser.New(), cfg)
	require.NoError(t, err)
	defer aDatabase.Close(ctx)
	assert.Equal(t, uint64(glade.LeafNodeMaxCells), aDatabase.RowCount())
}
