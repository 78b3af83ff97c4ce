package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/glade/gladetest"
	"github.com/RichardKnop/glade/internal/parser"
	"github.com/RichardKnop/glade/internal/pkg/logging"
)

var (
	seedCmd = &cobra.Command{
		Use:   "seed [db_file]",
		Short: "Append randomly generated rows to the database",
		Args:  cobra.MaximumNArgs(1),
		RunE:  seedRun,
	}

	seedRowCount = 100
	seedValue    = int64(0)
)

func init() {
	fs := seedCmd.Flags()
	fs.IntVarP(&seedRowCount, "rows", "n", seedRowCount, "number of rows to insert")
	fs.Int64Var(&seedValue, "seed", seedValue, "random seed, 0 picks one from the clock")

	rootCmd.AddCommand(seedCmd)
}

func seedRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, cfgViper, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() // flushes buffer, if any

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	aDatabase, err := glade.Open(ctx, logger, parser.New(), cfg.Glade())
	if err != nil {
		return err
	}

	seed := seedValue
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	inserted, err := seedRows(ctx, logger, aDatabase, gladetest.NewDataGen(seed), seedRowCount)
	if closeErr := aDatabase.Close(ctx); err == nil {
		err = closeErr
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rows inserted: %d\n", inserted)

	return err
}

// seedRows inserts generated rows through the command path, stopping at the
// first failure such as a full table.
func seedRows(ctx context.Context, logger *zap.Logger, aDatabase *glade.Database, gen *gladetest.DataGen, count int) (int, error) {
	for i := 0; i < count; i++ {
		if _, err := aDatabase.Exec(ctx, gladetest.InsertCommand(gen.Row())); err != nil {
			logger.Sugar().With("inserted", i, "error", err).Warn("seeding stopped")
			return i, err
		}
	}
	return count, nil
}
