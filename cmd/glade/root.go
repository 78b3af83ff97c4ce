package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/parser"
	"github.com/RichardKnop/glade/internal/pkg/config"
	"github.com/RichardKnop/glade/internal/pkg/logging"
)

const cliName = "glade"

var (
	rootCmd = &cobra.Command{
		Use:           cliName + " [db_file]",
		Short:         "A single table storage engine with an interactive shell",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          rootRun,
	}

	configFile = ""
	cfgViper   = config.New()
)

func init() {
	fs := rootCmd.PersistentFlags()
	fs.StringVar(&configFile, "config", configFile, "YAML `file` to load config from")
	config.AddFlags(fs)
}

func rootRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, cfgViper, args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() // flushes buffer, if any

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	aDatabase, err := glade.Open(ctx, logger, parser.New(), cfg.Glade())
	if err != nil {
		return err
	}

	in := newLinerSource(cfg.HistoryFile)
	defer in.Close()

	aRepl := newRepl(logger, aDatabase, in, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return aRepl.Run(ctx)
}

// loadConfig merges defaults, the config file, GLADE_ environment variables
// and flags. A positional argument names the database file.
func loadConfig(cmd *cobra.Command, v *viper.Viper, args []string) (*config.Config, error) {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	if len(args) == 1 {
		v.Set(config.KeyDBFile, args[0])
	}

	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cliName, err)
	}
	return cfg, nil
}
