package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/RichardKnop/glade/internal/glade"
)

const prompt = "db > "

type metaCommand int

const (
	Unknown metaCommand = iota + 1
	Help
	Exit
	Rows
)

func isMetaCommand(input string) bool {
	return len(input) > 0 && input[:1] == "."
}

func doMetaCommand(input string) metaCommand {
	switch strings.ToLower(input) {
	case "help":
		return Help
	case "exit":
		return Exit
	case "rows":
		return Rows
	default:
		return Unknown
	}
}

// lineSource yields one command per call, io.EOF ends the session.
type lineSource interface {
	Prompt(string) (string, error)
	AppendHistory(string)
}

type linerSource struct {
	*liner.State
	historyFile string
}

func newLinerSource(historyFile string) *linerSource {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	return &linerSource{
		State:       line,
		historyFile: historyFile,
	}
}

func (s *linerSource) Close() error {
	if s.historyFile != "" {
		if f, err := os.Create(s.historyFile); err != nil {
			fmt.Fprintf(os.Stderr, "%s: error writing history file, %s: %s\n", cliName, s.historyFile, err)
		} else {
			s.WriteHistory(f)
			f.Close()
		}
	}
	return s.State.Close()
}

type repl struct {
	db     *glade.Database
	in     lineSource
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger
}

func newRepl(logger *zap.Logger, aDatabase *glade.Database, in lineSource, out, errOut io.Writer) *repl {
	return &repl{
		db:     aDatabase,
		in:     in,
		out:    out,
		errOut: errOut,
		logger: logger,
	}
}

// Run reads and executes commands until .exit, end of input or ctx is
// cancelled. The database is closed before returning.
func (r *repl) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			break
		}

		input, err := r.in.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				break
			}
			return errors.Join(err, r.db.Close(ctx))
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.in.AppendHistory(input)

		if !isMetaCommand(input) {
			r.execute(ctx, input)
			continue
		}

		switch doMetaCommand(input[1:]) {
		case Help:
			fmt.Fprintln(r.out, "INSERT <balance> '<email>' - Append a row")
			fmt.Fprintln(r.out, "SELECT <row_index>         - Print the row stored at the index")
			fmt.Fprintln(r.out, ".rows                      - Print the number of rows")
			fmt.Fprintln(r.out, ".help                      - Show available commands")
			fmt.Fprintln(r.out, ".exit                      - Save changes and exit")
		case Exit:
			return r.db.Close(ctx)
		case Rows:
			fmt.Fprintln(r.out, r.db.RowCount())
		case Unknown:
			r.printError(fmt.Errorf("%w: unsupported metacommand: '%s'", glade.ErrSyntax, input[1:]))
		}
	}

	return r.db.Close(ctx)
}

func (r *repl) execute(ctx context.Context, input string) {
	result, err := r.db.Exec(ctx, input)
	if err != nil {
		r.printError(err)
		return
	}

	switch result.Kind {
	case glade.Insert:
		fmt.Fprintf(r.out, "Rows affected: %d\n", result.RowsAffected)
	case glade.Select:
		printRows(r.out, result.RowIndex, result.Rows)
	}
}

func (r *repl) printError(err error) {
	r.logger.Sugar().With("error", err).Debug("command failed")
	fmt.Fprintf(r.errOut, "Error: %s\n", err)
}

func printRows(w io.Writer, first glade.RowIndex, rows []glade.Row) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeader([]string{"id", "balance", "email"})

	for i, aRow := range rows {
		tw.Append([]string{
			strconv.FormatUint(uint64(first)+uint64(i), 10),
			strconv.FormatFloat(aRow.Balance, 'f', -1, 64),
			aRow.Email,
		})
	}

	tw.Render()
}
