package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/RichardKnop/glade/internal/glade"
)

var (
	errEmptyStatement = fmt.Errorf("%w: statement cannot be empty", glade.ErrSyntax)
)

type parser struct{}

func New() *parser {
	return new(parser)
}

// Parse accepts two statement shapes:
//
//	INSERT <balance> '<email>'
//	SELECT <row_index>
//
// Keywords are case insensitive, tokens are separated by whitespace.
func (p *parser) Parse(ctx context.Context, sql string) (glade.Statement, error) {
	tokens := strings.Fields(sql)
	if len(tokens) == 0 {
		return glade.Statement{}, errEmptyStatement
	}

	switch strings.ToUpper(tokens[0]) {
	case "INSERT":
		return p.parseInsert(tokens[1:])
	case "SELECT":
		return p.parseSelect(tokens[1:])
	default:
		return glade.Statement{}, fmt.Errorf("%w: unsupported statement: '%s'", glade.ErrSyntax, strings.TrimSpace(sql))
	}
}

func (p *parser) parseInsert(args []string) (glade.Statement, error) {
	if len(args) != 2 {
		return glade.Statement{}, fmt.Errorf("%w: INSERT expects a balance and a quoted email, got %d arguments", glade.ErrSyntax, len(args))
	}

	aRow, err := glade.NewRow(args[0], args[1])
	if err != nil {
		return glade.Statement{}, err
	}

	return glade.Statement{
		Kind: glade.Insert,
		Row:  aRow,
	}, nil
}

func (p *parser) parseSelect(args []string) (glade.Statement, error) {
	if len(args) != 1 {
		return glade.Statement{}, fmt.Errorf("%w: SELECT expects a row index, got %d arguments", glade.ErrSyntax, len(args))
	}

	idx, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return glade.Statement{}, fmt.Errorf("%w: invalid row index %q", glade.ErrSelect, args[0])
	}

	return glade.Statement{
		Kind:     glade.Select,
		RowIndex: glade.RowIndex(idx),
	}, nil
}
