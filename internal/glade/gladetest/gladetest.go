package gladetest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/RichardKnop/glade/internal/glade"
)

type DataGen struct {
	*gofakeit.Faker
}

func NewDataGen(seed int64) *DataGen {
	g := DataGen{
		Faker: gofakeit.New(seed),
	}

	return &g
}

// Row returns a row whose balance survives a round trip through its
// decimal text form. The email never contains whitespace so it can be
// used as a single command token.
func (g *DataGen) Row() glade.Row {
	return glade.Row{
		Balance: float64(g.IntRange(-100000, 100000)) / 100,
		Email:   strings.Join(strings.Fields(g.Email()), ""),
	}
}

func (g *DataGen) Rows(number int) []glade.Row {
	rows := make([]glade.Row, 0, number)
	for i := 0; i < number; i++ {
		rows = append(rows, g.Row())
	}
	return rows
}

// InsertCommand renders the row as an INSERT command line.
func InsertCommand(aRow glade.Row) string {
	return fmt.Sprintf("INSERT %s '%s'", strconv.FormatFloat(aRow.Balance, 'f', -1, 64), aRow.Email)
}

// NewRootLeafPageWithCells returns page 0 formatted as a root leaf holding
// the given number of random rows.
func (g *DataGen) NewRootLeafPageWithCells(cells int) (*glade.Page, []glade.Row) {
	aPage := &glade.Page{
		Index: 0,
		Data:  make([]byte, glade.PageSize),
	}
	aLeaf, err := glade.InitLeaf(aPage, true)
	if err != nil {
		panic(err)
	}

	rows := g.Rows(cells)
	for _, aRow := range rows {
		buf, err := aRow.Marshal(nil)
		if err != nil {
			panic(err)
		}
		if _, err := aLeaf.AddCell(buf); err != nil {
			panic(err)
		}
	}

	return aPage, rows
}
