package glade

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RichardKnop/glade/internal/pkg/logging"
)

//go:generate mockery --name=Parser --structname=MockParser --inpackage --case=snake --testonly
//go:generate mockery --name=RowStore --structname=MockRowStore --inpackage --case=snake --testonly

const testDbName = "test_db"

var (
	gen = newDataGen(time.Now().Unix())

	testLogger *zap.Logger
)

func init() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "error"
	}

	var err error
	testLogger, err = logging.New(level)
	if err != nil {
		panic(err)
	}
}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed int64) *dataGen {
	return &dataGen{
		Faker: gofakeit.New(seed),
	}
}

func (g *dataGen) Rows(number int) []Row {
	rows := make([]Row, 0, number)
	for i := 0; i < number; i++ {
		rows = append(rows, g.Row())
	}
	return rows
}

func (g *dataGen) Row() Row {
	return Row{
		Balance: g.Float64Range(-10000, 10000),
		Email:   g.Email(),
	}
}

// openTestFile opens (or creates) a database file inside a per test directory.
func openTestFile(t *testing.T, path string) *os.File {
	t.Helper()

	dbFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	require.NoError(t, err)
	return dbFile
}

func testDbPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), testDbName)
}
