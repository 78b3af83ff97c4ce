package e2etests

import (
	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/glade/gladetest"
)

func (s *TestSuite) TestEmptyDatabase() {
	s.Require().NoError(s.db.Ping())

	_, err := s.selectRow(0)
	s.Require().Error(err)
	s.ErrorIs(err, glade.ErrSelect)
	s.ErrorIs(err, glade.ErrFetch)
}

func (s *TestSuite) TestInsertAndSelect() {
	rows := gen.Rows(40)
	s.insertRows(rows)
	s.assertRows(rows)

	s.Run("Reopen to force reading rows from disk", func() {
		s.reopen()
		s.assertRows(rows)
	})

	s.Run("Inserting after reopen continues the row indexes", func() {
		more := gen.Rows(5)
		for i, aRow := range more {
			aResult, err := s.db.Exec(gladetest.InsertCommand(aRow))
			s.Require().NoError(err)
			id, err := aResult.LastInsertId()
			s.Require().NoError(err)
			s.Equal(int64(len(rows)+i), id)
		}
		s.assertRows(append(rows, more...))
	})
}

func (s *TestSuite) TestFileIsPageGranular() {
	s.insertRows(gen.Rows(3))
	s.reopen()
	s.Require().NoError(s.db.Ping())

	s.Equal(int64(glade.PageSize), s.fileSize())
}

func (s *TestSuite) TestStatementErrors() {
	_, err := s.db.Exec("DELETE 1")
	s.ErrorIs(err, glade.ErrSyntax)
	s.Equal("failed to parse query: syntax error: unsupported statement: 'DELETE 1'", err.Error())

	_, err = s.db.Exec("INSERT 1 a@b.c")
	s.ErrorIs(err, glade.ErrInsert)

	_, err = s.db.Exec("INSERT 1")
	s.ErrorIs(err, glade.ErrSyntax)

	_, err = s.db.Query("SELECT -1")
	s.ErrorIs(err, glade.ErrSelect)

	_, err = s.db.Query("SELECT first")
	s.ErrorIs(err, glade.ErrSelect)
}

func (s *TestSuite) TestLongEmailIsTruncated() {
	email := ""
	for len(email) < glade.EmailSize {
		email += "abcdefgh"
	}

	_, err := s.db.Exec("INSERT 10 '" + email + "@overflow.com'")
	s.Require().NoError(err)

	aRow, err := s.selectRow(0)
	s.Require().NoError(err)
	s.Equal(email, aRow.Email)
	s.Equal(10.0, aRow.Balance)
}

func (s *TestSuite) TestTableFull() {
	capacity := s.capacity()

	aRow := glade.Row{Balance: 1, Email: "same@example.com"}
	stmt, err := s.db.Prepare(gladetest.InsertCommand(aRow))
	s.Require().NoError(err)
	defer stmt.Close()

	for i := 0; i < capacity; i++ {
		_, err := stmt.Exec()
		s.Require().NoError(err)
	}

	_, err = stmt.Exec()
	s.Require().Error(err)
	s.ErrorIs(err, glade.ErrPageOverflow)
	if !s.leaf() {
		s.Equal("Cannot insert more records.", err.Error())
	}

	s.Run("Full table survives reopen", func() {
		s.Require().NoError(stmt.Close())
		s.reopen()

		last, err := s.selectRow(capacity - 1)
		s.Require().NoError(err)
		s.Equal(aRow, last)

		_, err = s.db.Exec(gladetest.InsertCommand(aRow))
		s.ErrorIs(err, glade.ErrPageOverflow)
	})
}
