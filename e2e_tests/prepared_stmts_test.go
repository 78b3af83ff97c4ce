package e2etests

import (
	"github.com/RichardKnop/glade/internal/glade"
)

func (s *TestSuite) TestPreparedStmts() {
	s.Run("Insert row", func() {
		stmt, err := s.db.Prepare("INSERT 75.10 'yahn@google.com'")
		s.Require().NoError(err)
		defer stmt.Close()

		for i := 0; i < 2; i++ {
			aResult, err := stmt.Exec()
			s.Require().NoError(err)

			rowsAffected, err := aResult.RowsAffected()
			s.Require().NoError(err)
			s.Equal(int64(1), rowsAffected)

			id, err := aResult.LastInsertId()
			s.Require().NoError(err)
			s.Equal(int64(i), id)
		}
	})

	s.Run("Select row", func() {
		stmt, err := s.db.Prepare("select 1")
		s.Require().NoError(err)
		defer stmt.Close()

		var (
			id   int64
			aRow glade.Row
		)
		err = stmt.QueryRow().Scan(&id, &aRow.Balance, &aRow.Email)
		s.Require().NoError(err)
		s.Equal(int64(1), id)
		s.Equal(glade.Row{Balance: 75.10, Email: "yahn@google.com"}, aRow)
	})

	s.Run("Select row that does not exist yet", func() {
		stmt, err := s.db.Prepare("SELECT 2")
		s.Require().NoError(err)
		defer stmt.Close()

		_, err = stmt.Query()
		s.ErrorIs(err, glade.ErrSelect)

		_, err = s.db.Exec("INSERT 0 'third@example.com'")
		s.Require().NoError(err)

		// The same prepared statement now finds the row
		rows, err := stmt.Query()
		s.Require().NoError(err)
		defer rows.Close()
		s.True(rows.Next())
	})

	s.Run("Prepare fails on syntax error", func() {
		_, err := s.db.Prepare("INSERT 'x@y.z'")
		s.ErrorIs(err, glade.ErrSyntax)

		_, err = s.db.Prepare(".exit")
		s.ErrorIs(err, glade.ErrSyntax)
	})
}
