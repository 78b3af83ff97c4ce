package e2etests

import (
	"sync"

	"github.com/RichardKnop/glade/internal/glade"
	"github.com/RichardKnop/glade/internal/glade/gladetest"
)

func (s *TestSuite) TestConcurrency() {
	numRows := min(s.capacity(), 200)
	rowsToInsert := gen.Rows(numRows)

	workerPool := make(chan struct{}, 20) // limit concurrency to 20 goroutines
	for range 20 {
		workerPool <- struct{}{}
	}

	s.Run("Concurrently insert rows", func() {
		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[int64]struct{}, numRows)
		)

		for _, aRow := range rowsToInsert {
			<-workerPool
			wg.Add(1)

			go func() {
				defer wg.Done()
				defer func() { workerPool <- struct{}{} }()

				aResult, err := s.db.Exec(gladetest.InsertCommand(aRow))
				if !s.NoError(err) {
					return
				}
				id, err := aResult.LastInsertId()
				s.NoError(err)

				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()

		// Every insert got its own row index
		s.Len(ids, numRows)
	})

	s.Run("Reopen to force reading rows from disk", func() {
		s.reopen()

		actual := make([]glade.Row, 0, numRows)
		for i := 0; i < numRows; i++ {
			aRow, err := s.selectRow(i)
			s.Require().NoError(err)
			actual = append(actual, aRow)
		}
		s.ElementsMatch(rowsToInsert, actual)
	})

	s.Run("Concurrently run select queries", func() {
		var wg sync.WaitGroup

		stmt, err := s.db.Prepare("SELECT 0")
		s.Require().NoError(err)
		defer stmt.Close()

		first, err := s.selectRow(0)
		s.Require().NoError(err)

		for i := range numRows {
			<-workerPool
			wg.Add(1)

			go func() {
				defer wg.Done()
				defer func() { workerPool <- struct{}{} }()

				aRow, err := s.selectRow(i)
				if s.NoError(err) {
					s.Contains(rowsToInsert, aRow)
				}

				var (
					id        int64
					firstCopy glade.Row
				)
				err = stmt.QueryRow().Scan(&id, &firstCopy.Balance, &firstCopy.Email)
				if s.NoError(err) {
					s.Equal(first, firstCopy)
				}
			}()
		}

		wg.Wait()
	})
}
