package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usf-cs272/gradebot/internal/repository"
)

// setupMockDB creates a mock database connection for tests and closes it
// when the test finishes
func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create mock database")
	t.Cleanup(func() { database.Close() })
	return database, mock
}

func setupLedgerRepo(t *testing.T) (*ledgerRepository, sqlmock.Sqlmock) {
	database, mock := setupMockDB(t)
	return NewLedgerRepository(database), mock
}

func intPtr(value int) *int {
	return &value
}

func TestLedgerRepository_Record(t *testing.T) {
	t.Run("accepted request inserts with grade columns", func(t *testing.T) {
		repo, mock := setupLedgerRepo(t)

		requestedAt := time.Date(2024, 3, 10, 10, 0, 5, 0, time.UTC)
		entry := &repository.LedgerEntry{
			Release:     "v2.3.1",
			Project:     2,
			GradeType:   "Functionality",
			Title:       "Project v2.3.1 Functionality Grade",
			Outcome:     repository.OutcomeAccepted,
			Grade:       intPtr(80),
			LateWeeks:   intPtr(2),
			IssueNumber: intPtr(42),
			RunID:       "8675309",
			RequestedAt: requestedAt,
		}

		mock.ExpectQuery("INSERT INTO grade_requests").
			WithArgs(
				"v2.3.1", 2, "Functionality", "Project v2.3.1 Functionality Grade",
				"accepted", "",
				sql.NullInt64{Int64: 80, Valid: true},
				sql.NullInt64{Int64: 2, Valid: true},
				sql.NullInt64{Int64: 42, Valid: true},
				"8675309", requestedAt,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		require.NoError(t, repo.Record(context.Background(), entry))
		assert.Equal(t, 7, entry.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed request inserts null grade columns", func(t *testing.T) {
		repo, mock := setupLedgerRepo(t)

		requestedAt := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
		entry := &repository.LedgerEntry{
			Release:     "v2.3.1",
			Project:     2,
			GradeType:   "Functionality",
			Title:       "Project v2.3.1 Functionality Grade",
			Outcome:     repository.OutcomeFailed,
			ErrorCode:   "DUPLICATE_REQUEST",
			RunID:       "8675310",
			RequestedAt: requestedAt,
		}

		mock.ExpectQuery("INSERT INTO grade_requests").
			WithArgs(
				"v2.3.1", 2, "Functionality", "Project v2.3.1 Functionality Grade",
				"failed", "DUPLICATE_REQUEST",
				sql.NullInt64{}, sql.NullInt64{}, sql.NullInt64{},
				"8675310", requestedAt,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

		require.NoError(t, repo.Record(context.Background(), entry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure propagates", func(t *testing.T) {
		repo, mock := setupLedgerRepo(t)

		mock.ExpectQuery("INSERT INTO grade_requests").
			WillReturnError(errors.New("connection refused"))

		err := repo.Record(context.Background(), &repository.LedgerEntry{})
		require.Error(t, err)
	})
}

func TestLedgerRepository_ListRecent(t *testing.T) {
	t.Run("returns entries newest first", func(t *testing.T) {
		repo, mock := setupLedgerRepo(t)

		first := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
		second := time.Date(2024, 3, 10, 10, 0, 5, 0, time.UTC)

		rows := sqlmock.NewRows([]string{
			"id", "release", "project", "grade_type", "title", "outcome",
			"error_code", "grade", "late_weeks", "issue_number", "run_id", "requested_at",
		}).
			AddRow(8, "v2.3.1", 2, "Functionality", "Project v2.3.1 Functionality Grade",
				"failed", "DUPLICATE_REQUEST", nil, nil, nil, "8675310", first).
			AddRow(7, "v2.3.1", 2, "Functionality", "Project v2.3.1 Functionality Grade",
				"accepted", "", 80, 2, 42, "8675309", second)

		mock.ExpectQuery("SELECT (.+) FROM grade_requests").
			WithArgs(10).
			WillReturnRows(rows)

		entries, err := repo.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, 8, entries[0].ID)
		assert.Equal(t, "failed", entries[0].Outcome)
		assert.Nil(t, entries[0].Grade)

		assert.Equal(t, 7, entries[1].ID)
		require.NotNil(t, entries[1].Grade)
		assert.Equal(t, 80, *entries[1].Grade)
		require.NotNil(t, entries[1].IssueNumber)
		assert.Equal(t, 42, *entries[1].IssueNumber)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure propagates", func(t *testing.T) {
		repo, mock := setupLedgerRepo(t)

		mock.ExpectQuery("SELECT (.+) FROM grade_requests").
			WillReturnError(errors.New("relation does not exist"))

		_, err := repo.ListRecent(context.Background(), 10)
		require.Error(t, err)
	})
}
