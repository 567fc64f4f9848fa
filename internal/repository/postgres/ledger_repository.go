package postgres

import (
	"context"
	"database/sql"

	"github.com/usf-cs272/gradebot/internal/repository"
)

// DBExecutor is the subset of *sql.DB the repository needs, narrowed so
// tests can substitute a mock connection
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type ledgerRepository struct {
	executor DBExecutor
}

// NewLedgerRepository creates a postgres-backed LedgerRepository
func NewLedgerRepository(database *sql.DB) *ledgerRepository {
	return &ledgerRepository{executor: database}
}

func (r *ledgerRepository) Record(ctx context.Context, entry *repository.LedgerEntry) error {
	query := `
		INSERT INTO grade_requests
			(release, project, grade_type, title, outcome, error_code, grade, late_weeks, issue_number, run_id, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	return r.executor.QueryRowContext(
		ctx,
		query,
		entry.Release,
		entry.Project,
		entry.GradeType,
		entry.Title,
		entry.Outcome,
		entry.ErrorCode,
		nullableInt(entry.Grade),
		nullableInt(entry.LateWeeks),
		nullableInt(entry.IssueNumber),
		entry.RunID,
		entry.RequestedAt,
	).Scan(&entry.ID)
}

func (r *ledgerRepository) ListRecent(ctx context.Context, limit int) ([]*repository.LedgerEntry, error) {
	query := `
		SELECT id, release, project, grade_type, title, outcome, error_code, grade, late_weeks, issue_number, run_id, requested_at
		FROM grade_requests
		ORDER BY requested_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.executor.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*repository.LedgerEntry
	for rows.Next() {
		entry := &repository.LedgerEntry{}
		var grade, lateWeeks, issueNumber sql.NullInt64

		err := rows.Scan(
			&entry.ID,
			&entry.Release,
			&entry.Project,
			&entry.GradeType,
			&entry.Title,
			&entry.Outcome,
			&entry.ErrorCode,
			&grade,
			&lateWeeks,
			&issueNumber,
			&entry.RunID,
			&entry.RequestedAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Grade = intPointer(grade)
		entry.LateWeeks = intPointer(lateWeeks)
		entry.IssueNumber = intPointer(issueNumber)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func nullableInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func intPointer(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	converted := int(value.Int64)
	return &converted
}
