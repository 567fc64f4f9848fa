package repository

import (
	"context"
	"time"
)

// LedgerEntry records one processed grade request, accepted or failed. The
// ledger is an audit trail for the teaching staff; it observes the workflow
// and never gates it.
type LedgerEntry struct {
	ID          int
	Release     string
	Project     int
	GradeType   string
	Title       string
	Outcome     string
	ErrorCode   string
	Grade       *int
	LateWeeks   *int
	IssueNumber *int
	RunID       string
	RequestedAt time.Time
}

const (
	OutcomeAccepted = "accepted"
	OutcomeFailed   = "failed"
)

type LedgerRepository interface {
	Record(ctx context.Context, entry *LedgerEntry) error
	ListRecent(ctx context.Context, limit int) ([]*LedgerEntry, error)
}
