package tracker

import (
	"context"

	"github.com/usf-cs272/gradebot/internal/domain"
)

// IssueTracker is the repository's issue and milestone surface as this system
// uses it. Every call is sequential and blocking; a non-success response is
// returned as an error carrying the protocol status.
type IssueTracker interface {
	// ListIssuesByLabels lists issues in any state carrying all given labels
	ListIssuesByLabels(ctx context.Context, labels []string) ([]domain.Issue, error)
	ListMilestones(ctx context.Context) ([]domain.Milestone, error)
	CreateMilestone(ctx context.Context, title, description string) (domain.Milestone, error)
	// CreateIssue opens an issue with title, body, labels, assignee and
	// milestone set in a single call
	CreateIssue(ctx context.Context, issue domain.NewIssue) (domain.Issue, error)
	CreateComment(ctx context.Context, issueNumber int, body string) error
	CloseIssue(ctx context.Context, issueNumber int) error
	// GetReleaseByTag fetches the release a grade is being requested for
	GetReleaseByTag(ctx context.Context, tag string) (domain.Release, error)
}
