package service

import (
	"context"

	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/tracker"
)

// Classification is the duplicate guard's verdict on a grade request
type Classification int

const (
	// ClassificationFresh - no prior issues stand in the way
	ClassificationFresh Classification = iota
	// ClassificationExactDuplicate - an issue with the exact computed title exists
	ClassificationExactDuplicate
	// ClassificationAmbiguous - prior issues exist under different titles
	ClassificationAmbiguous
)

// GuardResult carries the classification and how many prior issues were found
type GuardResult struct {
	Classification Classification
	PriorCount     int
}

// GuardService is the idempotency guard run before any mutating call. Issue
// and milestone creation are not transactional against the rest of the
// repository, so this read-then-classify check is the only protection against
// repeated or retried invocations creating duplicate tracking issues.
type GuardService interface {
	Classify(ctx context.Context, request domain.GradeRequest) (GuardResult, error)
}

type guardService struct {
	tracker tracker.IssueTracker
}

// NewGuardService creates a GuardService over the issue tracker
func NewGuardService(issueTracker tracker.IssueTracker) GuardService {
	return &guardService{tracker: issueTracker}
}

// Classify inspects existing tracking issues for the request's project.
// Functionality requests only compete with prior functionality issues, so the
// query filters on both labels. Design requests are additionally gated on the
// project's history as a whole, so the query filters on the project label
// alone. Issues in any state count: a closed grade issue is still a completed
// request.
func (s *guardService) Classify(ctx context.Context, request domain.GradeRequest) (GuardResult, error) {
	labels := []string{request.ProjectLabel()}
	if request.Type == domain.GradeFunctionality {
		labels = append(labels, request.Type.Label())
	}

	existing, err := s.tracker.ListIssuesByLabels(ctx, labels)
	if err != nil {
		return GuardResult{}, err
	}

	title := request.Title()
	for _, issue := range existing {
		if issue.Title == title {
			return GuardResult{
				Classification: ClassificationExactDuplicate,
				PriorCount:     len(existing),
			}, nil
		}
	}

	if len(existing) > 0 {
		return GuardResult{
			Classification: ClassificationAmbiguous,
			PriorCount:     len(existing),
		}, nil
	}

	return GuardResult{Classification: ClassificationFresh}, nil
}
