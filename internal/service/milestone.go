package service

import (
	"context"
	"fmt"

	"github.com/usf-cs272/gradebot/internal/actions"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/grading"
	"github.com/usf-cs272/gradebot/internal/tracker"
)

// MilestoneService resolves the per-project milestone, creating it on first
// use. Lookup is by exact title match and an existing milestone is reused
// as-is, with no field reconciliation. Two concurrent first-time requests for
// the same project could both create the milestone; invocations are
// serialized by the upstream trigger (one run per release push), so the race
// is accepted rather than locked away.
type MilestoneService interface {
	Resolve(ctx context.Context, project int) (domain.Milestone, error)
}

type milestoneService struct {
	tracker  tracker.IssueTracker
	schedule *grading.Schedule
	logger   *actions.Logger
}

// NewMilestoneService creates a MilestoneService over the issue tracker
func NewMilestoneService(issueTracker tracker.IssueTracker, schedule *grading.Schedule, logger *actions.Logger) MilestoneService {
	return &milestoneService{
		tracker:  issueTracker,
		schedule: schedule,
		logger:   logger,
	}
}

func (s *milestoneService) Resolve(ctx context.Context, project int) (domain.Milestone, error) {
	title := fmt.Sprintf("Project %d", project)

	s.logger.Info("Listing milestones...")
	milestones, err := s.tracker.ListMilestones(ctx)
	if err != nil {
		return domain.Milestone{}, &domain.DomainError{
			Code:    "MILESTONE_FAILED",
			Message: fmt.Sprintf("unable to list milestones: %v", err),
		}
	}

	for _, milestone := range milestones {
		if milestone.Title == title {
			s.logger.Info("Found %s milestone.", milestone.Title)
			return milestone, nil
		}
	}

	description := fmt.Sprintf("Project %d %s", project, s.schedule.Name(project))
	created, err := s.tracker.CreateMilestone(ctx, title, description)
	if err != nil {
		return domain.Milestone{}, &domain.DomainError{
			Code:    "MILESTONE_FAILED",
			Message: fmt.Sprintf("unable to create %s milestone: %v", title, err),
		}
	}

	s.logger.Info("Created %s milestone.", created.Title)
	return created, nil
}
