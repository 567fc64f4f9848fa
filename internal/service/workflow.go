package service

import (
	"context"

	"github.com/usf-cs272/gradebot/internal/actions"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/grading"
	"github.com/usf-cs272/gradebot/internal/tracker"
)

// The workflow is a linear state machine with no back-edges. Each step name
// is carried in the WORKFLOW_FAILED error so a human knows exactly how far
// the run got; nothing is rolled back on failure, a created-but-unfinished
// issue is left for manual follow-up.
const (
	StepRenderBody = "render-body"
	StepCreate     = "create-issue"
	StepComment    = "post-comment"
	StepClose      = "close-issue"
)

// WorkflowService drives a fresh grade request from rendered body to closed
// issue. Closing is deliberate: the student must take an explicit, auditable
// action (re-opening) to accept the computed grade, so a silently-wrong grade
// cannot slip through unnoticed.
type WorkflowService interface {
	Run(ctx context.Context, request domain.GradeRequest, result domain.GradeResult) (domain.Issue, error)
}

type workflowService struct {
	tracker    tracker.IssueTracker
	milestones MilestoneService
	schedule   *grading.Schedule
	logger     *actions.Logger
}

// NewWorkflowService creates a WorkflowService over the issue tracker
func NewWorkflowService(
	issueTracker tracker.IssueTracker,
	milestones MilestoneService,
	schedule *grading.Schedule,
	logger *actions.Logger,
) WorkflowService {
	return &workflowService{
		tracker:    issueTracker,
		milestones: milestones,
		schedule:   schedule,
		logger:     logger,
	}
}

func (s *workflowService) Run(ctx context.Context, request domain.GradeRequest, result domain.GradeResult) (domain.Issue, error) {
	milestone, err := s.milestones.Resolve(ctx, request.Project)
	if err != nil {
		return domain.Issue{}, err
	}

	body, err := renderIssueBody(s.schedule.Name(request.Project), request, result)
	if err != nil {
		return domain.Issue{}, domain.NewWorkflowFailedError(StepRenderBody, err)
	}

	s.logger.Info("Creating %s issue...", request.Type.Label())
	issue, err := s.tracker.CreateIssue(ctx, domain.NewIssue{
		Title:     request.Title(),
		Body:      body,
		Assignee:  s.schedule.Assignee(request.Type),
		Labels:    []string{request.ProjectLabel(), request.Type.Label()},
		Milestone: milestone.Number,
	})
	if err != nil {
		return domain.Issue{}, domain.NewWorkflowFailedError(StepCreate, err)
	}
	s.logger.Info("Created issue #%d.", issue.Number)

	comment, err := renderIssueComment(request.Actor)
	if err != nil {
		return issue, domain.NewWorkflowFailedError(StepComment, err)
	}

	if err := s.tracker.CreateComment(ctx, issue.Number, comment); err != nil {
		return issue, domain.NewWorkflowFailedError(StepComment, err)
	}
	s.logger.Info("Posted instructions on issue #%d.", issue.Number)

	if err := s.tracker.CloseIssue(ctx, issue.Number); err != nil {
		return issue, domain.NewWorkflowFailedError(StepClose, err)
	}
	s.logger.Info("Closed issue #%d pending student acknowledgment.", issue.Number)

	issue.State = "closed"
	return issue, nil
}
