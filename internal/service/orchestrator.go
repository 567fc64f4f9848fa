package service

import (
	"context"
	"errors"
	"time"

	"github.com/usf-cs272/gradebot/internal/actions"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/grading"
	"github.com/usf-cs272/gradebot/internal/repository"
)

// Orchestrator runs one grade request end to end and maps every failure to a
// single returned error; nothing escapes uncaught. The caller reports the
// error and sets the failed exit status.
type Orchestrator interface {
	Run(ctx context.Context, request domain.GradeRequest) error
}

type orchestrator struct {
	guard      GuardService
	calculator *grading.Calculator
	workflow   WorkflowService
	ledger     repository.LedgerRepository
	logger     *actions.Logger
	now        func() time.Time
}

// NewOrchestrator creates an Orchestrator; ledger may be nil when the audit
// trail is not configured
func NewOrchestrator(
	guard GuardService,
	calculator *grading.Calculator,
	workflow WorkflowService,
	ledger repository.LedgerRepository,
	logger *actions.Logger,
) Orchestrator {
	return &orchestrator{
		guard:      guard,
		calculator: calculator,
		workflow:   workflow,
		ledger:     ledger,
		logger:     logger,
		now:        time.Now,
	}
}

func (o *orchestrator) Run(ctx context.Context, request domain.GradeRequest) error {
	o.logger.Info("Requesting %s...", request.Title())

	entry := &repository.LedgerEntry{
		Release:     request.Release,
		Project:     request.Project,
		GradeType:   string(request.Type),
		Title:       request.Title(),
		RunID:       request.RunID,
		RequestedAt: o.now(),
	}

	var err error
	switch request.Type {
	case domain.GradeFunctionality:
		err = o.runFunctionality(ctx, request, entry)
	case domain.GradeDesign:
		err = o.runDesign(ctx, request)
	default:
		err = domain.NewUnsupportedGradeTypeError(string(request.Type))
	}

	if err != nil {
		entry.Outcome = repository.OutcomeFailed
		entry.ErrorCode = errorCode(err)
	} else {
		entry.Outcome = repository.OutcomeAccepted
	}

	o.record(ctx, entry)
	return err
}

func (o *orchestrator) runFunctionality(ctx context.Context, request domain.GradeRequest, entry *repository.LedgerEntry) error {
	verdict, err := o.guard.Classify(ctx, request)
	if err != nil {
		return err
	}

	switch verdict.Classification {
	case ClassificationExactDuplicate:
		return domain.NewDuplicateRequestError(request.Title())
	case ClassificationAmbiguous:
		// prior functionality issues under other releases are suspicious but
		// not disqualifying; surface them and proceed
		o.logger.Warning("Found %d prior functionality issues for project %d. Are you sure you need to make a new request?",
			verdict.PriorCount, request.Project)
	}

	o.logger.StartGroup("Calculating grade...")
	result, err := o.calculator.Compute(request.ReleaseCreatedAt, request.Project, request.Type)
	if err != nil {
		return err
	}

	o.logger.Info("Release created: %s", result.CreatedLocal)
	o.logger.Info("%s deadline: %s", request.Type, result.DeadlineLocal)
	if result.LateWeeks == 0 {
		o.logger.Info("Release created before deadline!")
	} else {
		o.logger.Info("Release is %d week(s) late; %d%% penalty applied.", result.LateWeeks, 10*result.LateWeeks)
	}
	o.logger.EndGroup()

	o.logger.StartGroup("Creating functionality issue...")
	issue, err := o.workflow.Run(ctx, request, result)
	if err != nil {
		return err
	}
	o.logger.EndGroup()

	entry.Grade = &result.Grade
	entry.LateWeeks = &result.LateWeeks
	entry.IssueNumber = &issue.Number
	return nil
}

// runDesign fails closed: design grading additionally requires verifying a
// prior approved functionality issue, which is not implemented yet, so
// nothing may be created on this path.
func (o *orchestrator) runDesign(ctx context.Context, request domain.GradeRequest) error {
	verdict, err := o.guard.Classify(ctx, request)
	if err != nil {
		return err
	}

	switch verdict.Classification {
	case ClassificationExactDuplicate:
		return domain.NewDuplicateRequestError(request.Title())
	case ClassificationAmbiguous:
		return domain.NewAmbiguousPriorIssuesError(verdict.PriorCount, request.Project)
	}

	return &domain.DomainError{
		Code:    "NOT_SUPPORTED",
		Message: "design grade requests are not yet supported; ask your instructor to review the release directly",
	}
}

// record appends the outcome to the audit ledger. Ledger problems are
// reported as warnings only; the grade request itself already succeeded or
// failed on its own terms.
func (o *orchestrator) record(ctx context.Context, entry *repository.LedgerEntry) {
	if o.ledger == nil {
		return
	}

	if err := o.ledger.Record(ctx, entry); err != nil {
		o.logger.Warning("Unable to record request in the grading ledger: %v", err)
	}
}

func errorCode(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL_ERROR"
}
