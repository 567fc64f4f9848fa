package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/repository"
)

type MockIssueTracker struct {
	mock.Mock
}

func (m *MockIssueTracker) ListIssuesByLabels(ctx context.Context, labels []string) ([]domain.Issue, error) {
	args := m.Called(ctx, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Issue), args.Error(1)
}

func (m *MockIssueTracker) ListMilestones(ctx context.Context) ([]domain.Milestone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Milestone), args.Error(1)
}

func (m *MockIssueTracker) CreateMilestone(ctx context.Context, title, description string) (domain.Milestone, error) {
	args := m.Called(ctx, title, description)
	return args.Get(0).(domain.Milestone), args.Error(1)
}

func (m *MockIssueTracker) CreateIssue(ctx context.Context, issue domain.NewIssue) (domain.Issue, error) {
	args := m.Called(ctx, issue)
	return args.Get(0).(domain.Issue), args.Error(1)
}

func (m *MockIssueTracker) CreateComment(ctx context.Context, issueNumber int, body string) error {
	args := m.Called(ctx, issueNumber, body)
	return args.Error(0)
}

func (m *MockIssueTracker) CloseIssue(ctx context.Context, issueNumber int) error {
	args := m.Called(ctx, issueNumber)
	return args.Error(0)
}

func (m *MockIssueTracker) GetReleaseByTag(ctx context.Context, tag string) (domain.Release, error) {
	args := m.Called(ctx, tag)
	return args.Get(0).(domain.Release), args.Error(1)
}

type MockGuardService struct {
	mock.Mock
}

func (m *MockGuardService) Classify(ctx context.Context, request domain.GradeRequest) (GuardResult, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(GuardResult), args.Error(1)
}

type MockMilestoneService struct {
	mock.Mock
}

func (m *MockMilestoneService) Resolve(ctx context.Context, project int) (domain.Milestone, error) {
	args := m.Called(ctx, project)
	return args.Get(0).(domain.Milestone), args.Error(1)
}

type MockWorkflowService struct {
	mock.Mock
}

func (m *MockWorkflowService) Run(ctx context.Context, request domain.GradeRequest, result domain.GradeResult) (domain.Issue, error) {
	args := m.Called(ctx, request, result)
	return args.Get(0).(domain.Issue), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Record(ctx context.Context, entry *repository.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListRecent(ctx context.Context, limit int) ([]*repository.LedgerEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.LedgerEntry), args.Error(1)
}
