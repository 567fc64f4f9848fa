package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/grading"
)

func testResult() domain.GradeResult {
	return domain.GradeResult{
		CreatedLocal:  "Sun, 10 Mar 2024 03:00 PDT",
		DeadlineLocal: "Fri, 01 Mar 2024 23:59 PST",
		LateWeeks:     2,
		Grade:         80,
	}
}

func TestWorkflowService_Run(t *testing.T) {
	t.Run("full run creates, comments and closes", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		mockMilestones := new(MockMilestoneService)
		logger, log := testLogger()
		workflow := NewWorkflowService(mockTracker, mockMilestones, grading.DefaultSchedule(), logger)

		request := testRequest(domain.GradeFunctionality)
		result := testResult()

		mockMilestones.On("Resolve", mock.Anything, 2).
			Return(domain.Milestone{Number: 5, Title: "Project 2"}, nil).Once()
		mockTracker.On("CreateIssue", mock.Anything, mock.MatchedBy(func(issue domain.NewIssue) bool {
			return issue.Title == "Project v2.3.1 Functionality Grade" &&
				issue.Assignee == "cs272-grader" &&
				issue.Milestone == 5
		})).Return(domain.Issue{Number: 42, Title: "Project v2.3.1 Functionality Grade", State: "open"}, nil).Once()
		mockTracker.On("CreateComment", mock.Anything, 42, mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "@octostudent") && strings.Contains(body, "re-open")
		})).Return(nil).Once()
		mockTracker.On("CloseIssue", mock.Anything, 42).Return(nil).Once()

		issue, err := workflow.Run(context.Background(), request, result)

		require.NoError(t, err)
		assert.Equal(t, 42, issue.Number)
		assert.Equal(t, "closed", issue.State)
		assert.Contains(t, log.String(), "Created issue #42.")
		assert.Contains(t, log.String(), "Closed issue #42")
		mockTracker.AssertExpectations(t)
		mockMilestones.AssertExpectations(t)
	})

	t.Run("issue body embeds project, release and grade details", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		mockMilestones := new(MockMilestoneService)
		logger, _ := testLogger()
		workflow := NewWorkflowService(mockTracker, mockMilestones, grading.DefaultSchedule(), logger)

		request := testRequest(domain.GradeFunctionality)
		result := testResult()

		var body string
		mockMilestones.On("Resolve", mock.Anything, 2).
			Return(domain.Milestone{Number: 5}, nil).Once()
		mockTracker.On("CreateIssue", mock.Anything, mock.MatchedBy(func(issue domain.NewIssue) bool {
			body = issue.Body
			return true
		})).Return(domain.Issue{Number: 42}, nil).Once()
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).Return(nil).Once()
		mockTracker.On("CloseIssue", mock.Anything, 42).Return(nil).Once()

		_, err := workflow.Run(context.Background(), request, result)
		require.NoError(t, err)

		assert.Contains(t, body, "[FULL_NAME]")
		assert.Contains(t, body, "[USERNAME]")
		assert.Contains(t, body, "Project 2 Partial Search")
		assert.Contains(t, body, "[v2.3.1](https://github.com/student/project/releases/tag/v2.3.1)")
		assert.Contains(t, body, "Fri, 01 Mar 2024 23:59 PST")
		assert.Contains(t, body, "Sun, 10 Mar 2024 03:00 PDT")
		assert.Contains(t, body, "80%")
		assert.Contains(t, body, "20%")
		assert.Contains(t, body, "[run 12](https://github.com/student/project/actions/runs/8675309)")
	})

	t.Run("milestone failure aborts before any issue exists", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		mockMilestones := new(MockMilestoneService)
		logger, _ := testLogger()
		workflow := NewWorkflowService(mockTracker, mockMilestones, grading.DefaultSchedule(), logger)

		mockMilestones.On("Resolve", mock.Anything, 2).
			Return(domain.Milestone{}, domain.ErrMilestoneFailed).Once()

		_, err := workflow.Run(context.Background(), testRequest(domain.GradeFunctionality), testResult())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMilestoneFailed)
		mockTracker.AssertNotCalled(t, "CreateIssue", mock.Anything, mock.Anything)
	})

	t.Run("creation failure names the create step", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		mockMilestones := new(MockMilestoneService)
		logger, _ := testLogger()
		workflow := NewWorkflowService(mockTracker, mockMilestones, grading.DefaultSchedule(), logger)

		mockMilestones.On("Resolve", mock.Anything, 2).
			Return(domain.Milestone{Number: 5}, nil).Once()
		mockTracker.On("CreateIssue", mock.Anything, mock.Anything).
			Return(domain.Issue{}, errors.New("creating issue returned status 422")).Once()

		_, err := workflow.Run(context.Background(), testRequest(domain.GradeFunctionality), testResult())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrWorkflowFailed)
		assert.Contains(t, err.Error(), StepCreate)
	})

	t.Run("comment failure leaves the created issue in place", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		mockMilestones := new(MockMilestoneService)
		logger, _ := testLogger()
		workflow := NewWorkflowService(mockTracker, mockMilestones, grading.DefaultSchedule(), logger)

		mockMilestones.On("Resolve", mock.Anything, 2).
			Return(domain.Milestone{Number: 5}, nil).Once()
		mockTracker.On("CreateIssue", mock.Anything, mock.Anything).
			Return(domain.Issue{Number: 42}, nil).Once()
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).
			Return(errors.New("commenting returned status 502")).Once()

		issue, err := workflow.Run(context.Background(), testRequest(domain.GradeFunctionality), testResult())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrWorkflowFailed)
		assert.Contains(t, err.Error(), StepComment)
		// no rollback: the caller gets the orphaned issue for follow-up
		assert.Equal(t, 42, issue.Number)
		mockTracker.AssertNotCalled(t, "CloseIssue", mock.Anything, mock.Anything)
	})

	t.Run("close failure names the close step", func(t *testing.T) {
		mockTracker := new(MockIssueTracker)
		mockMilestones := new(MockMilestoneService)
		logger, _ := testLogger()
		workflow := NewWorkflowService(mockTracker, mockMilestones, grading.DefaultSchedule(), logger)

		mockMilestones.On("Resolve", mock.Anything, 2).
			Return(domain.Milestone{Number: 5}, nil).Once()
		mockTracker.On("CreateIssue", mock.Anything, mock.Anything).
			Return(domain.Issue{Number: 42}, nil).Once()
		mockTracker.On("CreateComment", mock.Anything, 42, mock.Anything).Return(nil).Once()
		mockTracker.On("CloseIssue", mock.Anything, 42).
			Return(errors.New("closing returned status 500")).Once()

		_, err := workflow.Run(context.Background(), testRequest(domain.GradeFunctionality), testResult())

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrWorkflowFailed)
		assert.Contains(t, err.Error(), StepClose)
	})
}
