package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/usf-cs272/gradebot/internal/actions"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/release"
	"github.com/usf-cs272/gradebot/internal/state"
	"github.com/usf-cs272/gradebot/internal/tracker"
)

// SetupService is the input-verification phase. It normalizes the requested
// grade type, confirms the release actually exists in the repository, and
// persists everything the run phase needs into the state store.
type SetupService interface {
	Run(ctx context.Context, typeInput, releaseInput string) error
}

type setupService struct {
	tracker tracker.IssueTracker
	store   *state.Store
	logger  *actions.Logger
	getenv  func(string) string
}

// NewSetupService creates a SetupService; getenv defaults to os.Getenv when nil
func NewSetupService(issueTracker tracker.IssueTracker, store *state.Store, logger *actions.Logger, getenv func(string) string) SetupService {
	if getenv == nil {
		getenv = os.Getenv
	}

	return &setupService{
		tracker: issueTracker,
		store:   store,
		logger:  logger,
		getenv:  getenv,
	}
}

func (s *setupService) Run(ctx context.Context, typeInput, releaseInput string) error {
	s.logger.StartGroup("Verifying request input...")

	s.logger.Info("Checking request type: %s", typeInput)
	gradeType, err := domain.ParseGradeType(typeInput)
	if err != nil {
		return err
	}
	s.logger.Info("Requesting project %s grade.", gradeType.Label())

	if releaseInput == "" {
		return domain.NewInvalidReleaseTagError(releaseInput)
	}

	// reject a malformed tag before spending an API call on it
	if _, err := release.ParseProject(releaseInput); err != nil {
		return err
	}

	s.logger.Info("Getting release %s...", releaseInput)
	fetched, err := s.tracker.GetReleaseByTag(ctx, releaseInput)
	if err != nil {
		return fmt.Errorf("unable to verify release %s: %w", releaseInput, err)
	}
	s.logger.Info("Release %s created at %s.", fetched.Tag, fetched.CreatedAt.UTC().Format(time.RFC3339))

	values := map[string]string{
		state.KeyRelease:     fetched.Tag,
		state.KeyType:        string(gradeType),
		state.KeyReleaseDate: fetched.CreatedAt.UTC().Format(time.RFC3339),
		state.KeyReleaseURL:  fetched.URL,
		state.KeyActor:       s.getenv("GITHUB_ACTOR"),
		state.KeyRunID:       s.getenv("GITHUB_RUN_ID"),
		state.KeyRunNumber:   s.getenv("GITHUB_RUN_NUMBER"),
		state.KeyRunURL:      s.runURL(),
	}

	if err := s.store.Save(values); err != nil {
		return err
	}

	s.logger.EndGroup()
	return nil
}

// runURL rebuilds the workflow run link from the runner environment
func (s *setupService) runURL() string {
	server := s.getenv("GITHUB_SERVER_URL")
	if server == "" {
		server = "https://github.com"
	}

	return fmt.Sprintf("%s/%s/actions/runs/%s",
		server,
		s.getenv("GITHUB_REPOSITORY"),
		s.getenv("GITHUB_RUN_ID"),
	)
}
