// Package state persists the values resolved during the setup phase so the
// run phase can restore them in a later process. The file is a plain
// KEY=value blob, the same shape the Actions runner uses for its own state.
package state

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/usf-cs272/gradebot/internal/domain"
	"github.com/usf-cs272/gradebot/internal/release"
)

const (
	KeyRelease     = "release"
	KeyType        = "type"
	KeyReleaseDate = "releaseDate"
	KeyReleaseURL  = "releaseUrl"
	KeyActor       = "actor"
	KeyRunID       = "runId"
	KeyRunNumber   = "runNumber"
	KeyRunURL      = "runUrl"
)

// requiredKeys are the values the run phase cannot proceed without
var requiredKeys = []string{
	KeyRelease,
	KeyType,
	KeyReleaseDate,
	KeyReleaseURL,
	KeyActor,
	KeyRunID,
	KeyRunNumber,
	KeyRunURL,
}

type Store struct {
	path string
}

// NewStore creates a Store over the given state file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save writes the state values, replacing any previous state
func (s *Store) Save(values map[string]string) error {
	if err := godotenv.Write(values, s.path); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Restore reads the state values saved by the setup phase
func (s *Store) Restore() (map[string]string, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to restore state: %w", err)
	}
	return values, nil
}

// BuildRequest assembles the immutable GradeRequest from restored state.
// Every required key must be present and non-empty, the release date must be
// an ISO-8601 timestamp, and the release tag must encode a project number.
func BuildRequest(values map[string]string) (domain.GradeRequest, error) {
	for _, key := range requiredKeys {
		if values[key] == "" {
			return domain.GradeRequest{}, domain.NewMissingStateError(key)
		}
	}

	project, err := release.ParseProject(values[KeyRelease])
	if err != nil {
		return domain.GradeRequest{}, err
	}

	createdAt, err := time.Parse(time.RFC3339, values[KeyReleaseDate])
	if err != nil {
		return domain.GradeRequest{}, &domain.DomainError{
			Code:    "MISSING_STATE",
			Message: fmt.Sprintf("state value %q is not a valid timestamp: %q", KeyReleaseDate, values[KeyReleaseDate]),
		}
	}

	return domain.GradeRequest{
		Project:          project,
		Type:             domain.GradeType(values[KeyType]),
		Release:          values[KeyRelease],
		ReleaseCreatedAt: createdAt,
		ReleaseURL:       values[KeyReleaseURL],
		Actor:            values[KeyActor],
		RunID:            values[KeyRunID],
		RunNumber:        values[KeyRunNumber],
		RunURL:           values[KeyRunURL],
	}, nil
}
