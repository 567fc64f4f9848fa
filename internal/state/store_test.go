package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usf-cs272/gradebot/internal/domain"
)

func validState() map[string]string {
	return map[string]string{
		KeyRelease:     "v2.3.1",
		KeyType:        "Functionality",
		KeyReleaseDate: "2024-03-10T10:00:00Z",
		KeyReleaseURL:  "https://github.com/student/project/releases/tag/v2.3.1",
		KeyActor:       "octostudent",
		KeyRunID:       "8675309",
		KeyRunNumber:   "12",
		KeyRunURL:      "https://github.com/student/project/actions/runs/8675309",
	}
}

func TestStore_SaveRestore(t *testing.T) {
	t.Run("saved values restore in a fresh store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.env")
		require.NoError(t, NewStore(path).Save(validState()))

		restored, err := NewStore(path).Restore()
		require.NoError(t, err)
		assert.Equal(t, validState(), restored)
	})

	t.Run("restore fails when setup never ran", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "state.env")

		_, err := NewStore(path).Restore()
		require.Error(t, err)
	})
}

func TestBuildRequest(t *testing.T) {
	t.Run("complete state builds the request", func(t *testing.T) {
		request, err := BuildRequest(validState())
		require.NoError(t, err)

		assert.Equal(t, 2, request.Project)
		assert.Equal(t, domain.GradeFunctionality, request.Type)
		assert.Equal(t, "v2.3.1", request.Release)
		assert.Equal(t, time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC), request.ReleaseCreatedAt.UTC())
		assert.Equal(t, "Project v2.3.1 Functionality Grade", request.Title())
		assert.Equal(t, "project2", request.ProjectLabel())
	})

	t.Run("each missing key is fatal", func(t *testing.T) {
		for _, key := range requiredKeys {
			values := validState()
			delete(values, key)

			_, err := BuildRequest(values)
			require.Error(t, err, "key %s", key)
			assert.ErrorIs(t, err, domain.ErrMissingState, "key %s", key)
			assert.Contains(t, err.Error(), key)
		}
	})

	t.Run("unparseable release tag is fatal", func(t *testing.T) {
		values := validState()
		values[KeyRelease] = "v9.0.0"

		_, err := BuildRequest(values)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidReleaseTag)
	})

	t.Run("unparseable release date is fatal", func(t *testing.T) {
		values := validState()
		values[KeyReleaseDate] = "March 10th"

		_, err := BuildRequest(values)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrMissingState)
	})
}
