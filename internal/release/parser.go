package release

import (
	"regexp"
	"strconv"

	"github.com/usf-cs272/gradebot/internal/domain"
)

// Release tags look like v2.3.1: the major component is the project number.
// Only projects 1 through 4 exist, so anything else is rejected outright.
var tagPattern = regexp.MustCompile(`^v([1-4])\.(\d+)\.(\d+)$`)

// ParseProject extracts the project number from a release tag
func ParseProject(tag string) (int, error) {
	matched := tagPattern.FindStringSubmatch(tag)
	if matched == nil {
		return 0, domain.NewInvalidReleaseTagError(tag)
	}

	project, err := strconv.Atoi(matched[1])
	if err != nil {
		return 0, domain.NewInvalidReleaseTagError(tag)
	}

	return project, nil
}
