package domain

import (
	"fmt"
	"time"
)

type GradeType string

const (
	GradeFunctionality GradeType = "Functionality"
	GradeDesign        GradeType = "Design"
)

const gradeTypeUsage = `Grade types must start with "f" for functionality (test) grades or "d" for design (code review) grades.`

// ParseGradeType normalizes a raw grade type input. Only the first letter is
// significant: "f"/"F" requests a functionality grade, "d"/"D" a design grade.
func ParseGradeType(value string) (GradeType, error) {
	if value == "" {
		return "", &DomainError{
			Code:    "UNSUPPORTED_GRADE_TYPE",
			Message: fmt.Sprintf("missing required project grade type. %s", gradeTypeUsage),
		}
	}

	switch value[0] {
	case 'f', 'F':
		return GradeFunctionality, nil
	case 'd', 'D':
		return GradeDesign, nil
	default:
		return "", &DomainError{
			Code:    "UNSUPPORTED_GRADE_TYPE",
			Message: fmt.Sprintf("the value %q is not a valid project grade type. %s", value, gradeTypeUsage),
		}
	}
}

// Label returns the lowercase form used as an issue label and schedule key
func (t GradeType) Label() string {
	switch t {
	case GradeFunctionality:
		return "functionality"
	case GradeDesign:
		return "design"
	default:
		return string(t)
	}
}

// GradeRequest is the immutable per-invocation request, built once from the
// state restored after the setup phase and passed by parameter from there on.
type GradeRequest struct {
	Project          int
	Type             GradeType
	Release          string
	ReleaseCreatedAt time.Time
	ReleaseURL       string
	Actor            string
	RunID            string
	RunNumber        string
	RunURL           string
}

// Title returns the tracking issue title for this request. Titles are the
// identity under which duplicate requests are detected, so the format must
// stay stable across releases of this tool.
func (r GradeRequest) Title() string {
	return fmt.Sprintf("Project %s %s Grade", r.Release, r.Type)
}

// ProjectLabel returns the per-project issue label, e.g. "project2"
func (r GradeRequest) ProjectLabel() string {
	return fmt.Sprintf("project%d", r.Project)
}

// GradeResult is the computed grade for a request. It is derived output,
// recomputed on every run and never persisted.
type GradeResult struct {
	CreatedLocal  string
	DeadlineLocal string
	LateWeeks     int
	Grade         int
}
