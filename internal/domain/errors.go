package domain

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on the error code so callers can use errors.Is()
func (e *DomainError) Is(target error) bool {
	if t, ok := target.(*DomainError); ok {
		return e.Code == t.Code
	}
	return false
}

var (
	// ErrInvalidReleaseTag - the release tag does not encode a project number
	ErrInvalidReleaseTag = &DomainError{
		Code:    "INVALID_RELEASE_TAG",
		Message: "unable to parse project from release tag",
	}

	// ErrUnknownDeadline - no deadline configured for the (type, project) pair
	ErrUnknownDeadline = &DomainError{
		Code:    "UNKNOWN_DEADLINE",
		Message: "no deadline configured for this project and grade type",
	}

	// ErrUnsupportedGradeType - the requested type is neither functionality nor design
	ErrUnsupportedGradeType = &DomainError{
		Code:    "UNSUPPORTED_GRADE_TYPE",
		Message: "not a valid project grade type",
	}

	// ErrDuplicateRequest - an issue with the exact computed title already exists
	ErrDuplicateRequest = &DomainError{
		Code:    "DUPLICATE_REQUEST",
		Message: "a grade request with this title already exists",
	}

	// ErrAmbiguousPriorIssues - prior issues for the project make the request ambiguous
	ErrAmbiguousPriorIssues = &DomainError{
		Code:    "AMBIGUOUS_PRIOR_ISSUES",
		Message: "prior issues exist for this project",
	}

	// ErrMilestoneFailed - the project milestone could not be listed or created
	ErrMilestoneFailed = &DomainError{
		Code:    "MILESTONE_FAILED",
		Message: "unable to resolve project milestone",
	}

	// ErrWorkflowFailed - an issue tracker call failed mid-workflow
	ErrWorkflowFailed = &DomainError{
		Code:    "WORKFLOW_FAILED",
		Message: "issue workflow failed",
	}

	// ErrNotSupported - the requested feature is intentionally incomplete
	ErrNotSupported = &DomainError{
		Code:    "NOT_SUPPORTED",
		Message: "this grade type is not yet supported",
	}

	// ErrMissingState - a required key is absent from the restored state
	ErrMissingState = &DomainError{
		Code:    "MISSING_STATE",
		Message: "required state value is missing",
	}

	// ErrInvalidSchedule - the deadline schedule failed load-time validation
	ErrInvalidSchedule = &DomainError{
		Code:    "INVALID_SCHEDULE",
		Message: "grading schedule is invalid",
	}
)

// NewInvalidReleaseTagError creates an INVALID_RELEASE_TAG error naming the offending tag
func NewInvalidReleaseTagError(tag string) *DomainError {
	return &DomainError{
		Code:    "INVALID_RELEASE_TAG",
		Message: fmt.Sprintf("unable to parse project from release %s", tag),
	}
}

// NewUnknownDeadlineError creates an UNKNOWN_DEADLINE error for a (type, project) pair
func NewUnknownDeadlineError(gradeType string, project int) *DomainError {
	return &DomainError{
		Code:    "UNKNOWN_DEADLINE",
		Message: fmt.Sprintf("no %s deadline configured for project %d", gradeType, project),
	}
}

// NewUnsupportedGradeTypeError creates an UNSUPPORTED_GRADE_TYPE error naming the value
func NewUnsupportedGradeTypeError(value string) *DomainError {
	return &DomainError{
		Code:    "UNSUPPORTED_GRADE_TYPE",
		Message: fmt.Sprintf("the value %q is not a valid project grade type", value),
	}
}

// NewDuplicateRequestError creates a DUPLICATE_REQUEST error naming the conflicting title
func NewDuplicateRequestError(title string) *DomainError {
	return &DomainError{
		Code:    "DUPLICATE_REQUEST",
		Message: fmt.Sprintf("an issue titled %q already exists", title),
	}
}

// NewAmbiguousPriorIssuesError creates an AMBIGUOUS_PRIOR_ISSUES error with the issue count
func NewAmbiguousPriorIssuesError(count, project int) *DomainError {
	return &DomainError{
		Code:    "AMBIGUOUS_PRIOR_ISSUES",
		Message: fmt.Sprintf("found %d prior issues for project %d", count, project),
	}
}

// NewMissingStateError creates a MISSING_STATE error naming the absent key
func NewMissingStateError(key string) *DomainError {
	return &DomainError{
		Code:    "MISSING_STATE",
		Message: fmt.Sprintf("required state value %q is missing", key),
	}
}

// NewWorkflowFailedError creates a WORKFLOW_FAILED error naming the step that failed
func NewWorkflowFailedError(step string, cause error) *DomainError {
	return &DomainError{
		Code:    "WORKFLOW_FAILED",
		Message: fmt.Sprintf("issue workflow failed at step %s: %v", step, cause),
	}
}
