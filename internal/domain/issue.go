package domain

import "time"

// Issue is the subset of a tracking issue this system reads or writes
type Issue struct {
	Number    int
	Title     string
	State     string
	URL       string
	Milestone *Milestone
}

// NewIssue carries everything a tracking issue is created with in a single
// call: milestone, labels and assignee are set at creation time, not attached
// afterwards.
type NewIssue struct {
	Title     string
	Body      string
	Assignee  string
	Labels    []string
	Milestone int
}

// Milestone is a repository-level grouping object, one per project
type Milestone struct {
	Number      int
	Title       string
	Description string
	State       string
}

// Release is the released submission a grade is requested for
type Release struct {
	Tag       string
	URL       string
	CreatedAt time.Time
}
