package service

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/usf-cs272/gradebot/internal/domain"
)

// The body embeds placeholders the student must fill in by hand; the
// close-and-reopen handoff exists so nobody finalizes a grade without doing
// that.
const issueBodyTemplate = `## Student Information

  - **Full Name:** [FULL_NAME]
  - **USF Email:** [USERNAME]

## Project Information

  - **Project:** Project {{.Project}} {{.ProjectName}}
  - **{{.Type}} Deadline:** {{.DeadlineLocal}}
  - **Release:** [{{.Release}}]({{.ReleaseURL}})
  - **Release Created:** {{.CreatedLocal}}
  - **Release Verified:** [run {{.RunNumber}}]({{.RunURL}})

## Grade Information

  - **{{.Type}} Grade:** {{.Grade}}%
  - **Late Penalty:** {{.Penalty}}%
  - **Weeks Late:** {{.LateWeeks}}
`

const issueCommentTemplate = `@{{.Actor}} this grade request has been processed, but the grade is **not final** until you complete the checklist below and re-open this issue:

- [ ] Replace the ` + "`[FULL_NAME]`" + ` and ` + "`[USERNAME]`" + ` placeholders in the issue body with your details.
- [ ] Verify the issue labels, assignee, and milestone match your project and grade type.
- [ ] Verify the computed release date, deadline, and grade above.

Re-open this issue once everything is correct. Your instructor will enter the final grade afterwards.
`

type issueBodyData struct {
	Project       int
	ProjectName   string
	Type          domain.GradeType
	Release       string
	ReleaseURL    string
	RunNumber     string
	RunURL        string
	CreatedLocal  string
	DeadlineLocal string
	Grade         int
	Penalty       int
	LateWeeks     int
}

var (
	bodyTemplate    = template.Must(template.New("body").Parse(issueBodyTemplate))
	commentTemplate = template.Must(template.New("comment").Parse(issueCommentTemplate))
)

func renderIssueBody(projectName string, request domain.GradeRequest, result domain.GradeResult) (string, error) {
	data := issueBodyData{
		Project:       request.Project,
		ProjectName:   projectName,
		Type:          request.Type,
		Release:       request.Release,
		ReleaseURL:    request.ReleaseURL,
		RunNumber:     request.RunNumber,
		RunURL:        request.RunURL,
		CreatedLocal:  result.CreatedLocal,
		DeadlineLocal: result.DeadlineLocal,
		Grade:         result.Grade,
		Penalty:       10 * result.LateWeeks,
		LateWeeks:     result.LateWeeks,
	}

	var builder strings.Builder
	if err := bodyTemplate.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("failed to render issue body: %w", err)
	}

	return builder.String(), nil
}

func renderIssueComment(actor string) (string, error) {
	var builder strings.Builder
	err := commentTemplate.Execute(&builder, struct{ Actor string }{Actor: actor})
	if err != nil {
		return "", fmt.Errorf("failed to render issue comment: %w", err)
	}

	return builder.String(), nil
}
