package grading

import (
	"fmt"
	"os"
	"time"

	"github.com/usf-cs272/gradebot/internal/domain"
	"gopkg.in/yaml.v3"
)

// Projects are numbered 1 through 4; release tags encode the number in their
// major component.
const (
	MinProject = 1
	MaxProject = 4
)

const civilDateLayout = "2006-01-02"

// Schedule holds the per-semester grading configuration: one deadline per
// (grade type, project), a human-readable name per project, and a default
// assignee per grade type. A Schedule is validated at construction so a
// missing entry is a load-time error, not a surprise inside grade
// computation.
type Schedule struct {
	deadlines map[domain.GradeType]map[int]string
	names     map[int]string
	assignees map[domain.GradeType]string
}

// DefaultSchedule returns the compiled-in schedule for the current semester
func DefaultSchedule() *Schedule {
	s := &Schedule{
		deadlines: map[domain.GradeType]map[int]string{
			domain.GradeFunctionality: {
				1: "2024-02-09",
				2: "2024-03-01",
				3: "2024-04-05",
				4: "2024-05-10",
			},
			domain.GradeDesign: {
				1: "2024-03-01",
				2: "2024-03-22",
				3: "2024-04-26",
				4: "2024-05-17",
			},
		},
		names: map[int]string{
			1: "Inverted Index",
			2: "Partial Search",
			3: "Multithreading",
			4: "Search Engine",
		},
		assignees: map[domain.GradeType]string{
			domain.GradeFunctionality: "cs272-grader",
			domain.GradeDesign:        "cs272-reviewer",
		},
	}

	// the compiled-in table must always pass its own validation
	if err := s.validate(); err != nil {
		panic(fmt.Sprintf("default schedule is invalid: %v", err))
	}

	return s
}

type scheduleProject struct {
	Name          string `yaml:"name"`
	Functionality string `yaml:"functionality"`
	Design        string `yaml:"design"`
}

type scheduleFile struct {
	Projects  map[int]scheduleProject `yaml:"projects"`
	Assignees map[string]string       `yaml:"assignees"`
}

// LoadSchedule reads a semester schedule from a yaml file and validates it
func LoadSchedule(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	var file scheduleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse schedule file: %w", err)
	}

	s := &Schedule{
		deadlines: map[domain.GradeType]map[int]string{
			domain.GradeFunctionality: {},
			domain.GradeDesign:        {},
		},
		names:     map[int]string{},
		assignees: map[domain.GradeType]string{},
	}

	for project, entry := range file.Projects {
		s.names[project] = entry.Name
		s.deadlines[domain.GradeFunctionality][project] = entry.Functionality
		s.deadlines[domain.GradeDesign][project] = entry.Design
	}

	for key, assignee := range file.Assignees {
		gradeType, err := domain.ParseGradeType(key)
		if err != nil {
			return nil, &domain.DomainError{
				Code:    "INVALID_SCHEDULE",
				Message: fmt.Sprintf("unknown assignee key %q in schedule", key),
			}
		}
		s.assignees[gradeType] = assignee
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schedule) validate() error {
	for project := MinProject; project <= MaxProject; project++ {
		if s.names[project] == "" {
			return &domain.DomainError{
				Code:    "INVALID_SCHEDULE",
				Message: fmt.Sprintf("schedule is missing a name for project %d", project),
			}
		}

		for _, gradeType := range []domain.GradeType{domain.GradeFunctionality, domain.GradeDesign} {
			date := s.deadlines[gradeType][project]
			if date == "" {
				return &domain.DomainError{
					Code:    "INVALID_SCHEDULE",
					Message: fmt.Sprintf("schedule is missing the %s deadline for project %d", gradeType.Label(), project),
				}
			}
			if _, err := time.Parse(civilDateLayout, date); err != nil {
				return &domain.DomainError{
					Code:    "INVALID_SCHEDULE",
					Message: fmt.Sprintf("schedule has a malformed %s deadline for project %d: %q", gradeType.Label(), project, date),
				}
			}
		}
	}

	for _, gradeType := range []domain.GradeType{domain.GradeFunctionality, domain.GradeDesign} {
		if s.assignees[gradeType] == "" {
			return &domain.DomainError{
				Code:    "INVALID_SCHEDULE",
				Message: fmt.Sprintf("schedule is missing the %s assignee", gradeType.Label()),
			}
		}
	}

	return nil
}

// Deadline returns the civil due date (YYYY-MM-DD) for a (type, project) pair
func (s *Schedule) Deadline(gradeType domain.GradeType, project int) (string, error) {
	date, ok := s.deadlines[gradeType][project]
	if !ok {
		return "", domain.NewUnknownDeadlineError(gradeType.Label(), project)
	}
	return date, nil
}

// Name returns the human-readable project name, e.g. "Partial Search"
func (s *Schedule) Name(project int) string {
	return s.names[project]
}

// Assignee returns the default assignee login for a grade type
func (s *Schedule) Assignee(gradeType domain.GradeType) string {
	return s.assignees[gradeType]
}
