package grading

import (
	"math"
	"time"

	"github.com/usf-cs272/gradebot/internal/domain"
)

// Deadlines are civil dates with an end-of-day cutoff in the reference zone.
const cutoffLayout = "2006-01-02 15:04:05"
const cutoffClock = "23:59:59"

// localLayout is how computed timestamps appear in issue bodies and logs
const localLayout = "Mon, 02 Jan 2006 15:04 MST"

// Calculator computes the late-penalty-adjusted grade for a release. It is
// pure: no I/O, deterministic for a given schedule, location and input.
type Calculator struct {
	schedule *Schedule
	location *time.Location
}

// NewCalculator creates a Calculator over a validated schedule
func NewCalculator(schedule *Schedule, location *time.Location) *Calculator {
	return &Calculator{
		schedule: schedule,
		location: location,
	}
}

// Compute grades a release created at createdAt against the (type, project)
// deadline. A release strictly before the cutoff earns 100; otherwise every
// started week of lateness costs 10 points. A release exactly at the cutoff
// instant is already in the first late week. The grade is not clamped at
// zero; what to do with an extremely late submission is the grader's call.
func (c *Calculator) Compute(createdAt time.Time, project int, gradeType domain.GradeType) (domain.GradeResult, error) {
	date, err := c.schedule.Deadline(gradeType, project)
	if err != nil {
		return domain.GradeResult{}, err
	}

	deadline, err := time.ParseInLocation(cutoffLayout, date+" "+cutoffClock, c.location)
	if err != nil {
		// validate() guarantees the date parses; a failure here means the
		// schedule was mutated after construction
		return domain.GradeResult{}, domain.NewUnknownDeadlineError(gradeType.Label(), project)
	}

	created := createdAt.In(c.location)

	result := domain.GradeResult{
		CreatedLocal:  created.Format(localLayout),
		DeadlineLocal: deadline.Format(localLayout),
	}

	if created.Before(deadline) {
		result.LateWeeks = 0
		result.Grade = 100
		return result, nil
	}

	days := civilTime(created).Sub(civilTime(deadline)).Hours() / 24
	result.LateWeeks = 1 + int(math.Floor(days/7))
	result.Grade = 100 - 10*result.LateWeeks

	return result, nil
}

// civilTime strips the zone so lateness is measured in wall-clock days: a
// release 14 calendar days past the cutoff is 14 days late even when a DST
// transition makes the absolute duration an hour shorter.
func civilTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
