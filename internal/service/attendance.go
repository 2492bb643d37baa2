package service

import (
	"time"

	"github.com/culprog/backend/internal/models"
)

const (
	attendanceDateLayout = "2006-01-02"
	absenceWindowDays    = 14
)

// HasAbsenceAlert reports whether the participant should be flagged for
// absence: active and without a single present day in the trailing two
// weeks (inclusive of today). Inactive participants never alert; an active
// participant with no records at all does.
func HasAbsenceAlert(p models.Participant, today time.Time) bool {
	if !p.Active {
		return false
	}
	from := today.AddDate(0, 0, -absenceWindowDays)
	for key, present := range p.Attendance {
		if !present {
			continue
		}
		day, err := time.ParseInLocation(attendanceDateLayout, key, today.Location())
		if err != nil {
			continue
		}
		if dayInRange(day, from, today) {
			return false
		}
	}
	return true
}

func dayInRange(day, from, to time.Time) bool {
	if sameDay(day, from) || sameDay(day, to) {
		return true
	}
	return day.After(from) && day.Before(to)
}
