package service

import (
	"testing"
	"time"

	"github.com/culprog/backend/internal/models"
)

var today = time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)

func TestHasAbsenceAlertInactiveNeverAlerts(t *testing.T) {
	p := models.Participant{Active: false, Attendance: map[string]bool{}}
	if HasAbsenceAlert(p, today) {
		t.Fatalf("inactive participant must not alert")
	}
	p.Attendance = nil
	if HasAbsenceAlert(p, today) {
		t.Fatalf("inactive participant must not alert regardless of history")
	}
}

func TestHasAbsenceAlertEmptyHistory(t *testing.T) {
	p := models.Participant{Active: true}
	if !HasAbsenceAlert(p, today) {
		t.Fatalf("active participant with no records must alert")
	}
}

func TestHasAbsenceAlertRecentPresence(t *testing.T) {
	cases := []struct {
		name       string
		attendance map[string]bool
		alert      bool
	}{
		{"present today", map[string]bool{"2024-06-10": true}, false},
		{"present at window edge", map[string]bool{"2024-05-27": true}, false},
		{"present just outside window", map[string]bool{"2024-05-26": true}, true},
		{"only absences recorded", map[string]bool{"2024-06-09": false, "2024-06-08": false}, true},
		{"old presence only", map[string]bool{"2024-04-01": true}, true},
		{"unparseable key ignored", map[string]bool{"not-a-date": true}, true},
	}
	for _, c := range cases {
		p := models.Participant{Active: true, Attendance: c.attendance}
		if got := HasAbsenceAlert(p, today); got != c.alert {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.alert)
		}
	}
}
