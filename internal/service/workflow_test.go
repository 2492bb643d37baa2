package service

import (
	"errors"
	"testing"
	"time"

	"github.com/culprog/backend/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to models.TicketStatus
		ok       bool
	}{
		{models.TicketOpen, models.TicketInProgress, true},
		{models.TicketOpen, models.TicketClosed, true},
		{models.TicketInProgress, models.TicketClosed, true},
		{models.TicketInProgress, models.TicketOpen, false},
		{models.TicketClosed, models.TicketOpen, false},
		{models.TicketClosed, models.TicketInProgress, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.ok {
			t.Fatalf("%s -> %s: got %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestTransitionClosedIsTerminal(t *testing.T) {
	_, err := Transition(models.Ticket{Status: models.TicketClosed}, models.TicketInProgress)
	if !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("expected ErrTicketClosed, got %v", err)
	}
}

func TestTransitionClosedToClosedRejected(t *testing.T) {
	_, err := Transition(models.Ticket{Status: models.TicketClosed}, models.TicketClosed)
	if !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("expected ErrTicketClosed, got %v", err)
	}
}

func TestTransitionSameStatusNoop(t *testing.T) {
	tk, err := Transition(models.Ticket{Status: models.TicketOpen}, models.TicketOpen)
	if err != nil || tk.Status != models.TicketOpen {
		t.Fatalf("expected noop, got %v %v", tk.Status, err)
	}
}

func TestAcceptSuggestionClosesAndStampsWindow(t *testing.T) {
	start := time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	tk := models.Ticket{ID: "t1", Status: models.TicketOpen}
	s := models.TimeSuggestion{ID: "s1", TicketID: "t1", Status: models.SuggestionPending, StartTime: start, EndTime: end}

	tk, s, err := AcceptSuggestion(tk, s)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if tk.Status != models.TicketClosed {
		t.Fatalf("expected ticket closed, got %s", tk.Status)
	}
	if s.Status != models.SuggestionAccepted {
		t.Fatalf("expected suggestion accepted, got %s", s.Status)
	}
	if tk.AcceptedStartTime == nil || !tk.AcceptedStartTime.Equal(start) {
		t.Fatalf("accepted start not stamped: %v", tk.AcceptedStartTime)
	}
	if tk.AcceptedEndTime == nil || !tk.AcceptedEndTime.Equal(end) {
		t.Fatalf("accepted end not stamped: %v", tk.AcceptedEndTime)
	}
}

func TestAcceptSuggestionRejectsResolved(t *testing.T) {
	tk := models.Ticket{Status: models.TicketOpen}
	s := models.TimeSuggestion{Status: models.SuggestionDeclined}
	if _, _, err := AcceptSuggestion(tk, s); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestAcceptSuggestionRejectsClosedTicket(t *testing.T) {
	tk := models.Ticket{Status: models.TicketClosed}
	s := models.TimeSuggestion{Status: models.SuggestionPending}
	if _, _, err := AcceptSuggestion(tk, s); !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("expected ErrTicketClosed, got %v", err)
	}
}

func TestDeclineSuggestionRequiresReason(t *testing.T) {
	tk := models.Ticket{Status: models.TicketOpen}
	s := models.TimeSuggestion{Status: models.SuggestionPending}

	if _, _, err := DeclineSuggestion(tk, s, "   "); !errors.Is(err, ErrReasonRequired) {
		t.Fatalf("expected ErrReasonRequired, got %v", err)
	}

	tk2, s2, err := DeclineSuggestion(tk, s, "clashes with class")
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if tk2.Status != models.TicketOpen {
		t.Fatalf("decline must leave the ticket open, got %s", tk2.Status)
	}
	if s2.Status != models.SuggestionDeclined || s2.DeclineReason == nil || *s2.DeclineReason != "clashes with class" {
		t.Fatalf("unexpected declined suggestion: %+v", s2)
	}
}

func TestCanReply(t *testing.T) {
	if CanReply(models.Ticket{Status: models.TicketClosed}) {
		t.Fatalf("closed tickets must not accept replies")
	}
	if !CanReply(models.Ticket{Status: models.TicketInProgress}) {
		t.Fatalf("in-progress tickets accept replies")
	}
}
