package service

import (
	"errors"
	"strings"

	"github.com/culprog/backend/internal/models"
)

var (
	ErrTicketClosed      = errors.New("ticket is closed")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotPending        = errors.New("suggestion already resolved")
	ErrReasonRequired    = errors.New("decline reason is required")
	ErrPendingExists     = errors.New("a pending suggestion already exists")
)

// CanTransition reports whether a ticket may move from one status to another.
// Legal moves are open→in_progress, open→closed and in_progress→closed.
// Nothing leaves closed.
func CanTransition(from, to models.TicketStatus) bool {
	switch from {
	case models.TicketOpen:
		return to == models.TicketInProgress || to == models.TicketClosed
	case models.TicketInProgress:
		return to == models.TicketClosed
	default:
		return false
	}
}

// Transition applies a status change to a copy of the ticket. A closed ticket
// rejects every request, including closed→closed; repeating the current open
// or in-progress status is a no-op.
func Transition(t models.Ticket, to models.TicketStatus) (models.Ticket, error) {
	if t.Status == models.TicketClosed {
		return t, ErrTicketClosed
	}
	if to == t.Status {
		return t, nil
	}
	if !CanTransition(t.Status, to) {
		return t, ErrIllegalTransition
	}
	t.Status = to
	return t, nil
}

// CanReply reports whether the ticket still accepts thread messages.
func CanReply(t models.Ticket) bool {
	return t.Status != models.TicketClosed
}

// AcceptSuggestion resolves a pending suggestion in the caller's favor:
// the suggestion becomes accepted, the ticket closes and its accepted window
// is stamped from the suggestion.
func AcceptSuggestion(t models.Ticket, s models.TimeSuggestion) (models.Ticket, models.TimeSuggestion, error) {
	if s.Status != models.SuggestionPending {
		return t, s, ErrNotPending
	}
	if t.Status == models.TicketClosed {
		return t, s, ErrTicketClosed
	}
	s.Status = models.SuggestionAccepted
	t.Status = models.TicketClosed
	start := s.StartTime
	end := s.EndTime
	t.AcceptedStartTime = &start
	t.AcceptedEndTime = &end
	return t, s, nil
}

// DeclineSuggestion resolves a pending suggestion with a mandatory reason.
// The ticket is left untouched; a new suggestion may be created afterwards.
func DeclineSuggestion(t models.Ticket, s models.TimeSuggestion, reason string) (models.Ticket, models.TimeSuggestion, error) {
	if s.Status != models.SuggestionPending {
		return t, s, ErrNotPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return t, s, ErrReasonRequired
	}
	s.Status = models.SuggestionDeclined
	s.DeclineReason = &reason
	return t, s, nil
}
