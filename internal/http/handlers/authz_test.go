package handlers

import (
	"testing"

	"github.com/culprog/backend/internal/models"
)

func TestCanManageTicket(t *testing.T) {
	recipient := "22222222-2222-2222-2222-222222222222"
	tk := models.Ticket{SenderID: "33333333-3333-3333-3333-333333333333", RecipientID: &recipient}

	if !canManageTicket(recipient, models.RoleCoach, tk) {
		t.Fatalf("recipient must manage their ticket")
	}
	if !canManageTicket("44444444-4444-4444-4444-444444444444", models.RoleAdmin, tk) {
		t.Fatalf("admins manage every ticket")
	}
	if canManageTicket(tk.SenderID, models.RoleCoach, tk) {
		t.Fatalf("the sender is not the recipient")
	}
	if canManageTicket("44444444-4444-4444-4444-444444444444", models.RoleCoach, tk) {
		t.Fatalf("a third party must not manage the ticket")
	}
}

func TestCanRespondSuggestionScopedToTicketParties(t *testing.T) {
	sender := "33333333-3333-3333-3333-333333333333"
	recipient := "22222222-2222-2222-2222-222222222222"
	outsider := "44444444-4444-4444-4444-444444444444"
	admin := "55555555-5555-5555-5555-555555555555"

	tk := models.Ticket{SenderID: sender, RecipientID: &recipient}
	sg := models.TimeSuggestion{SuggestedBy: recipient}

	if !canRespondSuggestion(sender, models.RoleCoach, tk, sg) {
		t.Fatalf("the ticket's sender may respond to the recipient's suggestion")
	}
	if canRespondSuggestion(recipient, models.RoleAdmin, tk, sg) {
		t.Fatalf("the proposer may never respond, admin or not")
	}
	if canRespondSuggestion(outsider, models.RoleCoach, tk, sg) {
		t.Fatalf("a third party must not resolve someone else's suggestion")
	}
	if !canRespondSuggestion(admin, models.RoleAdmin, tk, sg) {
		t.Fatalf("a non-proposing admin may respond")
	}

	sg = models.TimeSuggestion{SuggestedBy: sender}
	if !canRespondSuggestion(recipient, models.RoleCoach, tk, sg) {
		t.Fatalf("the recipient may respond to the sender's suggestion")
	}
}

func TestCanManageBookingOnlyBookedAdmin(t *testing.T) {
	b := models.Booking{AdminID: "55555555-5555-5555-5555-555555555555", CoachID: "22222222-2222-2222-2222-222222222222"}

	if !canManageBooking(b.AdminID, b) {
		t.Fatalf("the booked admin resolves their bookings")
	}
	if canManageBooking(b.CoachID, b) {
		t.Fatalf("the booking coach must not resolve it")
	}
	if canManageBooking("66666666-6666-6666-6666-666666666666", b) {
		t.Fatalf("another admin must not resolve it")
	}
}
