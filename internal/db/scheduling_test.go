package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/culprog/backend/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func seedUser(t *testing.T, store *Store, role models.Role) string {
	t.Helper()
	ctx := context.Background()
	id := uuid.NewString()
	_, err := store.Pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, 'x', $4)
	`, id, "Test "+string(role), id+"@example.test", role)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() {
		store.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func seedTicket(t *testing.T, store *Store, senderID string, status models.TicketStatus) string {
	t.Helper()
	ctx := context.Background()
	id := uuid.NewString()
	_, err := store.Pool.Exec(ctx, `
		INSERT INTO tickets (id, subject, message, type, status, sender_id)
		VALUES ($1, 'subject', 'message', 'session', $2, $3)
	`, id, status, senderID)
	if err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	t.Cleanup(func() {
		store.Pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	})
	return id
}

func TestBookingFlowIntegration(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	adminID := seedUser(t, store, models.RoleAdmin)
	coachID := seedUser(t, store, models.RoleCoach)

	start := time.Date(2030, time.January, 10, 10, 0, 0, 0, time.UTC)
	a := models.Availability{
		ID:        uuid.NewString(),
		AdminID:   adminID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
	}
	if err := store.InsertAvailability(ctx, a); err != nil {
		t.Fatalf("insert availability: %v", err)
	}
	t.Cleanup(func() {
		store.Pool.Exec(ctx, `DELETE FROM bookings WHERE availability_id = $1`, a.ID)
		store.Pool.Exec(ctx, `DELETE FROM availabilities WHERE id = $1`, a.ID)
	})

	b := models.Booking{
		ID:             uuid.NewString(),
		AvailabilityID: a.ID,
		CoachID:        coachID,
		StartTime:      start,
		EndTime:        start.Add(time.Hour),
		Note:           "first session",
		MeetingType:    "online",
		Status:         models.BookingPending,
		CreatedAt:      time.Now().UTC(),
	}
	if err := store.CreateBooking(ctx, b); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	items, err := store.ListBookingsForAdmin(ctx, adminID)
	if err != nil {
		t.Fatalf("list bookings: %v", err)
	}
	found := false
	for _, it := range items {
		if it.ID == b.ID {
			found = true
			if it.AdminID != adminID || it.Status != models.BookingPending {
				t.Fatalf("unexpected listed booking: %+v", it)
			}
		}
	}
	if !found {
		t.Fatalf("booking %s not listed for admin %s", b.ID, adminID)
	}

	if err := store.UpdateBookingStatus(ctx, b.ID, models.BookingAccepted); err != nil {
		t.Fatalf("accept booking: %v", err)
	}
	got, err := store.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if got.Status != models.BookingAccepted {
		t.Fatalf("expected accepted, got %s", got.Status)
	}
}

func TestInsertSuggestionGuards(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	adminID := seedUser(t, store, models.RoleAdmin)
	coachID := seedUser(t, store, models.RoleCoach)

	closedTicket := seedTicket(t, store, coachID, models.TicketClosed)
	sg := models.TimeSuggestion{
		ID:          uuid.NewString(),
		TicketID:    closedTicket,
		SuggestedBy: adminID,
		StartTime:   time.Date(2030, time.January, 10, 11, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2030, time.January, 10, 11, 30, 0, 0, time.UTC),
		Status:      models.SuggestionPending,
		CreatedAt:   time.Now().UTC(),
	}
	if err := store.InsertSuggestion(ctx, sg); !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("expected ErrTicketClosed on closed ticket, got %v", err)
	}

	openTicket := seedTicket(t, store, coachID, models.TicketOpen)
	sg.ID = uuid.NewString()
	sg.TicketID = openTicket
	if err := store.InsertSuggestion(ctx, sg); err != nil {
		t.Fatalf("insert suggestion: %v", err)
	}
	sg.ID = uuid.NewString()
	if err := store.InsertSuggestion(ctx, sg); !errors.Is(err, ErrPendingSuggestion) {
		t.Fatalf("expected ErrPendingSuggestion on second pending, got %v", err)
	}
}
