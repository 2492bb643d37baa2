package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/culprog/backend/internal/models"
)

var (
	ErrPendingSuggestion = errors.New("ticket already has a pending suggestion")
	ErrTicketClosed      = errors.New("ticket is closed")
	ErrAvailabilityTaken = errors.New("availability is already booked")
	ErrOutsideWindow     = errors.New("booking window outside availability")
)

func (s *Store) ListSuggestions(ctx context.Context, ticketID string) ([]models.TimeSuggestion, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, ticket_id, suggested_by, start_time, end_time, status, decline_reason, created_at
		FROM ticket_time_suggestions WHERE ticket_id = $1 ORDER BY created_at ASC
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TimeSuggestion
	for rows.Next() {
		var sg models.TimeSuggestion
		if err := rows.Scan(&sg.ID, &sg.TicketID, &sg.SuggestedBy, &sg.StartTime, &sg.EndTime, &sg.Status, &sg.DeclineReason, &sg.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}

func (s *Store) GetSuggestion(ctx context.Context, id string) (models.TimeSuggestion, error) {
	var sg models.TimeSuggestion
	err := s.Pool.QueryRow(ctx, `
		SELECT id, ticket_id, suggested_by, start_time, end_time, status, decline_reason, created_at
		FROM ticket_time_suggestions WHERE id = $1
	`, id).Scan(&sg.ID, &sg.TicketID, &sg.SuggestedBy, &sg.StartTime, &sg.EndTime, &sg.Status, &sg.DeclineReason, &sg.CreatedAt)
	return sg, err
}

// InsertSuggestion creates a pending suggestion unless one already exists for
// the ticket or the ticket is closed. Both guards and the insert run as one
// statement so a concurrent proposer or close cannot slip through.
func (s *Store) InsertSuggestion(ctx context.Context, sg models.TimeSuggestion) error {
	tag, err := s.Pool.Exec(ctx, `
		INSERT INTO ticket_time_suggestions (id, ticket_id, suggested_by, start_time, end_time, status, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7
		WHERE NOT EXISTS (
			SELECT 1 FROM ticket_time_suggestions WHERE ticket_id = $2 AND status = 'pending'
		)
		AND EXISTS (
			SELECT 1 FROM tickets WHERE id = $2 AND status <> 'closed'
		)
	`, sg.ID, sg.TicketID, sg.SuggestedBy, sg.StartTime, sg.EndTime, sg.Status, sg.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := s.Pool.QueryRow(ctx, `SELECT status FROM tickets WHERE id = $1`, sg.TicketID).Scan(&status)
		if err == nil && models.TicketStatus(status) == models.TicketClosed {
			return ErrTicketClosed
		}
		return ErrPendingSuggestion
	}
	return nil
}

// SaveSuggestionResolution persists an accepted or declined suggestion
// together with the resulting ticket state. The suggestion update is guarded
// on pending status so a resolution applies exactly once.
func (s *Store) SaveSuggestionResolution(ctx context.Context, t models.Ticket, sg models.TimeSuggestion) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE ticket_time_suggestions
			SET status = $1, decline_reason = $2
			WHERE id = $3 AND status = 'pending'
		`, sg.Status, sg.DeclineReason, sg.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		_, err = tx.Exec(ctx, `
			UPDATE tickets
			SET status = $1, accepted_start_time = $2, accepted_end_time = $3, updated_at = NOW()
			WHERE id = $4
		`, t.Status, t.AcceptedStartTime, t.AcceptedEndTime, t.ID)
		return err
	})
}

func (s *Store) ListAvailabilities(ctx context.Context, adminID string) ([]models.Availability, error) {
	query := `SELECT id, admin_id, start_time, end_time, is_booked FROM availabilities`
	var args []any
	if adminID != "" {
		query += ` WHERE admin_id = $1`
		args = append(args, adminID)
	}
	query += ` ORDER BY start_time ASC`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Availability
	for rows.Next() {
		var a models.Availability
		if err := rows.Scan(&a.ID, &a.AdminID, &a.StartTime, &a.EndTime, &a.IsBooked); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) InsertAvailability(ctx context.Context, a models.Availability) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO availabilities (id, admin_id, start_time, end_time, is_booked)
		VALUES ($1,$2,$3,$4,false)
	`, a.ID, a.AdminID, a.StartTime, a.EndTime)
	return err
}

func (s *Store) DeleteAvailability(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM availabilities WHERE id = $1 AND is_booked = false`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateBooking reserves an availability. The window check and the booked
// flag flip happen under a row lock so an availability is handed out once.
func (s *Store) CreateBooking(ctx context.Context, b models.Booking) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		var a models.Availability
		err := tx.QueryRow(ctx, `
			SELECT id, admin_id, start_time, end_time, is_booked
			FROM availabilities WHERE id = $1 FOR UPDATE
		`, b.AvailabilityID).Scan(&a.ID, &a.AdminID, &a.StartTime, &a.EndTime, &a.IsBooked)
		if err != nil {
			return err
		}
		if a.IsBooked {
			return ErrAvailabilityTaken
		}
		if b.StartTime.Before(a.StartTime) || b.EndTime.After(a.EndTime) {
			return ErrOutsideWindow
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO bookings (id, admin_id, availability_id, coach_id, student_id, start_time, end_time, note, meeting_type, status, seen, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,false,$11)
		`, b.ID, a.AdminID, b.AvailabilityID, b.CoachID, b.StudentID, b.StartTime, b.EndTime, b.Note, b.MeetingType, b.Status, b.CreatedAt); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE availabilities SET is_booked = true WHERE id = $1`, a.ID)
		return err
	})
}

func (s *Store) GetBooking(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	err := s.Pool.QueryRow(ctx, `
		SELECT id, admin_id, availability_id, coach_id, student_id, start_time, end_time, note, meeting_type, status, seen, created_at
		FROM bookings WHERE id = $1
	`, id).Scan(&b.ID, &b.AdminID, &b.AvailabilityID, &b.CoachID, &b.StudentID, &b.StartTime, &b.EndTime, &b.Note, &b.MeetingType, &b.Status, &b.Seen, &b.CreatedAt)
	return b, err
}

func (s *Store) ListBookingsForAdmin(ctx context.Context, adminID string) ([]models.Booking, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, admin_id, availability_id, coach_id, student_id, start_time, end_time, note, meeting_type, status, seen, created_at
		FROM bookings WHERE admin_id = $1 ORDER BY start_time ASC
	`, adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.AdminID, &b.AvailabilityID, &b.CoachID, &b.StudentID, &b.StartTime, &b.EndTime, &b.Note, &b.MeetingType, &b.Status, &b.Seen, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateBookingStatus resolves a pending booking. Declining releases the
// availability for rebooking.
func (s *Store) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		var availabilityID string
		err := tx.QueryRow(ctx, `
			UPDATE bookings SET status = $1 WHERE id = $2 AND status = 'pending'
			RETURNING availability_id
		`, status, id).Scan(&availabilityID)
		if err != nil {
			return err
		}
		if status == models.BookingDeclined {
			_, err = tx.Exec(ctx, `UPDATE availabilities SET is_booked = false WHERE id = $1`, availabilityID)
		}
		return err
	})
}

func (s *Store) MarkBookingSeen(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `UPDATE bookings SET seen = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AcceptedBookingsOn returns the admin's accepted bookings starting on the
// given calendar day, the input to the slot grid.
func (s *Store) AcceptedBookingsOn(ctx context.Context, adminID string, day time.Time) ([]models.Booking, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, admin_id, availability_id, coach_id, student_id, start_time, end_time, note, meeting_type, status, seen, created_at
		FROM bookings
		WHERE admin_id = $1 AND status = 'accepted' AND start_time::date = $2::date
		ORDER BY start_time ASC
	`, adminID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.AdminID, &b.AvailabilityID, &b.CoachID, &b.StudentID, &b.StartTime, &b.EndTime, &b.Note, &b.MeetingType, &b.Status, &b.Seen, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
