package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/culprog/backend/internal/models"
)

// ListTicketsForUser returns the tickets visible to the caller: admins see
// everything, everyone else only what they sent or received. The unread flag
// is derived from the caller's view marker versus the ticket's last update.
func (s *Store) ListTicketsForUser(ctx context.Context, userID string, role models.Role) ([]models.Ticket, error) {
	query := `
		SELECT t.id, t.subject, t.message, t.type, t.status, t.sender_id, t.recipient_id,
			t.accepted_start_time, t.accepted_end_time, t.created_at, t.updated_at,
			(v.viewed_at IS NULL OR v.viewed_at < t.updated_at) AS unread
		FROM tickets t
		LEFT JOIN ticket_views v ON v.ticket_id = t.id AND v.user_id = $1`
	args := []any{userID}
	if role != models.RoleAdmin {
		query += ` WHERE t.sender_id = $1 OR t.recipient_id = $1`
	}
	query += ` ORDER BY t.updated_at DESC`

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.Subject, &t.Message, &t.Type, &t.Status, &t.SenderID, &t.RecipientID,
			&t.AcceptedStartTime, &t.AcceptedEndTime, &t.CreatedAt, &t.UpdatedAt, &t.Unread); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTicket(ctx context.Context, id string) (models.Ticket, error) {
	var t models.Ticket
	err := s.Pool.QueryRow(ctx, `
		SELECT id, subject, message, type, status, sender_id, recipient_id,
			accepted_start_time, accepted_end_time, created_at, updated_at
		FROM tickets WHERE id = $1
	`, id).Scan(&t.ID, &t.Subject, &t.Message, &t.Type, &t.Status, &t.SenderID, &t.RecipientID,
		&t.AcceptedStartTime, &t.AcceptedEndTime, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *Store) InsertTicket(ctx context.Context, t models.Ticket) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO tickets (id, subject, message, type, status, sender_id, recipient_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)
	`, t.ID, t.Subject, t.Message, t.Type, t.Status, t.SenderID, t.RecipientID, t.CreatedAt)
	return err
}

func (s *Store) UpdateTicketStatus(ctx context.Context, id string, status models.TicketStatus) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE tickets SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) DeleteTicket(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) ListReplies(ctx context.Context, ticketID string) ([]models.TicketReply, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, ticket_id, sender_id, message, created_at
		FROM ticket_replies WHERE ticket_id = $1 ORDER BY created_at ASC
	`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TicketReply
	for rows.Next() {
		var r models.TicketReply
		if err := rows.Scan(&r.ID, &r.TicketID, &r.SenderID, &r.Message, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) InsertReply(ctx context.Context, r models.TicketReply) error {
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO ticket_replies (id, ticket_id, sender_id, message, created_at)
			VALUES ($1,$2,$3,$4,$5)
		`, r.ID, r.TicketID, r.SenderID, r.Message, r.CreatedAt); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE tickets SET updated_at = NOW() WHERE id = $1`, r.TicketID)
		return err
	})
}

func (s *Store) MarkTicketViewed(ctx context.Context, ticketID, userID string) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO ticket_views (ticket_id, user_id, viewed_at)
		VALUES ($1,$2,NOW())
		ON CONFLICT (ticket_id, user_id) DO UPDATE SET viewed_at = NOW()
	`, ticketID, userID)
	return err
}
