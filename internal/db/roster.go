package db

import (
	"context"
	"time"

	"github.com/culprog/backend/internal/models"
)

func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

// ListParticipants loads the roster with each participant's attendance map
// keyed by ISO date.
func (s *Store) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.Pool.Query(ctx, `SELECT id, name, active FROM participants ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Participant
	index := map[string]int{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Active); err != nil {
			return nil, err
		}
		p.Attendance = map[string]bool{}
		index[p.ID] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	attRows, err := s.Pool.Query(ctx, `SELECT participant_id, day, present FROM attendance`)
	if err != nil {
		return nil, err
	}
	defer attRows.Close()
	for attRows.Next() {
		var (
			pid     string
			d       time.Time
			present bool
		)
		if err := attRows.Scan(&pid, &d, &present); err != nil {
			return nil, err
		}
		if i, ok := index[pid]; ok {
			out[i].Attendance[d.Format("2006-01-02")] = present
		}
	}
	return out, attRows.Err()
}

func (s *Store) UpsertAttendance(ctx context.Context, participantID string, day time.Time, present bool) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO attendance (participant_id, day, present)
		VALUES ($1,$2,$3)
		ON CONFLICT (participant_id, day) DO UPDATE SET present = EXCLUDED.present
	`, participantID, day, present)
	return err
}

func (s *Store) ListNews(ctx context.Context) ([]models.NewsPost, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, author_id, title, body, created_at FROM news_posts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.NewsPost
	for rows.Next() {
		var n models.NewsPost
		if err := rows.Scan(&n.ID, &n.AuthorID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) InsertNews(ctx context.Context, n models.NewsPost) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO news_posts (id, author_id, title, body, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`, n.ID, n.AuthorID, n.Title, n.Body, n.CreatedAt)
	return err
}

func (s *Store) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, title, description, difficulty, created_at FROM exercises ORDER BY difficulty ASC, title ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Difficulty, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetExercise(ctx context.Context, id string) (models.Exercise, error) {
	var e models.Exercise
	err := s.Pool.QueryRow(ctx, `
		SELECT id, title, description, difficulty, created_at FROM exercises WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.Description, &e.Difficulty, &e.CreatedAt)
	return e, err
}
