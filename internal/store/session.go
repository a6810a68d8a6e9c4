package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/abhinaya/internal/landmark"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session is one recording of solved rig frames.
type Session struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Source    landmark.Source `json:"source"`
	Frames    int             `json:"frames"`
	CreatedAt time.Time       `json:"created_at"`
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session. The frame count always starts at zero.
func (r *SessionRepository) Create(sess *Session) error {
	sess.CreatedAt = time.Now()
	sess.Frames = 0

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, name, source, frames, created_at) VALUES (?, ?, ?, 0, ?)`,
		sess.ID, sess.Name, sess.Source.String(), sess.CreatedAt,
	)
	return err
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}
	var source string

	err := r.db.QueryRow(
		`SELECT id, name, source, frames, created_at FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.Name, &source, &sess.Frames, &sess.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if sess.Source, err = landmark.ParseSource(source); err != nil {
		return nil, err
	}
	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, name, source, frames, created_at FROM sessions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var source string
		if err := rows.Scan(&sess.ID, &sess.Name, &source, &sess.Frames, &sess.CreatedAt); err != nil {
			return nil, err
		}
		src, err := landmark.ParseSource(source)
		if err != nil {
			return nil, err
		}
		sess.Source = src
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Delete removes a session and its frames.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
