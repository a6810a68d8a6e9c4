package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Frame is one solved rig result recorded in a session.
type Frame struct {
	ID          int64           `json:"id"`
	SessionID   string          `json:"session_id"`
	Sequence    int             `json:"sequence"`
	TimestampMs int64           `json:"timestamp_ms"`
	Data        json.RawMessage `json:"data"`
}

// FrameRepository stores the frames of recorded sessions.
type FrameRepository struct {
	db *sql.DB
}

// Frames returns the frame repository for this store.
func (s *Store) Frames() *FrameRepository {
	return &FrameRepository{db: s.db}
}

// Append adds a frame to the end of a session in a single transaction and
// bumps the session's frame count. It returns the frame's sequence number.
func (r *FrameRepository) Append(sessionID string, timestampMs int64, data json.RawMessage) (int, error) {
	if !json.Valid(data) {
		return 0, fmt.Errorf("append frame: invalid JSON data")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var seq int
	err = tx.QueryRow(`SELECT frames FROM sessions WHERE id = ?`, sessionID).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	_, err = tx.Exec(
		`INSERT INTO session_frames (session_id, sequence, timestamp_ms, data) VALUES (?, ?, ?, ?)`,
		sessionID, seq, timestampMs, string(data),
	)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE sessions SET frames = frames + 1 WHERE id = ?`, sessionID); err != nil {
		return 0, err
	}

	return seq, tx.Commit()
}

// GetBySessionID retrieves all frames of a session in sequence order.
func (r *FrameRepository) GetBySessionID(sessionID string) ([]Frame, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, sequence, timestamp_ms, data
		 FROM session_frames
		 WHERE session_id = ?
		 ORDER BY sequence`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		var f Frame
		var data string
		if err := rows.Scan(&f.ID, &f.SessionID, &f.Sequence, &f.TimestampMs, &data); err != nil {
			return nil, err
		}
		f.Data = json.RawMessage(data)
		frames = append(frames, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frames, nil
}
