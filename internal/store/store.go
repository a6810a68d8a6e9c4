// Package store keeps recorded rig sessions, their solved frames and the
// settings that shape the rig in one SQLite file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

// ErrForeignKeys is returned when the database refuses to enforce foreign
// keys, which session frame cleanup depends on.
var ErrForeignKeys = errors.New("store: foreign keys not enforced")

// pragmas run on every connection the driver opens.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// Store is an open recording database.
type Store struct {
	db   *sql.DB
	path string
}

// New opens or creates the database at dbPath and brings its schema up to
// date.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	// Frame appends read the session's count then insert; one connection
	// keeps those transactions serial.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: dbPath}
	if err := s.checkForeignKeys(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}
	return s, nil
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

func (s *Store) checkForeignKeys() error {
	var on int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&on); err != nil {
		return fmt.Errorf("read foreign_keys: %w", err)
	}
	if on != 1 {
		return ErrForeignKeys
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
