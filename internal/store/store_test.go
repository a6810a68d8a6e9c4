package store

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
)

func TestNew_SchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rig.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if s.Path() != dbPath {
		t.Errorf("expected path %s, got %s", dbPath, s.Path())
	}
	v, err := s.schemaVersion()
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("expected schema version %d, got %d", len(migrations), v)
	}
	if err := s.Sessions().Create(&Session{ID: "kept", Name: "kept"}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	s.Close()

	t.Run("reopening keeps recordings", func(t *testing.T) {
		s, err := New(dbPath)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		defer s.Close()

		if _, err := s.Sessions().GetByID("kept"); err != nil {
			t.Errorf("expected session to survive reopen: %v", err)
		}
	})

	t.Run("refuses a newer schema", func(t *testing.T) {
		s, err := New(dbPath)
		if err != nil {
			t.Fatalf("failed to reopen store: %v", err)
		}
		if _, err := s.db.Exec("PRAGMA user_version = 99"); err != nil {
			t.Fatalf("failed to bump schema version: %v", err)
		}
		s.Close()

		if s, err := New(dbPath); err == nil {
			s.Close()
			t.Error("expected an error opening a newer schema")
		}
	})
}

func TestStore_FramesCascadeWithSession(t *testing.T) {
	s := newTestStore(t)

	for _, id := range []string{"take-1", "take-2"} {
		if err := s.Sessions().Create(&Session{ID: id, Name: id}); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		for i := 0; i < 3; i++ {
			if _, err := s.Frames().Append(id, int64(i*33), json.RawMessage(`{"face":null}`)); err != nil {
				t.Fatalf("failed to append frame: %v", err)
			}
		}
	}

	if err := s.Sessions().Delete("take-1"); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}

	var orphans, kept int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM session_frames WHERE session_id = 'take-1'`).Scan(&orphans); err != nil {
		t.Fatalf("failed to count frames: %v", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM session_frames WHERE session_id = 'take-2'`).Scan(&kept); err != nil {
		t.Fatalf("failed to count frames: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected deleted session's frames to cascade, found %d", orphans)
	}
	if kept != 3 {
		t.Errorf("expected the other session's 3 frames to stay, found %d", kept)
	}
}

func TestStore_RejectsOrphanFrames(t *testing.T) {
	s := newTestStore(t)

	// Appending through the repository checks the session first; the schema
	// must refuse a direct insert too.
	_, err := s.db.Exec(
		`INSERT INTO session_frames (session_id, sequence, timestamp_ms, data) VALUES ('ghost', 0, 0, '{}')`,
	)
	if err == nil {
		t.Fatal("expected a foreign key error for a frame without a session")
	}

	if _, err := s.Frames().Append("ghost", 0, json.RawMessage(`{}`)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := newTestStore(t)
	if err := s.Sessions().Create(&Session{ID: "live", Name: "live"}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	const writers, perWriter = 4, 25
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if _, err := s.Frames().Append("live", int64(i), json.RawMessage(`{}`)); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("append failed: %v", err)
	}

	frames, err := s.Frames().GetBySessionID("live")
	if err != nil {
		t.Fatalf("failed to get frames: %v", err)
	}
	if len(frames) != writers*perWriter {
		t.Fatalf("expected %d frames, got %d", writers*perWriter, len(frames))
	}
	for i, f := range frames {
		if f.Sequence != i {
			t.Fatalf("expected gapless sequences, frame %d has sequence %d", i, f.Sequence)
		}
	}

	sess, err := s.Sessions().GetByID("live")
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if sess.Frames != writers*perWriter {
		t.Errorf("expected session frame count %d, got %d", writers*perWriter, sess.Frames)
	}
}
