package draft

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drafts.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestSQLiteStore(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s, _ := newTestStore(t)

		if err := s.Save("draft:7", Draft{Title: "Old", Text: "Draft body"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		d, ok := s.Load("draft:7")
		if !ok {
			t.Fatal("Expected draft to be present")
		}
		if d.Title != "Old" || d.Text != "Draft body" {
			t.Errorf("Expected {Old, Draft body}, got %+v", d)
		}
	})

	t.Run("survives reopen", func(t *testing.T) {
		s, path := newTestStore(t)
		if err := s.Save("draft:new", Draft{Text: "persisted"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		s.Close()

		reopened, err := NewSQLiteStore(path)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}
		defer reopened.Close()

		d, ok := reopened.Load("draft:new")
		if !ok {
			t.Fatal("Expected draft to survive reopen")
		}
		if d.Text != "persisted" {
			t.Errorf("Expected text 'persisted', got %q", d.Text)
		}
	})

	t.Run("overwrite keeps one row per key", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.Save("draft:1", Draft{Text: "first"})
		s.Save("draft:1", Draft{Text: "second"})

		if d, _ := s.Load("draft:1"); d.Text != "second" {
			t.Errorf("Expected overwritten draft 'second', got %q", d.Text)
		}

		var count int
		if err := s.conn.QueryRow(`SELECT COUNT(*) FROM drafts WHERE key = ?`, "draft:1").Scan(&count); err != nil {
			t.Fatalf("Count query failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 row, got %d", count)
		}
	})

	t.Run("corrupt row treated as absent", func(t *testing.T) {
		s, _ := newTestStore(t)
		if _, err := s.conn.Exec(
			`INSERT INTO drafts (key, value) VALUES (?, ?)`, "draft:13", []byte("not zstd"),
		); err != nil {
			t.Fatalf("Failed to plant corrupt row: %v", err)
		}

		if _, ok := s.Load("draft:13"); ok {
			t.Error("Expected corrupt draft to load as absent")
		}
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		s, _ := newTestStore(t)
		s.Save("draft:4", Draft{Text: "x"})

		if err := s.Clear("draft:4"); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if _, ok := s.Load("draft:4"); ok {
			t.Error("Expected draft to be gone after clear")
		}
		if err := s.Clear("draft:4"); err != nil {
			t.Errorf("Expected second clear to be a no-op, got %v", err)
		}
	})
}

func TestCompressRoundTrip(t *testing.T) {
	original := []byte(`{"title":"T","text":"some longer markdown body with repetition repetition repetition"}`)

	compressed, err := compress(original)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	decompressed, err := decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if string(decompressed) != string(original) {
		t.Errorf("Expected round trip to preserve data, got %s", decompressed)
	}
}
