package draft

import (
	"database/sql"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	sqliteLogger = l
}

// SQLiteStore persists drafts in a local sqlite database so they survive
// restarts. Values are stored zstd-compressed; rows that fail to decompress
// or decode are treated as absent, matching the Store contract.
type SQLiteStore struct {
	conn *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft database: %w", err)
	}

	_, err = conn.Exec(`
CREATE TABLE IF NOT EXISTS drafts (
    key TEXT PRIMARY KEY,
    value BLOB,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize draft database: %w", err)
	}

	sqliteLogger.Info().Str("path", path).Msg("Draft database initialized")
	return &SQLiteStore{conn: conn}, nil
}

func (s *SQLiteStore) Save(key string, d Draft) error {
	value, err := compress([]byte(Encode(d)))
	if err != nil {
		return fmt.Errorf("failed to compress draft: %w", err)
	}

	_, err = s.conn.Exec(
		`INSERT INTO drafts (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Load(key string) (Draft, bool) {
	var value []byte
	err := s.conn.QueryRow(`SELECT value FROM drafts WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return Draft{}, false
	}
	if err != nil {
		sqliteLogger.Warn().Err(err).Str("key", key).Msg("Draft load failed, treating as absent")
		return Draft{}, false
	}

	raw, err := decompress(value)
	if err != nil {
		sqliteLogger.Warn().Err(err).Str("key", key).Msg("Stored draft is corrupt, treating as absent")
		return Draft{}, false
	}

	return Decode(string(raw))
}

func (s *SQLiteStore) Clear(key string) error {
	if _, err := s.conn.Exec(`DELETE FROM drafts WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear draft %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func compress(data []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer encoder.Close()

	return encoder.EncodeAll(data, nil), nil
}

func decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer decoder.Close()

	return decoder.DecodeAll(data, nil)
}
