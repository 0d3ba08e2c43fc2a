package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// :memory: databases are per connection
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS collections(
  name TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// SQLiteBackend stores each collection as one row of the collections table.
type SQLiteBackend struct{ db *sqlx.DB }

func NewSQLiteBackend(db *sqlx.DB) *SQLiteBackend { return &SQLiteBackend{db: db} }

func (b *SQLiteBackend) Read(ctx context.Context, collection string) ([]byte, error) {
	var body string
	err := b.db.GetContext(ctx, &body, `SELECT body FROM collections WHERE name = ?`, collection)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (b *SQLiteBackend) Write(ctx context.Context, collection string, body []byte) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO collections(name, body, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP
	`, collection, string(body))
	return err
}
