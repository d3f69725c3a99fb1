// Package store keeps an optional local log of contact form submissions.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Submission is one logged contact attempt.
type Submission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	HashedIP  string    `json:"hashed_ip"`
	Delivered bool      `json:"delivered"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactLog persists submissions in SQLite.
type ContactLog struct {
	db   *sql.DB
	salt string
}

const schema = `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	subject    TEXT,
	hashed_ip  TEXT,
	delivered  INTEGER NOT NULL DEFAULT 0,
	error      TEXT,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_created ON contact_submissions(created_at);
`

// Open opens (or creates) the database at path and applies the schema.
// salt is mixed into IP hashes so raw addresses are never stored.
func Open(ctx context.Context, path, salt string) (*ContactLog, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open contact log: %w", err)
	}
	// SQLite allows one writer; this also keeps :memory: databases on a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply contact log schema: %w", err)
	}
	return &ContactLog{db: db, salt: salt}, nil
}

// busyTimeout bounds how long a write waits on the single writer lock
const busyTimeout = 5 * time.Second

// dsn applies the pragmas to every pooled connection. In-memory databases
// skip WAL, which they do not support.
func dsn(path string) string {
	if path == ":memory:" {
		return fmt.Sprintf("file::memory:?_pragma=busy_timeout(%d)", busyTimeout.Milliseconds())
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_pragma=synchronous(NORMAL)",
		path, busyTimeout.Milliseconds())
}

// HashIP returns a salted, truncated SHA-256 of ip.
func (l *ContactLog) HashIP(ip string) string {
	if ip == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ip + l.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores a submission and returns its ID.
func (l *ContactLog) Record(ctx context.Context, s Submission) (int64, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	res, err := l.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (name, email, subject, hashed_ip, delivered, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Name, s.Email, s.Subject, s.HashedIP, s.Delivered, s.Error, s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("record submission: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit submissions, newest first.
func (l *ContactLog) Recent(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(subject, ''), COALESCE(hashed_ip, ''), delivered, COALESCE(error, ''), created_at
		FROM contact_submissions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.HashedIP, &s.Delivered, &s.Error, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Close closes the database.
func (l *ContactLog) Close() error {
	return l.db.Close()
}
