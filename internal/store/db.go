// Package store persists organizations, alerts, postings and the
// notification ledger in SQLite. It is the only shared mutable state in the
// pipeline; every dedup-relevant write goes through an atomic
// insert-if-absent or identity-keyed upsert.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
}

func Open(path string) (*DB, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite wants a single writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	return &DB{Pool: pool}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

func (d *DB) Migrate() error {
	tx, err := d.Pool.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS organizations (
  slug TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  source_type TEXT NOT NULL,
  board_token TEXT NOT NULL,
  active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS alerts (
  id TEXT PRIMARY KEY,
  owner TEXT NOT NULL,
  org_slugs TEXT NOT NULL DEFAULT '[]',
  title_keywords TEXT NOT NULL DEFAULT '[]',
  exclude_keywords TEXT NOT NULL DEFAULT '[]',
  keyword_mode TEXT NOT NULL DEFAULT 'any',
  locations TEXT NOT NULL DEFAULT '[]',
  department TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  endpoint_kind TEXT NOT NULL DEFAULT '',
  endpoint_ref TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS postings (
  org_slug TEXT NOT NULL,
  external_id TEXT NOT NULL,
  title TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  department TEXT NOT NULL DEFAULT '',
  job_type TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL DEFAULT '',
  fingerprint TEXT NOT NULL,
  first_seen TEXT NOT NULL,
  last_seen TEXT NOT NULL,
  PRIMARY KEY (org_slug, external_id)
);

CREATE TABLE IF NOT EXISTS notifications (
  alert_id TEXT NOT NULL,
  fingerprint TEXT NOT NULL,
  sent_at TEXT NOT NULL,
  outcome TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_notified_once
  ON notifications(alert_id, fingerprint) WHERE outcome = 'sent';
CREATE INDEX IF NOT EXISTS idx_postings_fingerprint ON postings(fingerprint);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}
