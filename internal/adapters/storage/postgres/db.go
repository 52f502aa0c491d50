package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pet-walks/internal/platform/apperr"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = apperr.NotFound("postgres", "record not found")
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate crea las tablas si no existen. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS tickets (
	id                  TEXT PRIMARY KEY,
	user_id             TEXT NOT NULL,
	subject             TEXT NOT NULL,
	message             TEXT NOT NULL,
	category            TEXT NOT NULL,
	status              TEXT NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL,
	response_agent      TEXT,
	response_content    TEXT,
	response_date       TIMESTAMPTZ,
	cancellation_reason TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS tickets_user_idx ON tickets (user_id);

CREATE TABLE IF NOT EXISTS walker_registrations (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL,
	full_name         TEXT NOT NULL,
	phone             TEXT NOT NULL,
	dni               TEXT NOT NULL,
	city              TEXT NOT NULL,
	province          TEXT NOT NULL,
	dni_front         TEXT NOT NULL,
	dni_back          TEXT NOT NULL,
	selfie_with_dni   TEXT NOT NULL,
	status            TEXT NOT NULL,
	submitted_at      TIMESTAMPTZ NOT NULL,
	reviewed_at       TIMESTAMPTZ,
	reviewed_by       TEXT NOT NULL DEFAULT '',
	admin_notes       TEXT NOT NULL DEFAULT '',
	application_score INTEGER
);
CREATE INDEX IF NOT EXISTS walker_registrations_user_idx ON walker_registrations (user_id);

CREATE TABLE IF NOT EXISTS walks (
	id             TEXT PRIMARY KEY,
	owner_id       TEXT NOT NULL,
	walker_id      TEXT NOT NULL,
	status         TEXT NOT NULL,
	scheduled_at   TIMESTAMPTZ NOT NULL,
	start_address  TEXT NOT NULL,
	total_price    DOUBLE PRECISION NOT NULL,
	pet_ids        TEXT[] NOT NULL,
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS walks_walker_idx ON walks (walker_id);
CREATE INDEX IF NOT EXISTS walks_owner_idx ON walks (owner_id);

CREATE TABLE IF NOT EXISTS chat_messages (
	id          TEXT PRIMARY KEY,
	trip_id     TEXT NOT NULL,
	sender_id   TEXT NOT NULL,
	sender_type TEXT NOT NULL,
	sender_name TEXT NOT NULL,
	content     TEXT NOT NULL,
	sent_at     TIMESTAMPTZ NOT NULL,
	is_read     BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS chat_messages_trip_idx ON chat_messages (trip_id, sent_at);

CREATE TABLE IF NOT EXISTS user_roles (
	user_id TEXT PRIMARY KEY,
	role    TEXT NOT NULL
);
`
