package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		email         TEXT UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		mobile        TEXT UNIQUE,
		otp           TEXT NOT NULL DEFAULT '',
		otp_expiry    TIMESTAMPTZ,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		preptime      INT NOT NULL,
		category      TEXT NOT NULL,
		image         TEXT NOT NULL,
		cloudinary_id TEXT NOT NULL,
		description   TEXT NOT NULL,
		ingredients   TEXT NOT NULL,
		rating        DOUBLE PRECISION NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_requests (
		id            SERIAL PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL,
		requested_by  TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending',
		admin_message TEXT NOT NULL DEFAULT 'Your recipe is under review.',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id         SERIAL PRIMARY KEY,
		user_id    TEXT NOT NULL,
		message    TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'info',
		status     TEXT NOT NULL DEFAULT '',
		read       BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_recipe_requests_status ON recipe_requests (status)`,
}

// EnsureSchema creates the tables the service needs if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
