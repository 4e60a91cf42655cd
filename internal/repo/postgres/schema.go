package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables on boot if they are missing. The schema is
// small enough that idempotent DDL beats carrying a migration tool.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			is_staff      BOOLEAN NOT NULL DEFAULT FALSE,
			is_superuser  BOOLEAN NOT NULL DEFAULT FALSE,
			is_active     BOOLEAN NOT NULL DEFAULT TRUE,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS auth_tokens (
			id         UUID PRIMARY KEY,
			user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token_hash TEXT NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			revoked_at TIMESTAMPTZ
		);

		CREATE TABLE IF NOT EXISTS recipes (
			id           BIGSERIAL PRIMARY KEY,
			owner_id     UUID NOT NULL REFERENCES users(id),
			title        TEXT NOT NULL,
			time_minutes INTEGER NOT NULL,
			price        NUMERIC(5,2) NOT NULL,
			link         TEXT NOT NULL DEFAULT '',
			description  TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_recipes_owner ON recipes(owner_id);

		CREATE TABLE IF NOT EXISTS tags (
			id       BIGSERIAL PRIMARY KEY,
			owner_id UUID NOT NULL REFERENCES users(id),
			name     TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tags_owner ON tags(owner_id);
	`)

	return err
}
