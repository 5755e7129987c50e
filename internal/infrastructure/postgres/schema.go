package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema tables de l'application. Idempotent : exécuté à chaque démarrage.
const schema = `
CREATE TABLE IF NOT EXISTS shipments (
	id                 TEXT PRIMARY KEY,
	tracking_number    TEXT NOT NULL UNIQUE,
	client_name        TEXT NOT NULL,
	commodity_type     TEXT NOT NULL,
	description        TEXT NOT NULL,
	origin             TEXT NOT NULL,
	destination        TEXT NOT NULL,
	status             TEXT NOT NULL,
	eta                TIMESTAMPTZ NOT NULL,
	arrival_date       TIMESTAMPTZ,
	free_days          INT NOT NULL,
	documents          JSONB NOT NULL DEFAULT '[]',
	expenses           JSONB NOT NULL DEFAULT '[]',
	alerts             JSONB NOT NULL DEFAULT '[]',
	bl_number          TEXT NOT NULL,
	shipping_line      TEXT NOT NULL,
	container_number   TEXT NOT NULL DEFAULT '',
	customs_regime     TEXT NOT NULL,
	declaration_number TEXT NOT NULL DEFAULT '',
	declared_amount    NUMERIC,
	delivery_info      JSONB,
	created_at         TIMESTAMPTZ NOT NULL,
	updated_at         TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email));

CREATE TABLE IF NOT EXISTS team_members (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL,
	role        TEXT NOT NULL,
	status      TEXT NOT NULL,
	joined_date TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS team_members_email_lower_idx ON team_members (LOWER(email));
`

// EnsureSchema crée les tables manquantes.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: créer le schéma: %w", err)
	}
	return nil
}
