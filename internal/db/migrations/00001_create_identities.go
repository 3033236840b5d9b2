package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateIdentities, downCreateIdentities)
}

func upCreateIdentities(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS identities (
    id          TEXT PRIMARY KEY,
    nick_name   TEXT NOT NULL UNIQUE,
    secret_hash TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS identities (
    id          VARCHAR(36) PRIMARY KEY,
    nick_name   VARCHAR(400) NOT NULL UNIQUE,
    secret_hash VARCHAR(100) NOT NULL,
    created_at  TIMESTAMP(6) NOT NULL,
    updated_at  TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS identities (
    id          TEXT PRIMARY KEY,
    nick_name   TEXT NOT NULL UNIQUE,
    secret_hash TEXT NOT NULL,
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create identities table: %w", err)
	}
	return nil
}

func downCreateIdentities(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS identities`)
	return err
}
