package migrations

// friend_names holds the local contact name for each friendship. name_ts is
// the epoch-ms timestamp of the share payload that last set the name.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateFriendNames, downCreateFriendNames)
}

func upCreateFriendNames(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS friend_names (
    friendship_uuid TEXT PRIMARY KEY,
    friend_name     TEXT NOT NULL,
    name_ts         BIGINT NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS friend_names (
    friendship_uuid VARCHAR(255) PRIMARY KEY,
    friend_name     TEXT NOT NULL,
    name_ts         BIGINT NOT NULL,
    created_at      TIMESTAMP(6) NOT NULL,
    updated_at      TIMESTAMP(6) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS friend_names (
    friendship_uuid TEXT PRIMARY KEY,
    friend_name     TEXT NOT NULL,
    name_ts         INTEGER NOT NULL,
    created_at      TIMESTAMP NOT NULL,
    updated_at      TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create friend_names table: %w", err)
	}
	return nil
}

func downCreateFriendNames(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS friend_names`)
	return err
}
