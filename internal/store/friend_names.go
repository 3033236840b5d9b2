package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// FriendName is the local contact name stored for a friendship.
type FriendName struct {
	FriendshipUUID string    `db:"friendship_uuid"`
	FriendName     string    `db:"friend_name"`
	NameTimestamp  int64     `db:"name_ts"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type FriendNameStore struct {
	db *sqlx.DB
}

func NewFriendNameStore(db *sqlx.DB) *FriendNameStore {
	return &FriendNameStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *FriendNameStore) q(query string) string { return s.db.Rebind(query) }

// Apply records name for a friendship if timestamp is newer than the one that
// set the current name. It reports whether the stored name changed. An older
// or equal timestamp leaves the row untouched, so replayed links are no-ops.
func (s *FriendNameStore) Apply(ctx context.Context, friendshipUUID, name string, timestamp int64) (bool, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var current int64
	err = tx.GetContext(ctx, &current, s.q(`SELECT name_ts FROM friend_names WHERE friendship_uuid = ?`), friendshipUUID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, s.q(`
			INSERT INTO friend_names (friendship_uuid, friend_name, name_ts, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`), friendshipUUID, name, timestamp, now, now)
		if err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	case timestamp <= current:
		return false, nil
	default:
		updated, err := s.updateIfNewer(ctx, tx, friendshipUUID, name, timestamp, now)
		if err != nil || !updated {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// updateIfNewer overwrites the stored name only while its timestamp is older
// than timestamp, and reports whether a row changed.
func (s *FriendNameStore) updateIfNewer(ctx context.Context, ex sqlx.ExecerContext, friendshipUUID, name string, timestamp int64, now time.Time) (bool, error) {
	res, err := ex.ExecContext(ctx, s.q(`
		UPDATE friend_names SET friend_name = ?, name_ts = ?, updated_at = ?
		WHERE friendship_uuid = ? AND name_ts < ?
	`), name, timestamp, now, friendshipUUID, timestamp)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the stored name for a friendship, or ErrNotFound.
func (s *FriendNameStore) Get(ctx context.Context, friendshipUUID string) (*FriendName, error) {
	var f FriendName
	err := s.db.GetContext(ctx, &f, s.q(`SELECT * FROM friend_names WHERE friendship_uuid = ?`), friendshipUUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all stored names ordered by name.
func (s *FriendNameStore) List(ctx context.Context) ([]*FriendName, error) {
	var names []*FriendName
	err := s.db.SelectContext(ctx, &names, `SELECT * FROM friend_names ORDER BY friend_name ASC, friendship_uuid ASC`)
	if err != nil {
		return nil, err
	}
	return names, nil
}

// Delete removes the stored name for a friendship. Returns ErrNotFound if none exists.
func (s *FriendNameStore) Delete(ctx context.Context, friendshipUUID string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM friend_names WHERE friendship_uuid = ?`), friendshipUUID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
