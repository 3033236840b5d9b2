package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Identity is an anonymous identity: a nickname and a hashed secret.
type Identity struct {
	ID         string    `db:"id"`
	NickName   string    `db:"nick_name"`
	SecretHash string    `db:"secret_hash"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type IdentityStore struct {
	db *sqlx.DB
}

func NewIdentityStore(db *sqlx.DB) *IdentityStore {
	return &IdentityStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *IdentityStore) q(query string) string { return s.db.Rebind(query) }

// Create stores a new identity under a generated UUID. secretHash must already
// be hashed. Returns ErrNickNameTaken if the nickname is in use.
func (s *IdentityStore) Create(ctx context.Context, nickName, secretHash string) (*Identity, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO identities (id, nick_name, secret_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`), id, nickName, secretHash, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrNickNameTaken
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the identity with the given id, or ErrNotFound.
func (s *IdentityStore) GetByID(ctx context.Context, id string) (*Identity, error) {
	var i Identity
	err := s.db.GetContext(ctx, &i, s.q(`SELECT * FROM identities WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// GetByNickName returns the identity using nickName, or ErrNotFound.
func (s *IdentityStore) GetByNickName(ctx context.Context, nickName string) (*Identity, error) {
	var i Identity
	err := s.db.GetContext(ctx, &i, s.q(`SELECT * FROM identities WHERE nick_name = ?`), nickName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// UpdateSecret replaces the stored secret hash for id.
func (s *IdentityStore) UpdateSecret(ctx context.Context, id, secretHash string) error {
	res, err := s.db.ExecContext(ctx, s.q(`UPDATE identities SET secret_hash = ?, updated_at = ? WHERE id = ?`),
		secretHash, time.Now().UTC(), id)
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
