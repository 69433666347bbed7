package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
)

const clientColumns = `id, hashed_secret, salt, scopes, user_id, created_at, updated_at`

const (
	getClientByID = `SELECT ` + clientColumns + ` FROM oauth_clients WHERE id = ?`

	getClientByUserID = `SELECT ` + clientColumns + ` FROM oauth_clients WHERE user_id = ?`

	createClient = `INSERT INTO oauth_clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateClientScopes = `UPDATE oauth_clients SET scopes = ?, updated_at = ? WHERE id = ?`

	deleteClient = `DELETE FROM oauth_clients WHERE id = ?`
)

type clientsRepo struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c      domain.Client
		scopes string
		userID sql.NullString
	)
	err := row.Scan(&c.ID, &c.HashedSecret, &c.Salt, &scopes, &userID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Client{}, err
	}
	c.Scopes = splitAndFilter(scopes)
	c.UserID = mapNullStringPtr(userID)
	return c, nil
}

func (r *clientsRepo) Get(ctx context.Context, id string) (domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, getClientByID, id))
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) GetByUserID(ctx context.Context, userID string) (domain.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, getClientByUserID, userID))
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) Create(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	_, err := r.db.ExecContext(ctx, createClient,
		c.ID,
		c.HashedSecret,
		c.Salt,
		joinScopes(c.Scopes),
		mapOptionalString(c.UserID),
		c.CreatedAt.UTC(),
		c.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error {
	res, err := r.db.ExecContext(ctx, updateClientScopes, joinScopes(scopes), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *clientsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteClient, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
