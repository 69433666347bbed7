package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"

	"github.com/jackc/pgx/v5/pgtype"
)

const clientColumns = `id, hashed_secret, salt, scopes, user_id, created_at, updated_at`

const (
	getClientByID     = `SELECT ` + clientColumns + ` FROM oauth_clients WHERE id = $1`
	getClientByUserID = `SELECT ` + clientColumns + ` FROM oauth_clients WHERE user_id = $1`

	createClient = `INSERT INTO oauth_clients (` + clientColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateClientScopes = `UPDATE oauth_clients SET scopes = $1, updated_at = $2 WHERE id = $3`
	deleteClient       = `DELETE FROM oauth_clients WHERE id = $1`
)

type clientsRepo struct {
	db dbtx
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c      domain.Client
		scopes []string
		userID sql.NullString
	)
	err := scanRow(row, func(m *pgtype.Map) []any {
		return []any{&c.ID, &c.HashedSecret, &c.Salt, m.SQLScanner(&scopes), &userID, &c.CreatedAt, &c.UpdatedAt}
	})
	if err != nil {
		return domain.Client{}, err
	}
	c.Scopes = fromScopeArray(scopes)
	if userID.Valid {
		id := userID.String
		c.UserID = &id
	}
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
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}

	var userID sql.NullString
	if c.UserID != nil {
		userID = sql.NullString{String: *c.UserID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, createClient,
		c.ID,
		c.HashedSecret,
		c.Salt,
		scopeArray(c.Scopes),
		userID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *clientsRepo) UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error {
	res, err := r.db.ExecContext(ctx, updateClientScopes, scopeArray(scopes), time.Now().UTC(), id)
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
