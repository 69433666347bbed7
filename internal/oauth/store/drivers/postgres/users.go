package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"

	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, username, password_hash, first_name, last_name, scopes, last_login_at, created_at, updated_at`

const (
	getUserByID       = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	listUsers = `SELECT ` + userColumns + ` FROM users
WHERE $1::text = '' OR username ILIKE '%' || $1::text || '%'
ORDER BY username`

	createUser = `INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	updateUserScopes    = `UPDATE users SET scopes = $1, updated_at = $2 WHERE id = $3`
	updateUserLastLogin = `UPDATE users SET last_login_at = $1, updated_at = $1 WHERE id = $2`
	deleteUser          = `DELETE FROM users WHERE id = $1`
)

type usersRepo struct {
	db dbtx
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		scopes    []string
		lastLogin sql.NullTime
	)
	err := scanRow(row, func(m *pgtype.Map) []any {
		return []any{
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.FirstName,
			&u.LastName,
			m.SQLScanner(&scopes),
			&lastLogin,
			&u.CreatedAt,
			&u.UpdatedAt,
		}
	})
	if err != nil {
		return domain.User{}, err
	}
	u.Scopes = fromScopeArray(scopes)
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}

func (r *usersRepo) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserByID, id))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserByUsername, username))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context, usernameFilter string) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsers, usernameFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	var lastLogin sql.NullTime
	if u.LastLoginAt != nil {
		lastLogin = sql.NullTime{Time: *u.LastLoginAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, createUser,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		scopeArray(u.Scopes),
		lastLogin,
		u.CreatedAt,
		u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error {
	res, err := r.db.ExecContext(ctx, updateUserScopes, scopeArray(scopes), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, updateUserLastLogin, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
