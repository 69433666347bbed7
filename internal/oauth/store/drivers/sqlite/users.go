package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
)

const userColumns = `id, username, password_hash, first_name, last_name, scopes, last_login_at, created_at, updated_at`

const (
	getUserByID = `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	getUserByUsername = `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	// LIKE is case-insensitive for ASCII in SQLite.
	listUsers = `SELECT ` + userColumns + ` FROM users
WHERE ?1 = '' OR username LIKE '%' || ?1 || '%'
ORDER BY username`

	createUser = `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	updateUserScopes = `UPDATE users SET scopes = ?, updated_at = ? WHERE id = ?`

	updateUserLastLogin = `UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`

	deleteUser = `DELETE FROM users WHERE id = ?`
)

type usersRepo struct {
	db dbtx
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		scopes    string
		lastLogin sql.NullTime
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&scopes,
		&lastLogin,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Scopes = splitAndFilter(scopes)
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
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	var lastLogin sql.NullTime
	if u.LastLoginAt != nil {
		lastLogin = sql.NullTime{Time: u.LastLoginAt.UTC(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, createUser,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		joinScopes(u.Scopes),
		lastLogin,
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateScopes(ctx context.Context, id string, scopes []scope.Scope) error {
	res, err := r.db.ExecContext(ctx, updateUserScopes, joinScopes(scopes), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, updateUserLastLogin, now, now, id)
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
