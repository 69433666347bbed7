package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/idx"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

// DefaultUserScopes are granted to users created without explicit permissions.
var DefaultUserScopes = []scope.Scope{scope.PrivacyRequestRead}

// UserCreate carries the fields accepted when creating a user.
type UserCreate struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Scopes    []string
}

type UserService struct {
	Store        store.Store
	Directory    *ClientDirectory
	Tokens       *TokenService
	Registry     *scope.Registry
	Hasher       cryptox.PasswordHasher
	IDLength     int
	SecretLength int
}

// CreateUser validates and stores a new user with a hashed password.
func (s *UserService) CreateUser(ctx context.Context, in UserCreate) (domain.User, error) {
	l := slogx.FromContext(ctx)

	// 1. Validate input
	if in.Username == "" || strings.ContainsFunc(in.Username, isSpace) {
		return domain.User{}, ErrInvalidUsername
	}
	if in.Password == "" {
		return domain.User{}, ErrInvalidPassword
	}

	scopes := DefaultUserScopes
	if len(in.Scopes) > 0 {
		validated, err := s.Registry.Validate(in.Scopes)
		if err != nil {
			return domain.User{}, err
		}
		scopes = validated
	}

	// 2. Reject taken usernames early, the unique index catches races
	if _, err := s.Store.Users().GetByUsername(ctx, in.Username); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("lookup username: %w", err)
	}

	// 3. Hash the password
	hash, err := s.Hasher.HashPassword(in.Password)
	if err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New(idx.PrefixUser).String(),
		Username:     in.Username,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Scopes:       append([]scope.Scope(nil), scopes...),
	}

	// 4. Persist
	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		l.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	l.Info("user created", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers returns users whose username contains filter, ignoring case. An
// empty filter lists everyone.
func (s *UserService) ListUsers(ctx context.Context, filter string) ([]domain.User, error) {
	users, err := s.Store.Users().List(ctx, strings.TrimSpace(filter))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes a user and, through the foreign key, their login client.
// Only the root client or the user's own login client may do this.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.Client, userID string) error {
	l := slogx.FromContext(ctx)

	if _, err := s.GetUser(ctx, userID); err != nil {
		return err
	}

	ownClient := caller.UserID != nil && *caller.UserID == userID
	if !s.Directory.isRoot(caller.ID) && !ownClient {
		l.Warn("user delete refused",
			slog.String("client_id", caller.ID),
			slog.String("user_id", userID),
		)
		return ErrForbidden
	}

	if err := s.Store.Users().Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}

	l.Info("user deleted", slog.String("user_id", userID))
	return nil
}

// Login checks a username and password, makes sure the user has a login
// client and returns a fresh access token for it.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.User, string, error) {
	l := slogx.FromContext(ctx)

	// 1. Check credentials
	user, err := s.Store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", fmt.Errorf("lookup user: %w", err)
	}
	if err := s.Hasher.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login with wrong password", slog.String("user_id", user.ID))
		return domain.User{}, "", ErrInvalidCredentials
	}

	// 2. Reuse or create the login client
	client, err := s.Directory.GetByUserID(ctx, user.ID)
	if errors.Is(err, ErrClientNotFound) {
		idLen, secretLen := clientLengths(s.IDLength, s.SecretLength)
		client, _, err = s.Directory.CreateClientAndSecret(ctx, idLen, secretLen, user.Scopes, WithUserID(user.ID))
		switch {
		case err == nil:
			l.Info("created login client", slog.String("user_id", user.ID), slog.String("client_id", client.ID))
		case errors.Is(err, ErrClientConflict):
			// A concurrent login for the same user may have created it first.
			if existing, getErr := s.Directory.GetByUserID(ctx, user.ID); getErr == nil {
				client, err = existing, nil
			}
		}
	}
	if err != nil {
		return domain.User{}, "", err
	}

	// 3. Record the login
	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID); err != nil {
		return domain.User{}, "", fmt.Errorf("record login: %w", err)
	}

	// 4. Issue a token for the login client
	token, err := s.Tokens.IssueToken(client)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err = s.GetUser(ctx, user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	l.Info("user logged in", slog.String("user_id", user.ID))
	return user, token, nil
}

// GetPermissions returns the scopes granted to a user.
func (s *UserService) GetPermissions(ctx context.Context, userID string) ([]scope.Scope, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Scopes, nil
}

// UpdatePermissions replaces a user's scopes. The user's login client gets the
// same scopes in the same transaction, so tokens issued before the change stop
// verifying if they claim anything that was removed.
func (s *UserService) UpdatePermissions(ctx context.Context, userID string, requested []string) ([]scope.Scope, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	scopes, err := s.Registry.Validate(requested)
	if err != nil {
		return nil, err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateScopes(ctx, userID, scopes); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		client, err := tx.Clients().GetByUserID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Clients().UpdateScopes(ctx, client.ID, scopes)
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		l.Error("failed to update permissions", slog.String("user_id", userID), slog.Any("error", err))
		return nil, fmt.Errorf("update permissions: %w", err)
	}

	l.Info("user permissions updated",
		slog.String("user_id", userID),
		slog.Any("scopes", scope.Strings(scopes)),
	)
	return scopes, nil
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
