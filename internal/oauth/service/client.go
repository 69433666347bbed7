package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

// ClientService is the client management surface exposed over HTTP. Scopes
// arrive as raw strings and are checked against the registry before any write.
type ClientService struct {
	Directory    *ClientDirectory
	Registry     *scope.Registry
	IDLength     int
	SecretLength int
}

// clientLengths falls back to 16 bytes for unset id and secret lengths.
func clientLengths(id, secret int) (int, int) {
	if id <= 0 {
		id = cryptox.TokenSize128
	}
	if secret <= 0 {
		secret = cryptox.TokenSize128
	}
	return id, secret
}

// CreateClient registers a client with the requested scopes and returns it
// with its plaintext secret.
func (s *ClientService) CreateClient(ctx context.Context, requested []string) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	scopes, err := s.Registry.Validate(requested)
	if err != nil {
		l.Info("rejected client with invalid scopes", slog.Any("error", err))
		return domain.Client{}, "", err
	}

	idLen, secretLen := clientLengths(s.IDLength, s.SecretLength)
	client, secret, err := s.Directory.CreateClientAndSecret(ctx, idLen, secretLen, scopes)
	if err != nil {
		return domain.Client{}, "", err
	}

	l.Info("client created", slog.String("client_id", client.ID), slog.Int("scopes", len(client.Scopes)))
	return client, secret, nil
}

// DeleteClient removes a client. Deleting an unknown client is not an error.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) (bool, error) {
	deleted, err := s.Directory.Delete(ctx, clientID)
	if err != nil {
		return false, err
	}
	if deleted {
		slogx.FromContext(ctx).Info("client deleted", slog.String("client_id", clientID))
	}
	return deleted, nil
}

// GetClientScopes returns the scopes held by a client, including the root client.
func (s *ClientService) GetClientScopes(ctx context.Context, clientID string) ([]scope.Scope, error) {
	res, err := s.Directory.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return res.Client.Scopes, nil
}

// SetClientScopes replaces a client's scopes.
func (s *ClientService) SetClientScopes(ctx context.Context, clientID string, requested []string) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	// 1. Client must exist
	res, err := s.Directory.Get(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	// 2. Every scope must be registered
	scopes, err := s.Registry.Validate(requested)
	if err != nil {
		l.Info("rejected scope update", slog.String("client_id", clientID), slog.Any("error", err))
		return domain.Client{}, err
	}

	// 3. Persist
	updated, err := s.Directory.UpdateScopes(ctx, res.Client, scopes)
	if err != nil {
		return domain.Client{}, err
	}

	l.Info("client scopes updated",
		slog.String("client_id", clientID),
		slog.Any("scopes", scope.Strings(updated.Scopes)),
	)
	return updated, nil
}

// ListScopes returns every registered scope, sorted.
func (s *ClientService) ListScopes() []scope.Scope {
	return s.Registry.All()
}
