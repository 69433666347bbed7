package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/domain"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/metrics"
	"github.com/aussiebroadwan/oauthlib/internal/oauth/store"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/aussiebroadwan/oauthlib/pkg/slogx"
)

// RootClientConfig describes the privileged client that is never stored.
// An empty ID disables it.
type RootClientConfig struct {
	ID           string
	HashedSecret string
	Salt         string
	Scopes       []scope.Scope
}

// Enabled reports whether a root client id is configured.
func (c RootClientConfig) Enabled() bool { return c.ID != "" }

// Validate fails with ErrConfiguration when an id is set without the hash and
// salt needed to check its secret.
func (c RootClientConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.HashedSecret == "" || c.Salt == "" {
		return fmt.Errorf("%w: root client id is set but its secret hash or salt is missing", ErrConfiguration)
	}
	return nil
}

// Origin says where a resolved client came from.
type Origin int

const (
	OriginStored Origin = iota
	OriginSynthesized
)

func (o Origin) String() string {
	switch o {
	case OriginStored:
		return "stored"
	case OriginSynthesized:
		return "synthesized"
	default:
		return "unknown"
	}
}

// Resolution is the result of a client lookup.
type Resolution struct {
	Client domain.Client
	Origin Origin
}

// IsRoot reports whether the client is the synthesized root client.
func (r Resolution) IsRoot() bool { return r.Origin == OriginSynthesized }

// ClientDirectory creates, resolves and mutates OAuth clients. Lookups for the
// root client id never reach the store.
type ClientDirectory struct {
	Store   store.Store
	Root    RootClientConfig
	Metrics *metrics.Recorder
}

type createOptions struct {
	userID *string
}

// CreateOption customises CreateClientAndSecret.
type CreateOption func(*createOptions)

// WithUserID links the new client to a user, making it that user's login client.
func WithUserID(userID string) CreateOption {
	return func(o *createOptions) { o.userID = &userID }
}

// CreateClientAndSecret generates a fresh id, secret and salt, persists the
// hashed secret and returns the plaintext secret. The secret is not
// recoverable afterwards.
func (d *ClientDirectory) CreateClientAndSecret(
	ctx context.Context,
	idByteLength, secretByteLength int,
	scopes []scope.Scope,
	opts ...CreateOption,
) (domain.Client, string, error) {
	l := slogx.FromContext(ctx)

	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}

	// 1. Generate credentials
	clientID, err := cryptox.GenerateSecureRandomString(idByteLength)
	if err != nil {
		return domain.Client{}, "", fmt.Errorf("generate client id: %w", err)
	}
	secret, err := cryptox.GenerateSecureRandomString(secretByteLength)
	if err != nil {
		return domain.Client{}, "", fmt.Errorf("generate client secret: %w", err)
	}
	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return domain.Client{}, "", fmt.Errorf("generate salt: %w", err)
	}

	if d.Root.Enabled() && clientID == d.Root.ID {
		d.Metrics.ClientWrite(metrics.OpCreate, metrics.ResultFailure)
		return domain.Client{}, "", ErrClientConflict
	}

	client := domain.Client{
		ID:           clientID,
		HashedSecret: cryptox.HashWithSalt([]byte(secret), []byte(salt)),
		Salt:         salt,
		Scopes:       slices.Clone(scopes),
		UserID:       o.userID,
	}
	if client.Scopes == nil {
		client.Scopes = []scope.Scope{}
	}

	// 2. Persist
	if err := d.Store.Clients().Create(ctx, client); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Warn("client already exists", slog.String("client_id", clientID))
			d.Metrics.ClientWrite(metrics.OpCreate, metrics.ResultFailure)
			return domain.Client{}, "", fmt.Errorf("%w: %w", ErrClientConflict, err)
		}
		l.Error("failed to create client", slog.Any("error", err))
		d.Metrics.ClientWrite(metrics.OpCreate, metrics.ResultError)
		return domain.Client{}, "", fmt.Errorf("%w: %w", ErrClientWriteFailed, err)
	}

	d.Metrics.ClientWrite(metrics.OpCreate, metrics.ResultSuccess)
	return client, secret, nil
}

// Get resolves id to a client. The root id is answered from configuration.
func (d *ClientDirectory) Get(ctx context.Context, id string) (Resolution, error) {
	if d.Root.Enabled() && id == d.Root.ID {
		root, err := d.rootClient()
		if err != nil {
			return Resolution{}, err
		}
		return Resolution{Client: root, Origin: OriginSynthesized}, nil
	}

	client, err := d.Store.Clients().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Resolution{}, ErrClientNotFound
		}
		return Resolution{}, fmt.Errorf("get client: %w", err)
	}
	return Resolution{Client: client, Origin: OriginStored}, nil
}

// GetByUserID returns the login client linked to a user.
func (d *ClientDirectory) GetByUserID(ctx context.Context, userID string) (domain.Client, error) {
	client, err := d.Store.Clients().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("get client by user: %w", err)
	}
	return client, nil
}

// CredentialsValid recomputes the salted hash of secret and compares it with
// the stored digest in constant time.
func (d *ClientDirectory) CredentialsValid(client domain.Client, secret string) bool {
	if client.HashedSecret == "" {
		return false
	}
	provided := cryptox.HashWithSalt([]byte(secret), []byte(client.Salt))
	return cryptox.HashesEqual(provided, client.HashedSecret)
}

// UpdateScopes overwrites the client's scopes and returns the updated client.
func (d *ClientDirectory) UpdateScopes(ctx context.Context, client domain.Client, scopes []scope.Scope) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	if d.isRoot(client.ID) {
		d.Metrics.ClientWrite(metrics.OpUpdateScopes, metrics.ResultForbidden)
		return domain.Client{}, ErrRootClientProtected
	}

	scopes = slices.Clone(scopes)
	if scopes == nil {
		scopes = []scope.Scope{}
	}

	if err := d.Store.Clients().UpdateScopes(ctx, client.ID, scopes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			d.Metrics.ClientWrite(metrics.OpUpdateScopes, metrics.ResultFailure)
			return domain.Client{}, ErrClientNotFound
		}
		l.Error("failed to update client scopes", slog.String("client_id", client.ID), slog.Any("error", err))
		d.Metrics.ClientWrite(metrics.OpUpdateScopes, metrics.ResultError)
		return domain.Client{}, fmt.Errorf("%w: %w", ErrClientWriteFailed, err)
	}

	d.Metrics.ClientWrite(metrics.OpUpdateScopes, metrics.ResultSuccess)
	client.Scopes = scopes
	return client, nil
}

// Delete removes a stored client. It reports false when there was nothing to delete.
func (d *ClientDirectory) Delete(ctx context.Context, id string) (bool, error) {
	l := slogx.FromContext(ctx)

	if d.isRoot(id) {
		d.Metrics.ClientWrite(metrics.OpDelete, metrics.ResultForbidden)
		return false, ErrRootClientProtected
	}

	if err := d.Store.Clients().Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		l.Error("failed to delete client", slog.String("client_id", id), slog.Any("error", err))
		d.Metrics.ClientWrite(metrics.OpDelete, metrics.ResultError)
		return false, fmt.Errorf("%w: %w", ErrClientWriteFailed, err)
	}

	d.Metrics.ClientWrite(metrics.OpDelete, metrics.ResultSuccess)
	return true, nil
}

func (d *ClientDirectory) isRoot(id string) bool {
	return d.Root.Enabled() && id == d.Root.ID
}

func (d *ClientDirectory) rootClient() (domain.Client, error) {
	if err := d.Root.Validate(); err != nil {
		return domain.Client{}, err
	}
	scopes := slices.Clone(d.Root.Scopes)
	if scopes == nil {
		scopes = []scope.Scope{}
	}
	return domain.Client{
		ID:           d.Root.ID,
		HashedSecret: d.Root.HashedSecret,
		Salt:         d.Root.Salt,
		Scopes:       scopes,
	}, nil
}
