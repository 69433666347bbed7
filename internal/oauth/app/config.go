package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/oauthlib/internal/oauth/service"
	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/aussiebroadwan/oauthlib/pkg/scope"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                 string        `envconfig:"ENV" default:"dev"`                     // dev, staging, prod
	LogLevel            string        `envconfig:"LOG_LEVEL" default:"info"`              // debug, info, warn, error
	LogFormat           string        `envconfig:"LOG_FORMAT" default:"json"`             // json, text
	LogPII              bool          `envconfig:"LOG_PII" default:"false"`               // log usernames and names unmasked
	Port                int           `envconfig:"PORT" default:"8080"`                   // HTTP server port
	ShutdownGracePeriod time.Duration `envconfig:"SHUTDOWN_GRACE_PERIOD" default:"10s"`   // graceful shutdown timeout

	DatabaseDriver string `envconfig:"OAUTH_DATABASE_DRIVER" default:"sqlite"`
	DatabaseFile   string `envconfig:"OAUTH_DATABASE_FILE" default:"oauth.db"` // sqlite only
	DatabaseURL    string `envconfig:"OAUTH_DATABASE_URL"`                     // postgres only
	PepperFile     string `envconfig:"OAUTH_PEPPER_FILE" default:"pepper"`     // pepper for user passwords

	EncryptionKey            string `envconfig:"OAUTH_APP_ENCRYPTION_KEY"` // exactly 32 bytes
	Encoding                 string `envconfig:"OAUTH_ENCODING" default:"utf-8"`
	AccessTokenExpireMinutes int    `envconfig:"OAUTH_ACCESS_TOKEN_EXPIRE_MINUTES" default:"11520"`
	ClientIDLengthBytes      int    `envconfig:"OAUTH_CLIENT_ID_LENGTH_BYTES" default:"16"`
	ClientSecretLengthBytes  int    `envconfig:"OAUTH_CLIENT_SECRET_LENGTH_BYTES" default:"16"`

	// Root client: either a plaintext secret, hashed at startup, or a
	// precomputed hash and salt pair.
	RootClientID         string `envconfig:"OAUTH_ROOT_CLIENT_ID"`
	RootClientSecret     string `envconfig:"OAUTH_ROOT_CLIENT_SECRET"`
	RootClientSecretHash string `envconfig:"OAUTH_ROOT_CLIENT_SECRET_HASH"`
	RootClientSecretSalt string `envconfig:"OAUTH_ROOT_CLIENT_SECRET_SALT"`
}

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", service.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem at once, wrapped in service.ErrConfiguration.
func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
		if strings.TrimSpace(c.DatabaseFile) == "" {
			errs = append(errs, errors.New("OAUTH_DATABASE_FILE is required for sqlite"))
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			errs = append(errs, errors.New("OAUTH_DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("OAUTH_DATABASE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DatabaseDriver))
	}

	if len(c.EncryptionKey) != jwe.KeySize {
		errs = append(errs, fmt.Errorf("OAUTH_APP_ENCRYPTION_KEY must be exactly %d bytes, got %d", jwe.KeySize, len(c.EncryptionKey)))
	}

	switch strings.ToLower(c.Encoding) {
	case "utf-8", "utf8":
	default:
		errs = append(errs, fmt.Errorf("OAUTH_ENCODING %q is not supported, only utf-8", c.Encoding))
	}

	if c.AccessTokenExpireMinutes <= 0 {
		errs = append(errs, errors.New("OAUTH_ACCESS_TOKEN_EXPIRE_MINUTES must be positive"))
	}
	if c.ClientIDLengthBytes <= 0 || c.ClientSecretLengthBytes <= 0 {
		errs = append(errs, errors.New("client id and secret lengths must be positive"))
	}

	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}

	if err := c.validateRoot(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", service.ErrConfiguration, errors.Join(errs...))
	}
	return nil
}

func (c Config) validateRoot() error {
	hasPlain := c.RootClientSecret != ""
	hasHash := c.RootClientSecretHash != "" || c.RootClientSecretSalt != ""

	switch {
	case c.RootClientID == "" && (hasPlain || hasHash):
		return errors.New("root client secret is set without OAUTH_ROOT_CLIENT_ID")
	case c.RootClientID == "":
		return nil
	case hasPlain && hasHash:
		return errors.New("set either OAUTH_ROOT_CLIENT_SECRET or the hash and salt pair, not both")
	case hasHash && (c.RootClientSecretHash == "" || c.RootClientSecretSalt == ""):
		return errors.New("OAUTH_ROOT_CLIENT_SECRET_HASH and OAUTH_ROOT_CLIENT_SECRET_SALT must be set together")
	case !hasPlain && !hasHash:
		return errors.New("OAUTH_ROOT_CLIENT_ID is set without a secret")
	}
	return nil
}

// TokenLifetime is the access token lifetime as a duration.
func (c Config) TokenLifetime() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// RootClient builds the root client settings. A plaintext secret is hashed
// with a fresh salt, so it never lives past startup. The root client holds
// every scope in registry.
func (c Config) RootClient(registry *scope.Registry) (service.RootClientConfig, error) {
	if c.RootClientID == "" {
		return service.RootClientConfig{}, nil
	}

	root := service.RootClientConfig{
		ID:           c.RootClientID,
		HashedSecret: c.RootClientSecretHash,
		Salt:         c.RootClientSecretSalt,
		Scopes:       registry.All(),
	}

	if c.RootClientSecret != "" {
		salt, err := cryptox.GenerateSalt()
		if err != nil {
			return service.RootClientConfig{}, err
		}
		root.Salt = salt
		root.HashedSecret = cryptox.HashWithSalt([]byte(c.RootClientSecret), []byte(salt))
	}

	if err := root.Validate(); err != nil {
		return service.RootClientConfig{}, err
	}
	return root, nil
}
