// Package app provides the commands of the oauthctl admin CLI.
package app

import (
	"errors"
	"os"

	"github.com/aussiebroadwan/oauthlib/pkg/authsdk"
	"github.com/spf13/cobra"
)

const (
	envURL   = "OAUTHCTL_URL"
	envToken = "OAUTHCTL_TOKEN"
)

var errNoToken = errors.New("an access token is required, pass --token or set " + envToken)

// globals holds the persistent flags shared by every command.
type globals struct {
	url   string
	token string
}

func (g *globals) sdk() *authsdk.SDKClient {
	return authsdk.NewSDKClient(g.url)
}

func (g *globals) session() (*authsdk.Session, error) {
	if g.token == "" {
		return nil, errNoToken
	}
	return g.sdk().NewSessionFromToken(g.token), nil
}

// NewRootCmd creates the oauthctl command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:               "oauthctl",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Manage clients and scopes of an OAuth service",
		Long: `oauthctl talks to a running OAuth service to issue tokens and manage clients.
It also prints the values needed to configure the root client and the encryption key.`,
	}

	defaultURL := os.Getenv(envURL)
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&g.url, "url", defaultURL, "Service base URL (env "+envURL+")")
	rootCmd.PersistentFlags().StringVar(&g.token, "token", os.Getenv(envToken), "Bearer token (env "+envToken+")")

	rootCmd.AddCommand(
		newTokenCmd(g),
		newClientCmd(g),
		newScopesCmd(g),
		newHashSecretCmd(),
		newGenKeyCmd(),
	)

	return rootCmd
}
