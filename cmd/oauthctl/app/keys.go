package app

import (
	"fmt"

	"github.com/aussiebroadwan/oauthlib/pkg/cryptox"
	"github.com/aussiebroadwan/oauthlib/pkg/jwe"
	"github.com/spf13/cobra"
)

func newHashSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-secret SECRET",
		Short: "Hash a root client secret with a fresh salt",
		Long: `Prints OAUTH_ROOT_CLIENT_SECRET_HASH and OAUTH_ROOT_CLIENT_SECRET_SALT lines
so the plaintext root secret does not have to be kept in the service environment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			salt, err := cryptox.GenerateSalt()
			if err != nil {
				return err
			}
			hash := cryptox.HashWithSalt([]byte(args[0]), []byte(salt))

			fmt.Fprintf(cmd.OutOrStdout(), "OAUTH_ROOT_CLIENT_SECRET_HASH=%s\n", hash)
			fmt.Fprintf(cmd.OutOrStdout(), "OAUTH_ROOT_CLIENT_SECRET_SALT='%s'\n", salt)
			return nil
		},
	}
}

func newGenKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen-key",
		Short: "Generate a value for OAUTH_APP_ENCRYPTION_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Hex doubles the length, so half the key size in random bytes
			key, err := cryptox.GenerateSecureRandomString(jwe.KeySize / 2)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
