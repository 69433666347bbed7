package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newTokenCmd(g *globals) *cobra.Command {
	var (
		clientID     string
		clientSecret string
		basic        bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Exchange client credentials for an access token",
		Long: `Requests an access token with the client credentials grant and prints it.
The output can be exported as OAUTHCTL_TOKEN for the other commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clientID == "" || clientSecret == "" {
				return errors.New("--client-id and --client-secret are required")
			}

			sdk := g.sdk()
			grant := sdk.ClientCredentialsGrant
			if basic {
				grant = sdk.ClientCredentialsGrantBasic
			}

			tok, err := grant(cmd.Context(), clientID, clientSecret)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", os.Getenv("OAUTHCTL_CLIENT_ID"), "Client ID (env OAUTHCTL_CLIENT_ID)")
	cmd.Flags().StringVar(&clientSecret, "client-secret", os.Getenv("OAUTHCTL_CLIENT_SECRET"), "Client secret (env OAUTHCTL_CLIENT_SECRET)")
	cmd.Flags().BoolVar(&basic, "basic", false, "Send credentials with HTTP Basic authentication")

	return cmd
}
