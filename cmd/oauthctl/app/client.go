package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newClientCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage OAuth clients",
	}

	cmd.AddCommand(
		newClientCreateCmd(g),
		newClientDeleteCmd(g),
		newClientScopesCmd(g),
	)
	return cmd
}

func newClientCreateCmd(g *globals) *cobra.Command {
	var scopes []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client and print its credentials",
		Long:  "Creates a client. The secret is printed once and cannot be retrieved later.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := g.session()
			if err != nil {
				return err
			}

			created, err := sess.CreateClient(cmd.Context(), scopes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "client_id=%s\nclient_secret=%s\n", created.ClientID, created.ClientSecret)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&scopes, "scope", nil, "Scope to grant, repeatable or comma separated")
	return cmd
}

func newClientDeleteCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CLIENT_ID",
		Short: "Delete a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := g.session()
			if err != nil {
				return err
			}
			return sess.DeleteClient(cmd.Context(), args[0])
		},
	}
}

func newClientScopesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scopes",
		Short: "Read or replace a client's scopes",
	}

	getCmd := &cobra.Command{
		Use:   "get CLIENT_ID",
		Short: "Print a client's scopes, one per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := g.session()
			if err != nil {
				return err
			}

			scopes, err := sess.GetClientScopes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printLines(cmd, scopes)
			return nil
		},
	}

	var scopes []string
	setCmd := &cobra.Command{
		Use:   "set CLIENT_ID",
		Short: "Replace a client's scopes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := g.session()
			if err != nil {
				return err
			}

			updated, err := sess.SetClientScopes(cmd.Context(), args[0], scopes)
			if err != nil {
				return err
			}
			printLines(cmd, updated)
			return nil
		},
	}
	setCmd.Flags().StringSliceVar(&scopes, "scope", nil, "Scope to grant, repeatable or comma separated")

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

func newScopesCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "scopes",
		Short: "List every scope the service knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := g.session()
			if err != nil {
				return err
			}

			scopes, err := sess.ListScopes(cmd.Context())
			if err != nil {
				return err
			}
			printLines(cmd, scopes)
			return nil
		},
	}
}

func printLines(cmd *cobra.Command, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
}
