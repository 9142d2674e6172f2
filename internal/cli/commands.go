// internal/cli/commands.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListCmd lists repositories page by page.
// Usage: trending list [-p page] [-l limit]
func newListCmd(client clientFunc) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			body, err := c.listRepos(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&limit, "limit", "l", 30, "Items per page")
	return cmd
}

// newGetCmd fetches one repository by id or "owner/repo".
func newGetCmd(client clientFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "get <idOrName>",
		Short: "Get repository by ID or name (owner/repo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			body, err := c.getRepo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
}

// newSyncCmd posts to /sync/{action} and prints the returned message.
func newSyncCmd(client clientFunc, use, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			msg, err := c.syncAction(cmd.Context(), action)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
}

func newStatusCmd(client clientFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync scheduler state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client()
			if err != nil {
				return err
			}
			body, err := c.syncStatus(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
}
