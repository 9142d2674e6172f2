// Package cli implements the trending command-line client for the REST API.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github-trending-api/internal/config"
)

// NewRootCmd builds the trending command tree.
func NewRootCmd() *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:           "trending",
		Short:         "CLI for the GitHub Trending Repositories API",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "Base URL of the API (defaults to API_URL)")

	client := func() (*apiClient, error) {
		if apiURL != "" {
			return newAPIClient(strings.TrimRight(apiURL, "/")), nil
		}
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
		return newAPIClient(cfg.APIURL), nil
	}

	root.AddCommand(
		newListCmd(client),
		newGetCmd(client),
		newSyncCmd(client, "sync", "start", "Start sync with GitHub"),
		newSyncCmd(client, "force-sync", "force", "Force sync with GitHub"),
		newSyncCmd(client, "stop-sync", "stop", "Stop the periodic sync"),
		newStatusCmd(client),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type clientFunc func() (*apiClient, error)

func printJSON(out io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}
