// ABOUTME: Serve command for the local HTTP API.
// ABOUTME: Runs the fiber server until interrupted.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve memos, tags and account login over HTTP for a local front end.

Set api_secret in the config (or MEMOPAD_API_SECRET) to require the bearer
token returned by the login routes on memo and tag routes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		server := api.New(notes, identity, api.WithSecret(cfg.APISecret), api.WithLogger(logger))
		logger.Info("serving", "addr", addr)
		fmt.Printf("Listening on http://%s\n", addr)
		return server.ListenContext(cmd.Context(), addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
