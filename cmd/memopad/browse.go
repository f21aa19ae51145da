// ABOUTME: Browse command for the interactive memo list.
// ABOUTME: Live search, tag filter cycling and delete in a full-screen view.

package main

import (
	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse memos interactively",
	Long: `Open a full-screen memo list. Type to search, tab to cycle the tag filter,
ctrl+d to delete the selected memo. The list reloads when the terminal regains focus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), notes)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
