// ABOUTME: Show command for displaying a single memo.
// ABOUTME: Renders the memo markup as markdown with glamour.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a memo",
	Long:  `Display a memo's full content.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		m, err := notes.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get memo: %w", err)
		}

		fmt.Print(ui.FormatMemoHeader(m))

		content, _ := ui.FormatMemoContent(m.Content)
		fmt.Print(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
