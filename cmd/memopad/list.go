// ABOUTME: List command for displaying memos grouped by tag.
// ABOUTME: Supports filtering by search text and by tag.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List memos",
	Long: `List memos grouped by tag. A memo with several tags appears under each.
Memos without tags are listed under "no tag".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tagFlag, _ := cmd.Flags().GetString("tag")
		searchFlag, _ := cmd.Flags().GetString("search")

		v, err := notes.View(cmd.Context(), searchFlag, tagFlag)
		if err != nil {
			return fmt.Errorf("failed to list memos: %w", err)
		}

		if len(v.Groups) == 0 {
			fmt.Print(ui.FormatEmpty(searchFlag, tagFlag))
			fmt.Print(ui.FormatSuggestions(v.Suggestions))
			return nil
		}

		fmt.Print(ui.FormatGroups(v.Groups))
		fmt.Printf("\n%d memo(s)\n", v.Total)
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCmd.Flags().StringP("search", "s", "", "search title and text")
	rootCmd.AddCommand(listCmd)
}
