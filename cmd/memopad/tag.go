// ABOUTME: Tag command for managing the known tag list.
// ABOUTME: Provides add, rm, and list subcommands.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/ui"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long: `Add, remove, or list the tag names offered when writing memos.

Removing a name from the list does not untag memos that already carry it.`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add <tag>",
	Short: "Add a tag name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		added, err := notes.AddTag(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to add tag: %w", err)
		}
		if !added {
			fmt.Printf("Tag %q already exists.\n", args[0])
			return nil
		}

		fmt.Println(ui.Success(fmt.Sprintf("Added tag %q", args[0])))
		return nil
	},
}

var tagRmCmd = &cobra.Command{
	Use:   "rm <tag>",
	Short: "Remove a tag name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := notes.RemoveTag(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to remove tag: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Removed tag %q", args[0])))
		return nil
	},
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tags with memo counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := notes.Tags(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		v, err := notes.View(cmd.Context(), "", "")
		if err != nil {
			return fmt.Errorf("failed to list memos: %w", err)
		}

		// Tags carried by memos but missing from the list still show up.
		for _, name := range v.TagNames {
			if !models.ContainsTag(names, name) {
				names = append(names, name)
			}
		}

		if len(names) == 0 {
			fmt.Println("No tags found.")
			return nil
		}

		fmt.Print(ui.FormatTagList(ui.TagCounts(names, v.Groups)))
		return nil
	},
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)
	tagCmd.AddCommand(tagListCmd)
	rootCmd.AddCommand(tagCmd)
}
