// ABOUTME: Edit command for modifying existing memos.
// ABOUTME: Takes new fields from flags or opens the body in $EDITOR as markdown.

package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/notebook"
	"github.com/harper/memopad/internal/ui"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a memo",
	Long: `Change a memo's title, tags or content. Without --content, --file or
--keep-content the body opens in $EDITOR as markdown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		m, err := notes.Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get memo: %w", err)
		}

		d := notebook.Draft{Title: m.Title, Content: m.Content, Tags: m.EffectiveTags()}
		if cmd.Flags().Changed("title") {
			d.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("tags") {
			tagsFlag, _ := cmd.Flags().GetString("tags")
			d.Tags = splitTags(tagsFlag)
		}

		keep, _ := cmd.Flags().GetBool("keep-content")
		switch {
		case cmd.Flags().Changed("content") || cmd.Flags().Changed("file"):
			if d.Content, err = readContent(cmd); err != nil {
				return err
			}
		case !keep:
			before := markup.ToMarkdown(m.Content)
			edited, err := openEditor(before)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if edited != before {
				if d.Content, err = markup.FromMarkdown(edited); err != nil {
					return err
				}
			}
		}

		formats, _ := cmd.Flags().GetStringArray("format")
		selectFlag, _ := cmd.Flags().GetString("select")
		if d.Content, err = applyFormats(d.Content, formats, selectFlag); err != nil {
			return err
		}

		if d.Title == m.Title && d.Content == m.Content && slices.Equal(models.CleanTags(d.Tags), m.EffectiveTags()) {
			fmt.Println("No changes made.")
			return nil
		}

		if _, err := notes.Update(cmd.Context(), id, d); err != nil {
			return fmt.Errorf("failed to update memo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Updated memo %d", id)))
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("tags", "", "replacement comma-separated tags")
	editCmd.Flags().String("content", "", "new content (inline)")
	editCmd.Flags().String("file", "", "read new content from file")
	editCmd.Flags().Bool("markdown", false, "treat --content or --file as markdown")
	editCmd.Flags().Bool("keep-content", false, "leave the body unchanged")
	editCmd.Flags().StringArray("format", nil, "formatting command, repeatable")
	editCmd.Flags().String("select", "", "apply --format only to the first occurrence of this text")
	rootCmd.AddCommand(editCmd)
}
