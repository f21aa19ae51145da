// ABOUTME: Add command for creating new memos.
// ABOUTME: Supports inline content, file input, or $EDITOR, plus formatting commands.

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/notebook"
	"github.com/harper/memopad/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new memo",
	Long: `Create a new memo. Content can be provided via --content, --file, or $EDITOR.

Editor input is read as markdown. Inline and file content is markup unless
--markdown is set. --format applies a formatting command to the whole body,
for example --format bold or --format hiliteColor=#ffff00. With --select the
commands apply only to the first occurrence of that text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var title string
		if len(args) == 1 {
			title = args[0]
		}

		tagsFlag, _ := cmd.Flags().GetString("tags")
		formats, _ := cmd.Flags().GetStringArray("format")
		selectFlag, _ := cmd.Flags().GetString("select")

		content, err := readContent(cmd)
		if err != nil {
			return err
		}
		if content, err = applyFormats(content, formats, selectFlag); err != nil {
			return err
		}

		m, err := notes.Create(cmd.Context(), notebook.Draft{
			Title:   title,
			Content: content,
			Tags:    splitTags(tagsFlag),
		})
		if err != nil {
			return fmt.Errorf("failed to create memo: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("Created memo %d", m.ID)))
		return nil
	},
}

// readContent picks the body from --content, --file or the editor.
func readContent(cmd *cobra.Command) (string, error) {
	contentFlag, _ := cmd.Flags().GetString("content")
	fileFlag, _ := cmd.Flags().GetString("file")
	markdown, _ := cmd.Flags().GetBool("markdown")

	var raw string
	switch {
	case contentFlag != "":
		raw = contentFlag
	case fileFlag != "":
		data, err := os.ReadFile(fileFlag) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		raw = string(data)
	default:
		text, err := openEditor("")
		if err != nil {
			return "", fmt.Errorf("failed to open editor: %w", err)
		}
		raw, markdown = text, true
	}

	if markdown {
		return markup.FromMarkdown(raw)
	}
	return raw, nil
}

// applyFormats runs each formatting command over the selection: the first
// occurrence of sel, or the whole body when sel is empty.
func applyFormats(content string, formats []string, sel string) (string, error) {
	if len(formats) == 0 {
		return content, nil
	}
	buf := markup.NewBuffer(content)
	if sel == "" {
		buf.SelectAll()
	} else if !buf.SelectText(sel) {
		return "", fmt.Errorf("text %q not found in content", sel)
	}
	for _, f := range formats {
		command, value := markup.ParseCommand(f)
		if err := buf.ApplyFormat(command, value); err != nil {
			return "", fmt.Errorf("format %q: %w", f, err)
		}
	}
	return buf.Content(), nil
}

func splitTags(flag string) []string {
	if flag == "" {
		return nil
	}
	return strings.Split(flag, ",")
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "memopad-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func init() {
	addCmd.Flags().String("tags", "", "comma-separated tags")
	addCmd.Flags().String("content", "", "memo content (inline)")
	addCmd.Flags().String("file", "", "read content from file")
	addCmd.Flags().Bool("markdown", false, "treat --content or --file as markdown")
	addCmd.Flags().StringArray("format", nil, "formatting command, repeatable (bold, italic, foreColor=#ff0000, ...)")
	addCmd.Flags().String("select", "", "apply --format only to the first occurrence of this text")
	rootCmd.AddCommand(addCmd)
}
