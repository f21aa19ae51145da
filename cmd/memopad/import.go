// ABOUTME: Import command for restoring memos from backup.
// ABOUTME: Reads JSON exports, raw memo arrays, or markdown files with frontmatter.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/notebook"
	"github.com/harper/memopad/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import memos",
	Long: `Import memos from a JSON export, a JSON array of memo records, or a
markdown file or directory. JSON imports keep memo ids; existing memos with the
same id are kept unless --replace is set, which overwrites the whole collection.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		replace, _ := cmd.Flags().GetBool("replace")

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			return importMarkdownDir(cmd, path)
		}

		if strings.HasSuffix(path, ".json") {
			return importJSON(cmd, path, replace)
		}

		if err := importMarkdownFile(cmd, path); err != nil {
			return err
		}
		fmt.Println(ui.Success("Imported 1 memo"))
		return nil
	},
}

// parseImport accepts an export document or a bare array in the stored
// collection format, including records that only carry the legacy tag field.
func parseImport(data []byte) ([]*models.Memo, []string, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var records []*models.Memo
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, nil, err
		}
		memos := make([]*models.Memo, 0, len(records))
		for _, m := range records {
			if m == nil {
				continue
			}
			m.Normalize()
			memos = append(memos, m)
		}
		return memos, nil, nil
	}

	var export ExportData
	if err := json.Unmarshal(trimmed, &export); err != nil {
		return nil, nil, err
	}
	memos := make([]*models.Memo, 0, len(export.Memos))
	for _, e := range export.Memos {
		memos = append(memos, e.memo())
	}
	return memos, export.Tags, nil
}

// mergeMemos appends incoming records whose id is not already present.
func mergeMemos(existing, incoming []*models.Memo) ([]*models.Memo, int) {
	seen := make(map[int64]bool, len(existing))
	for _, m := range existing {
		seen[m.ID] = true
	}
	out := append([]*models.Memo(nil), existing...)
	added := 0
	for _, m := range incoming {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		out = append(out, m)
		added++
	}
	return out, added
}

func importJSON(cmd *cobra.Command, path string, replace bool) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	incoming, tags, err := parseImport(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	all, count := incoming, len(incoming)
	if !replace {
		existing, err := notes.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list memos: %w", err)
		}
		all, count = mergeMemos(existing, incoming)
		if skipped := len(incoming) - count; skipped > 0 {
			logger.Warn("skipped memos with existing ids", "count", skipped)
		}
	}

	if err := notes.Replace(cmd.Context(), all); err != nil {
		return fmt.Errorf("failed to save memos: %w", err)
	}
	for _, t := range tags {
		if _, err := notes.AddTag(cmd.Context(), t); err != nil {
			fmt.Printf("Warning: failed to add tag %q: %v\n", t, err)
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d memos", count)))
	return nil
}

func importMarkdownDir(cmd *cobra.Command, dir string) error {
	count := 0

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		if err := importMarkdownFile(cmd, path); err != nil {
			fmt.Printf("Warning: failed to import %s: %v\n", path, err)
			return nil
		}
		count++
		return nil
	})

	if err != nil {
		return err
	}

	fmt.Println(ui.Success(fmt.Sprintf("Imported %d memos", count)))
	return nil
}

// parseMarkdown splits optional YAML frontmatter from the body and converts
// the body to memo markup.
func parseMarkdown(path string, data []byte) (notebook.Draft, error) {
	content := string(data)
	var d notebook.Draft

	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) >= 3 {
			var frontmatter struct {
				Title string   `yaml:"title"`
				Tags  []string `yaml:"tags"`
			}
			if err := yaml.Unmarshal([]byte(parts[1]), &frontmatter); err == nil {
				d.Title = frontmatter.Title
				d.Tags = frontmatter.Tags
				content = parts[2]
			}
		}
	}

	if d.Title == "" {
		d.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}

	var err error
	d.Content, err = markup.FromMarkdown(strings.TrimSpace(content))
	return d, err
}

func importMarkdownFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}

	d, err := parseMarkdown(path, data)
	if err != nil {
		return err
	}

	_, err = notes.Create(cmd.Context(), d)
	return err
}

func init() {
	importCmd.Flags().Bool("replace", false, "overwrite the whole collection with the imported memos")
	rootCmd.AddCommand(importCmd)
}
