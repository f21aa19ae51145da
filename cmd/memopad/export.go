// ABOUTME: Export command for backing up memos.
// ABOUTME: Supports JSON, YAML and markdown export formats.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/ui"
)

const exportVersion = "1.0"

type ExportMemo struct {
	ID        int64    `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Content   string   `json:"content" yaml:"content,omitempty"`
	PlainText string   `json:"plainText" yaml:"plain_text,omitempty"`
	Tags      []string `json:"tags" yaml:"tags"`
	CreatedAt string   `json:"createdAt" yaml:"created"`
	UpdatedAt string   `json:"updatedAt" yaml:"updated"`
}

type ExportData struct {
	ExportedAt time.Time    `json:"exported_at" yaml:"exported_at"`
	Version    string       `json:"version" yaml:"version"`
	Tags       []string     `json:"tags" yaml:"tags"`
	Memos      []ExportMemo `json:"memos" yaml:"memos"`
}

func toExportMemo(m *models.Memo) ExportMemo {
	return ExportMemo{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		PlainText: m.PlainText,
		Tags:      m.EffectiveTags(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (e ExportMemo) memo() *models.Memo {
	plain := e.PlainText
	if plain == "" {
		plain = markup.StripMarkup(e.Content)
	}
	return &models.Memo{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		PlainText: plain,
		Tags:      models.CleanTags(e.Tags),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func buildExport(memos []*models.Memo, tags []string, now time.Time) ExportData {
	export := ExportData{
		ExportedAt: now,
		Version:    exportVersion,
		Tags:       tags,
		Memos:      make([]ExportMemo, 0, len(memos)),
	}
	for _, m := range memos {
		export.Memos = append(export.Memos, toExportMemo(m))
	}
	return export
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export memos",
	Long:  `Export memos to JSON, YAML or a directory of markdown files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		memoFlag, _ := cmd.Flags().GetString("memo")

		var memos []*models.Memo
		if memoFlag != "" {
			id, err := parseID(memoFlag)
			if err != nil {
				return err
			}
			m, err := notes.Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get memo: %w", err)
			}
			memos = append(memos, m)
		} else {
			all, err := notes.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list memos: %w", err)
			}
			memos = all
		}

		tags, err := notes.Tags(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		export := buildExport(memos, tags, time.Now())

		switch format {
		case "json":
			data, err := json.MarshalIndent(export, "", "  ")
			if err != nil {
				return err
			}
			return writeOutput(outputPath, data)
		case "yaml":
			data, err := yaml.Marshal(export)
			if err != nil {
				return err
			}
			return writeOutput(outputPath, data)
		case "md":
			return exportMarkdown(export.Memos, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func writeOutput(outputPath string, data []byte) error {
	if outputPath == "" || outputPath == "-" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outputPath, data, 0644)
}

// markdownFile renders a memo as YAML frontmatter plus a markdown body.
func markdownFile(e ExportMemo) (string, error) {
	body := markup.ToMarkdown(e.Content)
	e.Content, e.PlainText = "", ""

	frontmatter, err := yaml.Marshal(e)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(frontmatter)
	sb.WriteString("---\n\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	return sb.String(), nil
}

func exportMarkdown(memos []ExportMemo, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for _, e := range memos {
		text, err := markdownFile(e)
		if err != nil {
			return err
		}
		filename := sanitizeFilename(e.Title) + "-" + strconv.FormatInt(e.ID, 10) + ".md"
		if err := os.WriteFile(filepath.Join(outputDir, filename), []byte(text), 0644); err != nil {
			return err
		}
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d memos to %s", len(memos), outputDir)))
	return nil
}

func sanitizeFilename(name string) string {
	// Replace unsafe characters
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if r := []rune(name); len(r) > 100 {
		name = string(r[:100])
	}
	return name
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|yaml|md)")
	exportCmd.Flags().StringP("output", "o", "", "output path")
	exportCmd.Flags().StringP("memo", "m", "", "single memo ID to export")
	rootCmd.AddCommand(exportCmd)
}
