// ABOUTME: Terminal UI formatting for memo output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/harper/memopad/internal/markup"
	"github.com/harper/memopad/internal/models"
	"github.com/harper/memopad/internal/query"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// TagCount is a tag name with the number of memos carrying it.
type TagCount struct {
	Name  string
	Count int
}

// FormatMemoListItem renders one memo card: id, title, preview and date.
func FormatMemoListItem(m *models.Memo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(m.ID), bold(m.Title)))

	if p := markup.Preview(m.Content); p != "" {
		sb.WriteString(fmt.Sprintf("         %s\n", p))
	}

	sb.WriteString(fmt.Sprintf("         %s %s\n",
		faint("Updated:"),
		faint(displayTime(m.UpdatedAt))))

	return sb.String()
}

// FormatGroups renders a grouping in key order, each memo under its tag header.
func FormatGroups(g query.Grouped) string {
	var sb strings.Builder
	for _, key := range query.Keys(g) {
		sb.WriteString(FormatGroupHeader(key, len(g[key])))
		for _, m := range g[key] {
			sb.WriteString(FormatMemoListItem(m))
		}
	}
	return sb.String()
}

// FormatGroupHeader renders a tag section header.
func FormatGroupHeader(tag string, count int) string {
	name := cyan("#" + tag)
	if tag == query.NoTag {
		name = faint(tag)
	}
	return fmt.Sprintf("\n%s %s\n", name, faint(fmt.Sprintf("(%d)", count)))
}

// FormatMemoContent renders memo markup as terminal markdown. Rendering
// failures fall back to the plain text.
func FormatMemoContent(content string) (string, error) {
	md := markup.ToMarkdown(content)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return markup.StripMarkup(content), nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(md)
	if err != nil {
		return markup.StripMarkup(content), nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

// FormatMemoHeader renders the metadata block shown above memo content.
func FormatMemoHeader(m *models.Memo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(m.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(m.ID)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(displayTime(m.CreatedAt))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(displayTime(m.UpdatedAt))))

	if tags := m.EffectiveTags(); len(tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(tags, ", "))))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// FormatTagList renders tag names with their memo counts.
func FormatTagList(tags []TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan(t.Name),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

// TagCounts pairs each known tag with how many memos carry it.
func TagCounts(names []string, g query.Grouped) []TagCount {
	counts := make([]TagCount, 0, len(names))
	for _, name := range names {
		counts = append(counts, TagCount{Name: name, Count: len(g[name])})
	}
	return counts
}

// FormatSuggestions renders "did you mean" tag hints.
func FormatSuggestions(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return faint("Did you mean: ") + cyan(strings.Join(names, ", ")) + "\n"
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func FormatEmpty(term, tag string) string {
	switch {
	case term != "" && tag != "":
		return faint(fmt.Sprintf("No memos tagged %q match %q.", tag, term)) + "\n"
	case term != "":
		return faint(fmt.Sprintf("No memos match %q.", term)) + "\n"
	case tag != "":
		return faint(fmt.Sprintf("No memos tagged %q.", tag)) + "\n"
	}
	return faint("No memos yet.") + "\n"
}

// displayTime shortens a stored timestamp; unparseable values print as-is.
func displayTime(ts string) string {
	t, err := time.Parse(models.TimeFormat, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04")
}
