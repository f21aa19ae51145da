// ABOUTME: Tests for export and import helpers of the memopad CLI.
// ABOUTME: Covers legacy records, id merging, markdown files and formatting flags.

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/memopad/internal/models"
)

func TestParseImportLegacyArray(t *testing.T) {
	data := []byte(`[
		{"id": 1, "title": "old", "content": "<b>hi</b>", "plainText": "hi", "tag": "work", "createdAt": "2024-01-01 10:00:00", "updatedAt": "2024-01-01 10:00:00"},
		{"id": 2, "title": "new", "content": "x", "plainText": "x", "tags": ["home", "work"], "createdAt": "2024-01-02 10:00:00", "updatedAt": "2024-01-02 10:00:00"}
	]`)

	memos, tags, err := parseImport(data)
	require.NoError(t, err)
	assert.Nil(t, tags)
	require.Len(t, memos, 2)

	assert.Equal(t, []string{"work"}, memos[0].Tags)
	assert.Nil(t, memos[0].Tag)
	assert.Equal(t, []string{"home", "work"}, memos[1].Tags)
}

func TestParseImportExportDocument(t *testing.T) {
	data := []byte(`{
		"version": "1.0",
		"tags": ["work", "ideas"],
		"memos": [{"id": 7, "title": "t", "content": "<i>a</i> b", "tags": ["ideas", "ideas"]}]
	}`)

	memos, tags, err := parseImport(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "ideas"}, tags)
	require.Len(t, memos, 1)
	assert.Equal(t, int64(7), memos[0].ID)
	assert.Equal(t, "a b", memos[0].PlainText)
	assert.Equal(t, []string{"ideas"}, memos[0].Tags)
}

func TestParseImportSkipsNullRecords(t *testing.T) {
	var memos []*models.Memo
	require.NotPanics(t, func() {
		var err error
		memos, _, err = parseImport([]byte(`[{"id": 1, "title": "a"}, null]`))
		require.NoError(t, err)
	})
	require.Len(t, memos, 1)
	assert.Equal(t, "a", memos[0].Title)
	assert.Equal(t, []string{}, memos[0].Tags)
}

func TestParseImportInvalid(t *testing.T) {
	_, _, err := parseImport([]byte(`{not json`))
	assert.Error(t, err)
}

func TestMergeMemosSkipsExistingIDs(t *testing.T) {
	existing := []*models.Memo{{ID: 1, Title: "keep"}, {ID: 2, Title: "keep too"}}
	incoming := []*models.Memo{{ID: 2, Title: "dup"}, {ID: 3, Title: "fresh"}, {ID: 3, Title: "dup in file"}}

	all, added := mergeMemos(existing, incoming)
	assert.Equal(t, 1, added)
	require.Len(t, all, 3)
	assert.Equal(t, "keep too", all[1].Title)
	assert.Equal(t, "fresh", all[2].Title)
	assert.Len(t, existing, 2)
}

func TestBuildExport(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	work := "work"
	memos := []*models.Memo{{ID: 1, Title: "a", Tag: &work}}

	export := buildExport(memos, []string{"work"}, now)
	assert.Equal(t, exportVersion, export.Version)
	assert.Equal(t, now, export.ExportedAt)
	require.Len(t, export.Memos, 1)
	assert.Equal(t, []string{"work"}, export.Memos[0].Tags)
}

func TestMarkdownFileRoundTrip(t *testing.T) {
	e := ExportMemo{
		ID:        4,
		Title:     "Groceries",
		Content:   "<p>buy <b>milk</b></p>",
		PlainText: "buy milk",
		Tags:      []string{"home"},
		CreatedAt: "2024-05-01 09:00:00",
		UpdatedAt: "2024-05-01 09:00:00",
	}

	text, err := markdownFile(e)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "---\n"))
	assert.Contains(t, text, "title: Groceries")
	assert.Contains(t, text, "buy **milk**")
	assert.NotContains(t, text, "plain_text")

	d, err := parseMarkdown("ignored.md", []byte(text))
	require.NoError(t, err)
	assert.Equal(t, "Groceries", d.Title)
	assert.Equal(t, []string{"home"}, d.Tags)
	assert.Contains(t, d.Content, "<strong>milk</strong>")
}

func TestParseMarkdownWithoutFrontmatter(t *testing.T) {
	d, err := parseMarkdown("/tmp/notes/standup.md", []byte("# Standup\n\n- ship it\n"))
	require.NoError(t, err)
	assert.Equal(t, "standup", d.Title)
	assert.Empty(t, d.Tags)
	assert.Contains(t, d.Content, "<h1>Standup</h1>")
	assert.Contains(t, d.Content, "<li>ship it</li>")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b-c", sanitizeFilename("a/b:c"))
	assert.Equal(t, "plain", sanitizeFilename("plain"))
	assert.Len(t, []rune(sanitizeFilename(strings.Repeat("é", 150))), 100)
}

func TestApplyFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
		formats []string
		sel     string
		want    string
		wantErr bool
	}{
		{name: "none", content: "hello", want: "hello"},
		{name: "whole body", content: "hello", formats: []string{"bold"}, want: "<b>hello</b>"},
		{name: "nested", content: "hello", formats: []string{"bold", "italic"}, want: "<i><b>hello</b></i>"},
		{name: "selection", content: "hello world", formats: []string{"underline"}, sel: "world", want: "hello <u>world</u>"},
		{name: "color value", content: "x", formats: []string{"foreColor=red"}, want: `<font color="red">x</font>`},
		{name: "missing selection", content: "hello", formats: []string{"bold"}, sel: "nope", wantErr: true},
		{name: "unknown command", content: "hello", formats: []string{"blink"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyFormats(tt.content, tt.formats, tt.sel)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, splitTags(""))
	assert.Equal(t, []string{"a", " b"}, splitTags("a, b"))
}
