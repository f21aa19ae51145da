// ABOUTME: Markdown bridges for memo markup.
// ABOUTME: goldmark turns authored markdown into markup; ToMarkdown feeds glamour.

package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// FromMarkdown renders markdown source as memo markup.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// ToMarkdown approximates content as markdown for terminal rendering.
// Formatting without a markdown equivalent keeps only its text.
func ToMarkdown(content string) string {
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return StripMarkup(content)
	}
	var sb strings.Builder
	for _, n := range nodes {
		writeMarkdown(&sb, n)
	}
	return strings.TrimSpace(collapseBlankLines(sb.String()))
}

func writeMarkdown(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
	default:
		writeChildren(sb, n)
		return
	}

	switch n.DataAtom {
	case atom.B, atom.Strong:
		wrapInline(sb, n, "**")
	case atom.I, atom.Em:
		wrapInline(sb, n, "*")
	case atom.S, atom.Strike, atom.Del:
		wrapInline(sb, n, "~~")
	case atom.Code:
		wrapInline(sb, n, "`")
	case atom.Br:
		sb.WriteString("\n")
	case atom.P, atom.Div:
		sb.WriteString("\n")
		writeChildren(sb, n)
		sb.WriteString("\n\n")
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		sb.WriteString("\n" + strings.Repeat("#", level) + " ")
		writeChildren(sb, n)
		sb.WriteString("\n\n")
	case atom.Li:
		sb.WriteString("\n- ")
		writeChildren(sb, n)
	case atom.Ul, atom.Ol:
		writeChildren(sb, n)
		sb.WriteString("\n\n")
	case atom.A:
		sb.WriteString("[")
		writeChildren(sb, n)
		sb.WriteString("](" + attr(n, "href") + ")")
	case atom.Script, atom.Style:
	default:
		writeChildren(sb, n)
	}
}

func writeChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeMarkdown(sb, c)
	}
}

func wrapInline(sb *strings.Builder, n *html.Node, marker string) {
	var inner strings.Builder
	writeChildren(&inner, n)
	text := inner.String()
	if strings.TrimSpace(text) == "" {
		sb.WriteString(text)
		return
	}
	sb.WriteString(marker + text + marker)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapseBlankLines(s string) string {
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
