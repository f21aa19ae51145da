// ABOUTME: Plain-text extraction from memo markup.
// ABOUTME: Strips tags with x/net/html and builds list previews.

package markup

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	previewLength = 100
	ellipsis      = "..."
)

// StripMarkup returns the concatenated text nodes of content, the same text a
// browser reports as textContent. Entities are decoded.
func StripMarkup(content string) string {
	if content == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(content))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; either way the text gathered so far stands.
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

// Preview returns the first hundred characters of the stripped content,
// with an ellipsis when it was cut.
func Preview(content string) string {
	text := []rune(StripMarkup(content))
	if len(text) <= previewLength {
		return string(text)
	}
	return string(text[:previewLength]) + ellipsis
}
