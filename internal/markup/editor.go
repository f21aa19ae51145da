// ABOUTME: Rich-text editing surface behind a small command interface.
// ABOUTME: Buffer wraps the selected span of content in formatting markup.

package markup

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Format commands understood by ApplyFormat.
const (
	Bold          = "bold"
	Italic        = "italic"
	Underline     = "underline"
	StrikeThrough = "strikeThrough"
	HiliteColor   = "hiliteColor"
	ForeColor     = "foreColor"
)

var (
	ErrUnknownCommand = errors.New("unknown format command")
	ErrMissingValue   = errors.New("format command requires a value")
	ErrBadSelection   = errors.New("selection out of range")
)

// Editor is the capability the memo editor exposes to callers. The content it
// edits is opaque to everything else.
type Editor interface {
	ApplyFormat(command, value string) error
}

// Buffer is an Editor over an in-memory content string.
// Selection offsets are byte positions into Content.
type Buffer struct {
	content  string
	selStart int
	selEnd   int
}

func NewBuffer(content string) *Buffer {
	return &Buffer{content: content}
}

func (b *Buffer) Content() string {
	return b.content
}

// SelectAll selects the whole content.
func (b *Buffer) SelectAll() {
	b.selStart, b.selEnd = 0, len(b.content)
}

// Select sets the selection to [start, end).
func (b *Buffer) Select(start, end int) error {
	if start < 0 || end > len(b.content) || start > end {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrBadSelection, start, end, len(b.content))
	}
	b.selStart, b.selEnd = start, end
	return nil
}

// SelectText selects the first occurrence of text and reports whether it was found.
func (b *Buffer) SelectText(text string) bool {
	i := strings.Index(b.content, text)
	if i < 0 || text == "" {
		return false
	}
	b.selStart, b.selEnd = i, i+len(text)
	return true
}

// ApplyFormat wraps the current selection. A collapsed selection is left as is.
// After formatting, the selection covers the wrapped span.
func (b *Buffer) ApplyFormat(command, value string) error {
	open, closeTag, err := wrapper(command, value)
	if err != nil {
		return err
	}
	if b.selStart == b.selEnd {
		return nil
	}
	selected := b.content[b.selStart:b.selEnd]
	wrapped := open + selected + closeTag
	b.content = b.content[:b.selStart] + wrapped + b.content[b.selEnd:]
	b.selEnd = b.selStart + len(wrapped)
	return nil
}

func wrapper(command, value string) (string, string, error) {
	switch command {
	case Bold:
		return "<b>", "</b>", nil
	case Italic:
		return "<i>", "</i>", nil
	case Underline:
		return "<u>", "</u>", nil
	case StrikeThrough:
		return "<strike>", "</strike>", nil
	case HiliteColor, ForeColor:
		if strings.TrimSpace(value) == "" {
			return "", "", fmt.Errorf("%w: %s", ErrMissingValue, command)
		}
		v := html.EscapeString(value)
		if command == HiliteColor {
			return `<span style="background-color: ` + v + `;">`, "</span>", nil
		}
		return `<font color="` + v + `">`, "</font>", nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// ParseCommand splits "command" or "command=value" as given on a command line.
func ParseCommand(spec string) (string, string) {
	command, value, _ := strings.Cut(spec, "=")
	return strings.TrimSpace(command), strings.TrimSpace(value)
}
