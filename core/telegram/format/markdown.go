package format

import (
	"fmt"
	"strings"
)

const (
	// MarkdownV1 denotes Telegram's legacy Markdown parse mode.
	MarkdownV1 = 1
	// MarkdownV2 denotes Telegram's MarkdownV2 parse mode.
	MarkdownV2 = 2
)

const (
	mdV1Specials = "_*`["
	mdV2Specials = "_*[]()~`>#+-=|{}.!\\"
)

// EscapeMarkdown escapes text for the given Markdown version.
func EscapeMarkdown(text string, version int) (string, error) {
	switch version {
	case MarkdownV1:
		return escapeSet(text, mdV1Specials), nil
	case MarkdownV2:
		return escapeSet(text, mdV2Specials), nil
	}
	return "", fmt.Errorf("unsupported markdown version: %d", version)
}

// EscapeMarkdownV2 prefixes every MarkdownV2 special character, backslash included, with a backslash.
func EscapeMarkdownV2(text string) string {
	return escapeSet(text, mdV2Specials)
}

func escapeSet(text, specials string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	for _, r := range text {
		if strings.ContainsRune(specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
