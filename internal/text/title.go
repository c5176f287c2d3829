package text

import (
	"regexp"
	"strings"
)

const (
	DefaultTitleLimit = 140
	DefaultEllipsis   = "..."
)

var htmlTagRe = regexp.MustCompile(`<[^>]*?>`)

// Titleize converts text (possibly HTML) into plain text suitable for a
// title: tags stripped, whitespace collapsed, clipped to limit runes with
// the ellipsis appended at the last word break that fits.
func Titleize(s string, limit int, ellipsis string) string {
	title := htmlTagRe.ReplaceAllString(strings.TrimSpace(s), "")
	title = whitespaceRe.ReplaceAllString(title, " ")

	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}

	cut := limit - len([]rune(ellipsis))
	if cut < 0 {
		cut = 0
	}
	head := runes[:cut]
	if i := lastSpace(head); i >= 0 {
		head = head[:i]
	}
	return string(head) + ellipsis
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
