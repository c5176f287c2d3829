package compose

import (
	"regexp"
	"strings"
)

var metaLineRe = regexp.MustCompile(`^([A-Za-z0-9_-]+):[ \t]*(.*)$`)

// ParseFrontMatter splits an optional leading metadata block from the
// body. The block is consecutive "key: value" lines at the very top,
// terminated by a blank line; a non-matching line also ends the block and
// stays in the body. Keys are lowercased and the first value wins;
// unrecognized keys are kept, not an error. When no block is present the
// returned map is nil and the body is the input verbatim.
func ParseFrontMatter(raw string) (map[string]string, string) {
	norm := strings.ReplaceAll(raw, "\r\n", "\n")
	norm = strings.ReplaceAll(norm, "\r", "\n")
	lines := strings.Split(norm, "\n")

	meta := make(map[string]string)
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			if len(meta) > 0 {
				i++ // consume the terminating blank line
			}
			break
		}
		m := metaLineRe.FindStringSubmatch(line)
		if m == nil {
			break
		}
		key := strings.ToLower(m[1])
		if _, ok := meta[key]; !ok {
			meta[key] = strings.TrimSpace(m[2])
		}
	}

	if len(meta) == 0 {
		return nil, raw
	}
	return meta, strings.Join(lines[i:], "\n")
}
