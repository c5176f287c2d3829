package text

import (
	"regexp"
	"strings"
)

// Slug replacement pipeline. Order matters: entity stripping must run
// before the blacklist, dash/slash collapsing before edge trimming.
var (
	whitespaceRe    = regexp.MustCompile(`\s+`)
	entityRe        = regexp.MustCompile(`&[^;]{1,8};`)
	slugBlacklistRe = regexp.MustCompile(`[^a-z0-9\-/]`)
	dashNearSlashRe = regexp.MustCompile(`-*/-*`)
	dashRunRe       = regexp.MustCompile(`-+`)
	slashRunRe      = regexp.MustCompile(`/+`)
	slugEdgeRe      = regexp.MustCompile(`^[/\-]+|[/\-]+$`)
)

// Slugify converts arbitrary text into a URL-safe path: lowercase ASCII
// letters, digits and dashes, with '/' as segment separator and a single
// leading '/'. Idempotent. Text that normalizes to nothing yields "/".
func Slugify(s string) string {
	slug := whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	slug = entityRe.ReplaceAllString(slug, "")
	slug = slugBlacklistRe.ReplaceAllString(slug, "")
	slug = dashNearSlashRe.ReplaceAllString(slug, "/")
	slug = dashRunRe.ReplaceAllString(slug, "-")
	slug = slashRunRe.ReplaceAllString(slug, "/")
	slug = slugEdgeRe.ReplaceAllString(slug, "")
	return "/" + slug
}
