package catalogs

import (
	"regexp"
	"strings"

	"github.com/pricedeck/pricedeck/pkg/constants"
)

// nonSlugRun matches every run of characters that cannot appear in a slug.
var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable, URL-safe identifier from the last path segment of
// raw: lowercase, runs of non-alphanumeric characters collapsed to a single
// dash, no leading or trailing dashes, at most 50 characters. The result
// matches ^[a-z0-9]+(-[a-z0-9]+)*$ for any input containing at least one
// alphanumeric character; it is a pure function of its input.
func Slugify(raw string) string {
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		raw = raw[idx+1:]
	}
	slug := strings.ToLower(raw)
	slug = nonSlugRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > constants.SlugMaxLength {
		// Truncation may land mid-separator
		slug = strings.TrimRight(slug[:constants.SlugMaxLength], "-")
	}
	return slug
}
