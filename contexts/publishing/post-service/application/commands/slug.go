package commands

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"plume/contexts/publishing/post-service/ports"
)

// slugify lowercases the title and collapses runs of non-alphanumerics into
// single hyphens. An empty result falls back to "post" (status posts have
// no title).
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "post"
	}
	return slug
}

// uniqueSlug probes base, base-2, base-3... until the repository reports no
// collision. The create transaction still enforces uniqueness; a racing
// insert surfaces as ErrSlugConflict there.
func uniqueSlug(ctx context.Context, repo ports.PostRepository, title string) (string, error) {
	base := slugify(title)
	candidate := base
	for suffix := 2; ; suffix++ {
		taken, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(suffix)
	}
}

