package catalog

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns an opaque stable identifier like "course_3f2a9c1b". The
// prefix carries the item type for readability only; uniqueness comes from
// the random fragment.
func NewID(prefix string) string {
	frag := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	if prefix == "" {
		return frag
	}
	return prefix + "_" + frag
}

// Slugify derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapse to a single hyphen, no leading or
// trailing hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
