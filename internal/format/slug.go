// Package format holds the small text helpers shared by pages and scripts.
package format

import (
	"strings"

	"github.com/gosimple/slug"
)

// Slugify turns a title into a lowercase, hyphen separated URL segment.
// Applying it to its own output returns the same string.
func Slugify(title string) string {
	return slug.Make(strings.TrimSpace(title))
}
