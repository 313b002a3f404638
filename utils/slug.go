package utils

import (
	"fmt"

	"github.com/gosimple/slug"
)

// UniqueSlug builds a URL slug from the title, appending -1, -2, ... until
// exists reports a free one. The lookup is injected so callers bind it to
// whatever table owns the slug column.
func UniqueSlug(title string, exists func(string) bool) string {
	base := slug.Make(title)
	if base == "" {
		base = "untitled"
	}
	candidate := base
	for i := 1; exists(candidate); i++ {
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return candidate
}
