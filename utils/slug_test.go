package utils

import "testing"

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{}
	exists := func(s string) bool { return taken[s] }

	first := UniqueSlug("A Week in Bali", exists)
	if first != "a-week-in-bali" {
		t.Fatalf("got %q", first)
	}
	taken[first] = true

	second := UniqueSlug("A Week in Bali", exists)
	if second != "a-week-in-bali-1" {
		t.Fatalf("got %q", second)
	}
	taken[second] = true

	third := UniqueSlug("A Week in Bali", exists)
	if third != "a-week-in-bali-2" {
		t.Fatalf("got %q", third)
	}
}

func TestUniqueSlugEmptyTitle(t *testing.T) {
	got := UniqueSlug("!!!", func(string) bool { return false })
	if got != "untitled" {
		t.Fatalf("got %q", got)
	}
}
