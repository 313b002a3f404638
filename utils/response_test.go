package utils

import "testing"

func TestNewPaginationHasMore(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		limit    int
		total    int64
		returned int
		hasMore  bool
		pages    int
	}{
		{"first of many", 1, 10, 35, 10, true, 4},
		{"middle page", 2, 10, 35, 10, true, 4},
		{"last full page", 3, 10, 30, 10, false, 3},
		{"last short page", 4, 10, 35, 5, false, 4},
		{"single page", 1, 10, 7, 7, false, 1},
		{"empty result", 1, 10, 0, 0, false, 0},
		{"page past the end", 5, 10, 35, 0, false, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total, tc.returned)
			if p.HasMore != tc.hasMore {
				t.Fatalf("hasMore = %v, want %v", p.HasMore, tc.hasMore)
			}
			if p.TotalPages != tc.pages {
				t.Fatalf("totalPages = %d, want %d", p.TotalPages, tc.pages)
			}
		})
	}
}
