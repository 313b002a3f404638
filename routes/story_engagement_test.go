package routes

import "testing"

func TestApplyLikeToggle(t *testing.T) {
	cases := []struct {
		name     string
		hasLike  bool
		count    int
		wantLike bool
		wantNext int
	}{
		{"like from zero", false, 0, true, 1},
		{"like bumps counter", false, 5, true, 6},
		{"unlike decrements", true, 6, false, 5},
		{"unlike floors at zero", true, 0, false, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			liked, next := applyLikeToggle(tc.hasLike, tc.count)
			if liked != tc.wantLike || next != tc.wantNext {
				t.Fatalf("got (%v, %d), want (%v, %d)", liked, next, tc.wantLike, tc.wantNext)
			}
		})
	}
}

// A full like/unlike cycle must land the counter back where it started, and
// repeated unlikes can never push it negative.
func TestApplyLikeToggleSequence(t *testing.T) {
	count := 3
	hasLike := false

	hasLike, count = applyLikeToggle(hasLike, count)
	if !hasLike || count != 4 {
		t.Fatalf("after like: (%v, %d)", hasLike, count)
	}

	hasLike, count = applyLikeToggle(hasLike, count)
	if hasLike || count != 3 {
		t.Fatalf("after unlike: counter must return to original, got (%v, %d)", hasLike, count)
	}

	count = 0
	for i := 0; i < 3; i++ {
		_, count = applyLikeToggle(true, count)
		if count < 0 {
			t.Fatalf("counter went negative: %d", count)
		}
	}
	if count != 0 {
		t.Fatalf("counter = %d, want 0", count)
	}
}
