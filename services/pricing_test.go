package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotal(t *testing.T) {
	cases := []struct {
		name     string
		category string
		base     float64
		sel      BookingSelections
		want     float64
	}{
		{"local guide scales by participants", CategoryLocalGuide, 100000, BookingSelections{ParticipantCount: 3}, 300000},
		{"photographer premium tier", CategoryPhotography, 400000, BookingSelections{PackageTier: TierPremium}, 800000},
		{"photographer standard tier", CategoryPhotography, 400000, BookingSelections{PackageTier: TierStandard}, 600000},
		{"photographer unknown tier falls back to basic", CategoryPhotography, 400000, BookingSelections{PackageTier: "deluxe"}, 400000},
		{"trip planner ignores participants", CategoryTripPlanner, 500000, BookingSelections{ParticipantCount: 12}, 500000},
		{"combo with photography", CategoryComboGuide, 200000, BookingSelections{Services: []string{"guide", "photography"}}, 360000},
		{"combo without photography", CategoryComboGuide, 200000, BookingSelections{Services: []string{"guide"}}, 200000},
		{"unknown category uses local guide formula", "Scuba Instructor", 100000, BookingSelections{ParticipantCount: 2}, 200000},
		{"zero participants clamps to one", CategoryLocalGuide, 150000, BookingSelections{}, 150000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CalculateTotal(tc.category, tc.base, tc.sel), 0.0001)
		})
	}
}

func TestFormatIDR(t *testing.T) {
	got := FormatIDR(300000)
	assert.True(t, strings.HasPrefix(got, "Rp"), "got %q", got)
	assert.NotContains(t, got, ",00", "no fraction digits: %q", got)
}
