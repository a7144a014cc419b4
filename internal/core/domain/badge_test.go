package domain

import "testing"

func TestBadgeFor(t *testing.T) {
	tests := []struct {
		total float64
		badge Badge
		next  float64
	}{
		{0, BadgeBronze, 5000},
		{4999.99, BadgeBronze, 5000},
		{5000, BadgeSilver, 15000},
		{14999, BadgeSilver, 15000},
		{15000, BadgeGold, 15000},
		{22000, BadgeGold, 22000},
	}

	for _, tt := range tests {
		if got := BadgeFor(tt.total); got != tt.badge {
			t.Errorf("BadgeFor(%v) = %s, want %s", tt.total, got, tt.badge)
		}
		if got := NextBadgeTarget(tt.total); got != tt.next {
			t.Errorf("NextBadgeTarget(%v) = %v, want %v", tt.total, got, tt.next)
		}
	}
}
