package domain

// Badge is the donor tier earned from the lifetime donated total
type Badge string

const (
	BadgeBronze Badge = "Bronze"
	BadgeSilver Badge = "Silver"
	BadgeGold   Badge = "Gold"
)

// Badge thresholds (inclusive)
const (
	SilverThreshold = 5000.0
	GoldThreshold   = 15000.0
)

// BadgeFor returns the badge for a donated total
func BadgeFor(total float64) Badge {
	switch {
	case total >= GoldThreshold:
		return BadgeGold
	case total >= SilverThreshold:
		return BadgeSilver
	default:
		return BadgeBronze
	}
}

// NextBadgeTarget returns the total needed for the next badge.
// Gold has nothing further, so the current total is returned.
func NextBadgeTarget(total float64) float64 {
	switch BadgeFor(total) {
	case BadgeBronze:
		return SilverThreshold
	case BadgeSilver:
		return GoldThreshold
	default:
		return total
	}
}
