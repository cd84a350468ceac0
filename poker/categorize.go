package poker

// StartingTier grades two hole cards before any board card is known.
type StartingTier string

const (
	TierPremium StartingTier = "Premium"
	TierStrong  StartingTier = "Strong"
	TierMedium  StartingTier = "Medium"
	TierWeak    StartingTier = "Weak"
	TierTrash   StartingTier = "Trash"
	TierUnknown StartingTier = "Unknown"
)

// GradeStartingHand provides a simple preflop grading.
// Premium: JJ+, AK. Strong: TT, AQ, AJ. Medium: 77-99, suited broadway.
// Weak: 22-66, suited connectors and one-gappers. Trash: everything else.
func GradeStartingHand(a, b Card) StartingTier {
	if !a.Valid() || !b.Valid() || a == b {
		return TierUnknown
	}

	low, high := a.Rank(), b.Rank()
	if low > high {
		low, high = high, low
	}
	pair := low == high
	suited := a.Suit() == b.Suit()

	switch {
	case pair && low >= Jack, low == King && high == Ace:
		return TierPremium
	case pair && low == Ten, high == Ace && (low == Queen || low == Jack):
		return TierStrong
	case pair && low >= Seven, suited && low >= Ten:
		return TierMedium
	case pair, suited && high-low <= 2:
		return TierWeak
	default:
		return TierTrash
	}
}
