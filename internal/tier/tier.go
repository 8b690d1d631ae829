// Package tier maps a finalized WPM to a badge tier.
package tier

// Tier is a badge band for a finalized score.
type Tier int

// Tiers from baseline to best. Bands are contiguous over [0, inf) with
// inclusive lower bounds.
const (
	Warrior Tier = iota
	Bronze
	Gold
	Diamond
)

const (
	diamondMin = 140
	goldMin    = 110
	bronzeMin  = 85
)

// Classify returns the tier for a WPM value. Stateless: the tier depends
// only on the single score, never on history.
func Classify(wpm float64) Tier {
	switch {
	case wpm >= diamondMin:
		return Diamond
	case wpm >= goldMin:
		return Gold
	case wpm >= bronzeMin:
		return Bronze
	default:
		return Warrior
	}
}

// String returns the display label for a tier.
func (t Tier) String() string {
	switch t {
	case Diamond:
		return "Diamond"
	case Gold:
		return "Gold"
	case Bronze:
		return "Bronze"
	default:
		return "Warrior"
	}
}
