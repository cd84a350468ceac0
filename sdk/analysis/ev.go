package analysis

import "github.com/lox/handequity/poker"

// ComputeEV returns the expected value of calling, rounded to two decimals:
// win*pot + tie*pot/2 - lose*call, with win and tie given as percentages.
func ComputeEV(pot, call, winPct, tiePct float64) float64 {
	win := winPct / 100
	tie := tiePct / 100
	lose := 1 - win - tie
	return round2(win*pot + tie*pot/2 - lose*call)
}

// PotOdds returns pot/call, or 1 when there is nothing to call.
func PotOdds(pot, call float64) float64 {
	if call == 0 {
		return 1
	}
	return round2(pot / call)
}

// RequiredEquity is the break-even win percentage for a call.
func RequiredEquity(pot, call float64) float64 {
	if pot+call == 0 {
		return 0
	}
	return round2(100 * call / (pot + call))
}

// AggressionIndex scores how hard a made hand can be played: 2 for high card
// up to 20 for a royal flush. Incomplete hands have no index.
func AggressionIndex(c poker.Classification) (float64, bool) {
	if c.Incomplete {
		return 0, false
	}
	return 2.0 * float64(int(c.Category)+1), true
}
