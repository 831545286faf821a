package skills

// Verdict is a coarse reading of a match score.
type Verdict string

const (
	VerdictStrong   Verdict = "strong"
	VerdictModerate Verdict = "moderate"
	VerdictLow      Verdict = "low"
)

// Score thresholds for verdicts.
const (
	StrongThreshold   = 70.0
	ModerateThreshold = 40.0
)

// DefaultFocus is how many missing skills are suggested as learning focus.
const DefaultFocus = 5

// VerdictFor maps a score to a verdict.
func VerdictFor(score float64) Verdict {
	switch {
	case score >= StrongThreshold:
		return VerdictStrong
	case score >= ModerateThreshold:
		return VerdictModerate
	default:
		return VerdictLow
	}
}

// Priorities returns the first n missing skills of r, in sorted order.
func Priorities(r MatchResult, n int) SkillSet {
	if n <= 0 {
		return SkillSet{}
	}
	if n > len(r.Missing) {
		n = len(r.Missing)
	}
	out := make(SkillSet, n)
	copy(out, r.Missing[:n])
	return out
}
