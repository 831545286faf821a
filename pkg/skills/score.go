package skills

import "math"

// MatchResult compares a résumé skill set with a job skill set.
// Score is the share of job skills covered by the résumé, in [0, 100].
type MatchResult struct {
	Score   float64  `json:"score"`
	Matched SkillSet `json:"matched"`
	Missing SkillSet `json:"missing"`
	Extra   SkillSet `json:"extra"`
}

// CalculateMatch scores resume against job.
//
// An empty job set cannot be scored: the result is 0 with every résumé skill
// reported as extra. Otherwise score = |resume ∩ job| / |job| × 100, rounded
// to two decimals with ties to even (1 of 32 scores 3.12).
func CalculateMatch(resume, job SkillSet) MatchResult {
	resume, job = NewSkillSet(resume...), NewSkillSet(job...)
	if len(job) == 0 {
		return MatchResult{
			Score:   0,
			Matched: SkillSet{},
			Missing: SkillSet{},
			Extra:   resume,
		}
	}

	matched := resume.Intersect(job)
	return MatchResult{
		Score:   round2(float64(len(matched)) / float64(len(job)) * 100),
		Matched: matched,
		Missing: job.Difference(resume),
		Extra:   resume.Difference(job),
	}
}

func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
