package skills

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMatch_EmptyResume(t *testing.T) {
	r := CalculateMatch(SkillSet{}, NewSkillSet("python", "react"))

	assert.Equal(t, 0.0, r.Score)
	assert.Empty(t, r.Matched)
	assert.Equal(t, SkillSet{"python", "react"}, r.Missing)
	assert.Empty(t, r.Extra)
}

func TestCalculateMatch_FullCoverage(t *testing.T) {
	r := CalculateMatch(NewSkillSet("python", "react", "docker"), NewSkillSet("python", "react"))

	assert.Equal(t, 100.0, r.Score)
	assert.Equal(t, SkillSet{"python", "react"}, r.Matched)
	assert.Empty(t, r.Missing)
	assert.Equal(t, SkillSet{"docker"}, r.Extra)
}

func TestCalculateMatch_EmptyJob(t *testing.T) {
	r := CalculateMatch(NewSkillSet("python"), SkillSet{})

	assert.Equal(t, 0.0, r.Score)
	assert.Empty(t, r.Matched)
	assert.Empty(t, r.Missing)
	assert.Equal(t, SkillSet{"python"}, r.Extra)
	assert.NotNil(t, r.Matched)
	assert.NotNil(t, r.Missing)
}

func TestCalculateMatch_Rounding(t *testing.T) {
	r := CalculateMatch(NewSkillSet("go"), NewSkillSet("go", "rust", "python"))
	assert.Equal(t, 33.33, r.Score)

	r = CalculateMatch(NewSkillSet("go", "rust"), NewSkillSet("go", "rust", "python"))
	assert.Equal(t, 66.67, r.Score)
}

func TestCalculateMatch_RoundsHalfToEven(t *testing.T) {
	job := make([]string, 32)
	for i := range job {
		job[i] = fmt.Sprintf("skill%02d", i)
	}
	cases := []struct {
		matched int
		want    float64
	}{
		{1, 3.12},  // 3.125
		{3, 9.38},  // 9.375
		{5, 15.62}, // 15.625
		{16, 50},
	}
	for _, tc := range cases {
		r := CalculateMatch(NewSkillSet(job[:tc.matched]...), NewSkillSet(job...))
		assert.Equal(t, tc.want, r.Score, "%d of 32", tc.matched)
	}
}

func TestCalculateMatch_NoOverlap(t *testing.T) {
	r := CalculateMatch(NewSkillSet("php"), NewSkillSet("go"))
	assert.Equal(t, 0.0, r.Score)
	assert.Empty(t, r.Matched)
}

func TestCalculateMatch_UnsortedInput(t *testing.T) {
	r := CalculateMatch(SkillSet{"react", "python"}, SkillSet{"python", "docker", "python"})
	assert.Equal(t, 50.0, r.Score)
	assert.Equal(t, SkillSet{"python"}, r.Matched)
	assert.Equal(t, SkillSet{"docker"}, r.Missing)
	assert.Equal(t, SkillSet{"react"}, r.Extra)
}

func TestCalculateMatch_Properties(t *testing.T) {
	pool := []string{"go", "rust", "python", "java", "docker", "aws", "git"}

	// Every (resume, job) pair of subsets of a small pool.
	for rm := 0; rm < 1<<len(pool); rm += 7 {
		for jm := 0; jm < 1<<len(pool); jm += 5 {
			resume := subset(pool, rm)
			job := subset(pool, jm)
			r := CalculateMatch(resume, job)

			assert.GreaterOrEqual(t, r.Score, 0.0)
			assert.LessOrEqual(t, r.Score, 100.0)

			if job.Len() > 0 {
				covered := job.Difference(resume).Len() == 0
				assert.Equal(t, covered, r.Score == 100.0, "resume=%v job=%v", resume, job)
				assert.Equal(t, r.Matched.Len() == 0, r.Score == 0.0, "resume=%v job=%v", resume, job)
				assert.Equal(t, job.Len(), r.Matched.Len()+r.Missing.Len())
			}
			assert.Equal(t, resume.Len(), r.Matched.Len()+r.Extra.Len())
		}
	}
}

func TestCalculateMatch_Monotonic(t *testing.T) {
	job := NewSkillSet("go", "rust", "python", "java")
	prev := -1.0
	for i := 0; i <= job.Len(); i++ {
		r := CalculateMatch(job[:i], job)
		assert.Greater(t, r.Score, prev)
		prev = r.Score
	}
}

func subset(pool []string, mask int) SkillSet {
	var out []string
	for i, s := range pool {
		if mask&(1<<i) != 0 {
			out = append(out, s)
		}
	}
	return NewSkillSet(out...)
}
