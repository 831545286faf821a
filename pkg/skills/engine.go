package skills

import (
	"fmt"
	"sync"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

// Source provides the current taxonomy snapshot. *taxonomy.Registry implements it.
type Source interface {
	Taxonomy() *taxonomy.Taxonomy
}

// Engine ties a taxonomy source to a cached Matcher. The matcher is rebuilt
// only when the source hands out a different snapshot.
type Engine struct {
	src Source

	mu      sync.Mutex
	tax     *taxonomy.Taxonomy
	matcher *Matcher
}

// NewEngine creates an engine over src.
func NewEngine(src Source) *Engine {
	return &Engine{src: src}
}

// Snapshot returns the current taxonomy and its compiled matcher.
func (e *Engine) Snapshot() (*taxonomy.Taxonomy, *Matcher, error) {
	tax := e.src.Taxonomy()
	if tax == nil {
		return nil, nil, fmt.Errorf("taxonomy not loaded")
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tax == tax && e.matcher != nil {
		return tax, e.matcher, nil
	}
	m, err := NewMatcher(tax)
	if err != nil {
		return nil, nil, err
	}
	e.tax, e.matcher = tax, m
	return tax, m, nil
}

// Analysis is the skills found in one text, flat and grouped.
type Analysis struct {
	Skills     SkillSet          `json:"skills"`
	Categories CategorizedSkills `json:"categories"`
}

// Analyze extracts and categorizes the skills of text.
func (e *Engine) Analyze(text string) (*Analysis, error) {
	tax, m, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	found := m.Extract(text)
	return &Analysis{Skills: found, Categories: Categorize(found, tax)}, nil
}

// Report is a MatchResult enriched with a verdict, learning focus and both
// categorized skill sets. Both texts are analyzed against the same snapshot.
type Report struct {
	MatchResult
	Verdict          Verdict           `json:"verdict"`
	Focus            SkillSet          `json:"focus"`
	ResumeSkills     SkillSet          `json:"resume_skills"`
	JobSkills        SkillSet          `json:"job_skills"`
	ResumeCategories CategorizedSkills `json:"resume_categories"`
	JobCategories    CategorizedSkills `json:"job_categories"`
}

// Compare extracts skills from both texts and scores them.
func (e *Engine) Compare(resumeText, jobText string) (*Report, error) {
	tax, m, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	resume := m.Extract(resumeText)
	job := m.Extract(jobText)
	return buildReport(tax, resume, job), nil
}

// CompareSkills scores two already extracted skill sets.
func (e *Engine) CompareSkills(resume, job SkillSet) (*Report, error) {
	tax, _, err := e.Snapshot()
	if err != nil {
		return nil, err
	}
	return buildReport(tax, NewSkillSet(resume...), NewSkillSet(job...)), nil
}

func buildReport(tax *taxonomy.Taxonomy, resume, job SkillSet) *Report {
	result := CalculateMatch(resume, job)
	return &Report{
		MatchResult:      result,
		Verdict:          VerdictFor(result.Score),
		Focus:            Priorities(result, DefaultFocus),
		ResumeSkills:     resume,
		JobSkills:        job,
		ResumeCategories: Categorize(resume, tax),
		JobCategories:    Categorize(job, tax),
	}
}
