// CLAUDE:SUMMARY Whole-word literal skill matcher: one regexp per taxonomy skill, bounded by letters and digits only.
package skills

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

// Only letters and digits are word characters: "c++", "c#" and "node.js"
// end or contain punctuation and must still be bounded correctly.
const (
	leftBoundary  = `(?:^|[^\p{L}\p{N}])`
	rightBoundary = `(?:[^\p{L}\p{N}]|$)`
)

// compiledSkill is a single taxonomy skill with its boundary-anchored regexp.
type compiledSkill struct {
	name string
	re   *regexp.Regexp
}

// Matcher finds taxonomy skills in text. It is immutable and safe for concurrent use.
type Matcher struct {
	skills []compiledSkill
}

// NewMatcher compiles one pattern per distinct skill of tax.
// Category information is discarded at this stage.
func NewMatcher(tax *taxonomy.Taxonomy) (*Matcher, error) {
	if tax == nil {
		return nil, fmt.Errorf("nil taxonomy")
	}
	names := tax.Skills()
	m := &Matcher{skills: make([]compiledSkill, 0, len(names))}
	for _, name := range names {
		re, err := regexp.Compile(leftBoundary + regexp.QuoteMeta(name) + rightBoundary)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", name, err)
		}
		m.skills = append(m.skills, compiledSkill{name: name, re: re})
	}
	return m, nil
}

// Extract returns the taxonomy skills occurring in text as whole words.
// Matching is case-insensitive and literal; each skill appears at most once.
func (m *Matcher) Extract(text string) SkillSet {
	if strings.TrimSpace(text) == "" {
		return SkillSet{}
	}
	normalized := taxonomy.Normalize(text)

	found := make([]string, 0)
	for _, s := range m.skills {
		if s.re.MatchString(normalized) {
			found = append(found, s.name)
		}
	}
	return NewSkillSet(found...)
}

// Len returns the number of candidate skills.
func (m *Matcher) Len() int { return len(m.skills) }

// ExtractSkills is a one-shot helper that compiles a matcher for tax and runs it on text.
// Callers extracting repeatedly should keep a Matcher instead.
func ExtractSkills(text string, tax *taxonomy.Taxonomy) SkillSet {
	m, err := NewMatcher(tax)
	if err != nil {
		return SkillSet{}
	}
	return m.Extract(text)
}
