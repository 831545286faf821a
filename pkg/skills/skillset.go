// Package skills extracts taxonomy skills from free text, groups them by
// category and scores a résumé skill set against a job skill set.
package skills

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

// SkillSet is a sorted, duplicate-free list of normalized skills.
// Build one with NewSkillSet; methods never modify the receiver.
type SkillSet []string

// NewSkillSet normalizes, deduplicates and sorts items. Blank items are dropped.
func NewSkillSet(items ...string) SkillSet {
	seen := make(map[string]struct{}, len(items))
	out := make(SkillSet, 0, len(items))
	for _, it := range items {
		s := taxonomy.Normalize(strings.TrimSpace(it))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of skills.
func (s SkillSet) Len() int { return len(s) }

// Contains reports whether skill is in the set.
func (s SkillSet) Contains(skill string) bool {
	i := sort.SearchStrings(s, skill)
	return i < len(s) && s[i] == skill
}

// Intersect returns the skills present in both s and other.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet, 0)
	for _, skill := range s {
		if other.Contains(skill) {
			out = append(out, skill)
		}
	}
	return out
}

// Difference returns the skills of s absent from other.
func (s SkillSet) Difference(other SkillSet) SkillSet {
	out := make(SkillSet, 0)
	for _, skill := range s {
		if !other.Contains(skill) {
			out = append(out, skill)
		}
	}
	return out
}

// Strings returns a copy of the underlying slice.
func (s SkillSet) Strings() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// MarshalJSON encodes an empty or nil set as [] rather than null.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}
