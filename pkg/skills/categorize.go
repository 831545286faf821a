package skills

import (
	"bytes"
	"encoding/json"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
)

// Group is the subset of a SkillSet belonging to one category.
type Group struct {
	Category string   `json:"category"`
	Skills   SkillSet `json:"skills"`
}

// CategorizedSkills lists non-empty groups in taxonomy order.
type CategorizedSkills []Group

// Categorize groups skills by taxonomy category. Categories without members
// are omitted. A skill listed under several categories appears in each; a
// skill under none is dropped, as the view is informational only.
func Categorize(skills SkillSet, tax *taxonomy.Taxonomy) CategorizedSkills {
	out := make(CategorizedSkills, 0)
	if tax == nil {
		return out
	}
	for _, c := range tax.Categories() {
		var members []string
		for _, s := range skills {
			if c.Has(s) {
				members = append(members, s)
			}
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, Group{Category: c.Name(), Skills: NewSkillSet(members...)})
	}
	return out
}

// Get returns the skills of a category, or nil if it has no members.
func (c CategorizedSkills) Get(category string) SkillSet {
	for _, g := range c {
		if g.Category == category {
			return g.Skills
		}
	}
	return nil
}

// Names returns the category names in order.
func (c CategorizedSkills) Names() []string {
	names := make([]string, len(c))
	for i, g := range c {
		names[i] = g.Category
	}
	return names
}

// Flatten returns the union of all groups.
func (c CategorizedSkills) Flatten() SkillSet {
	var all []string
	for _, g := range c {
		all = append(all, g.Skills...)
	}
	return NewSkillSet(all...)
}

// MarshalJSON encodes the groups as a {category: [skills]} object, keeping taxonomy order.
func (c CategorizedSkills) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(g.Category)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.Skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
