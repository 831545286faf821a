package skills

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSkillSet_SortsAndDeduplicates(t *testing.T) {
	s := NewSkillSet("react", "Python", "python", " docker ", "", "  ")
	assert.Equal(t, SkillSet{"docker", "python", "react"}, s)
}

func TestNewSkillSet_Empty(t *testing.T) {
	s := NewSkillSet()
	assert.NotNil(t, s)
	assert.Equal(t, 0, s.Len())
}

func TestSkillSet_Contains(t *testing.T) {
	s := NewSkillSet("go", "python", "rust")
	assert.True(t, s.Contains("python"))
	assert.False(t, s.Contains("java"))
	assert.False(t, SkillSet{}.Contains("go"))
}

func TestSkillSet_SetOperations(t *testing.T) {
	a := NewSkillSet("docker", "python", "react")
	b := NewSkillSet("python", "react", "rust")

	assert.Equal(t, SkillSet{"python", "react"}, a.Intersect(b))
	assert.Equal(t, SkillSet{"docker"}, a.Difference(b))
	assert.Equal(t, SkillSet{"rust"}, b.Difference(a))
	// Receivers are untouched.
	assert.Equal(t, SkillSet{"docker", "python", "react"}, a)
}

func TestSkillSet_StringsIsCopy(t *testing.T) {
	s := NewSkillSet("go")
	out := s.Strings()
	out[0] = "mutated"
	assert.Equal(t, "go", s[0])
}

func TestSkillSet_MarshalJSON(t *testing.T) {
	var nilSet SkillSet
	data, err := json.Marshal(nilSet)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	data, err = json.Marshal(NewSkillSet("c++", "c#"))
	require.NoError(t, err)
	assert.JSONEq(t, `["c#","c++"]`, string(data))
}
