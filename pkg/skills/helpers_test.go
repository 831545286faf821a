package skills

import (
	"testing"

	"github.com/hazyhaar/skillmatch/pkg/taxonomy"
	"github.com/stretchr/testify/require"
)

func defaultTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.Default()
	require.NoError(t, err)
	return tax
}

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	m, err := NewMatcher(defaultTaxonomy(t))
	require.NoError(t, err)
	return m
}
