package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateLookup(t *testing.T) {
	c := New()

	templates := c.Templates()
	require.NotEmpty(t, templates)
	seen := make(map[string]bool)
	for _, tpl := range templates {
		assert.False(t, seen[tpl.Slug], "duplicate slug %q", tpl.Slug)
		seen[tpl.Slug] = true
		assert.Greater(t, tpl.ConversionFactor, 0.0, "slug %q", tpl.Slug)
		if tpl.DefaultTarget != nil {
			assert.GreaterOrEqual(t, *tpl.DefaultTarget, 0.0, "slug %q", tpl.Slug)
		}
	}

	water, ok := c.Template("water")
	require.True(t, ok)
	assert.Equal(t, "ml", water.CanonicalUnit)
	assert.Equal(t, float64(1000), water.ConversionFactor)

	_, ok = c.Template("nonsense")
	assert.False(t, ok)
}

func TestQuickActionTemplates(t *testing.T) {
	c := New()

	actions := c.QuickActions("water")
	require.Len(t, actions, 3)
	for i, a := range actions {
		assert.Greater(t, a.Value, 0.0)
		assert.NotEmpty(t, a.Label)
		assert.Equal(t, i, a.Position)
	}

	assert.Empty(t, c.QuickActions("weight"))
	assert.Empty(t, c.QuickActions("nonsense"))
}

func TestTemplateActionIDs(t *testing.T) {
	for i := 0; i < 5; i++ {
		id := TemplateActionID(i)
		assert.Negative(t, id)
		idx, ok := TemplateActionIndex(id)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}
	_, ok := TemplateActionIndex(1)
	assert.False(t, ok)
	_, ok = TemplateActionIndex(0)
	assert.False(t, ok)
}
