// Package catalog holds the predefined metric and quick-action templates.
// The tables are compile-time constants; a Catalog is built once at startup
// and injected into the tracking service, never mutated afterwards.
package catalog

import "dayline/internal/models"

type MetricTemplate struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Kind             models.MetricKind `json:"kind"`
	DisplayUnit      string            `json:"display_unit"`
	CanonicalUnit    string            `json:"canonical_unit"`
	ConversionFactor float64           `json:"conversion_factor"`
	DefaultTarget    *float64          `json:"default_target,omitempty"`
	Color            string            `json:"color"`
	Icon             string            `json:"icon"`
	InputType        models.InputType  `json:"input_type"`
}

type QuickActionTemplate struct {
	Slug     string  `json:"slug"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Icon     string  `json:"icon"`
	Position int     `json:"position"`
}

type Catalog struct {
	templates    []MetricTemplate
	bySlug       map[string]MetricTemplate
	quickActions map[string][]QuickActionTemplate
}

func target(v float64) *float64 { return &v }

var metricTemplates = []MetricTemplate{
	{
		Slug:             "water",
		Name:             "Water",
		Kind:             models.KindCounter,
		DisplayUnit:      "L",
		CanonicalUnit:    "ml",
		ConversionFactor: 1000,
		DefaultTarget:    target(2500),
		Color:            "#38BDF8",
		Icon:             "droplet",
		InputType:        models.InputNumericAccumulative,
	},
	{
		Slug:             "protein",
		Name:             "Protein",
		Kind:             models.KindCounter,
		DisplayUnit:      "g",
		CanonicalUnit:    "g",
		ConversionFactor: 1,
		DefaultTarget:    target(140),
		Color:            "#F87171",
		Icon:             "beef",
		InputType:        models.InputNumericAccumulative,
	},
	{
		Slug:             "steps",
		Name:             "Steps",
		Kind:             models.KindCounter,
		DisplayUnit:      "steps",
		CanonicalUnit:    "steps",
		ConversionFactor: 1,
		DefaultTarget:    target(10000),
		Color:            "#4ADE80",
		Icon:             "footprints",
		InputType:        models.InputNumericAccumulative,
	},
	{
		Slug:             "mood",
		Name:             "Mood",
		Kind:             models.KindValue,
		DisplayUnit:      "score",
		CanonicalUnit:    "score",
		ConversionFactor: 1,
		Color:            "#FACC15",
		Icon:             "smile",
		InputType:        models.InputScaleDiscrete,
	},
	{
		Slug:             "weight",
		Name:             "Weight",
		Kind:             models.KindValue,
		DisplayUnit:      "kg",
		CanonicalUnit:    "kg",
		ConversionFactor: 1,
		Color:            "#A78BFA",
		Icon:             "scale",
		InputType:        models.InputNumericSingle,
	},
	{
		Slug:             "sleep",
		Name:             "Sleep",
		Kind:             models.KindValue,
		DisplayUnit:      "h",
		CanonicalUnit:    "min",
		ConversionFactor: 60,
		DefaultTarget:    target(480),
		Color:            "#818CF8",
		Icon:             "moon",
		InputType:        models.InputNumericSingle,
	},
}

var quickActionTemplates = map[string][]QuickActionTemplate{
	"water": {
		{Slug: "water", Label: "Glass (250ml)", Value: 0.25, Icon: "cup", Position: 0},
		{Slug: "water", Label: "Bottle (500ml)", Value: 0.5, Icon: "bottle", Position: 1},
		{Slug: "water", Label: "Large bottle (1L)", Value: 1, Icon: "bottle-large", Position: 2},
	},
	"protein": {
		{Slug: "protein", Label: "Shake (25g)", Value: 25, Icon: "shaker", Position: 0},
		{Slug: "protein", Label: "Chicken breast (30g)", Value: 30, Icon: "drumstick", Position: 1},
	},
	"steps": {
		{Slug: "steps", Label: "Short walk (1000)", Value: 1000, Icon: "walk", Position: 0},
		{Slug: "steps", Label: "Long walk (5000)", Value: 5000, Icon: "hiking", Position: 1},
	},
}

// New builds the catalog from the predefined tables.
func New() *Catalog {
	c := &Catalog{
		templates:    metricTemplates,
		bySlug:       make(map[string]MetricTemplate, len(metricTemplates)),
		quickActions: quickActionTemplates,
	}
	for _, t := range metricTemplates {
		c.bySlug[t.Slug] = t
	}
	return c
}

// Templates returns all predefined metric templates in catalog order.
func (c *Catalog) Templates() []MetricTemplate { return c.templates }

// Template looks up a metric template by slug.
func (c *Catalog) Template(slug string) (MetricTemplate, bool) {
	t, ok := c.bySlug[slug]
	return t, ok
}

// QuickActions returns the quick-action templates for a slug, nil when the
// slug has none.
func (c *Catalog) QuickActions(slug string) []QuickActionTemplate {
	return c.quickActions[slug]
}

// Template quick actions are not stored rows, so they are addressed by a
// synthetic negative id derived from their position in the slug's list.

func TemplateActionID(position int) int { return -(position + 1) }

func TemplateActionIndex(id int) (int, bool) {
	if id >= 0 {
		return 0, false
	}
	return -id - 1, true
}
