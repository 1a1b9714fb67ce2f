package models

import "time"

// MetricKind distinguishes counters (accumulating sums, e.g. water) from
// point-in-time values (e.g. weight).
type MetricKind string

const (
	KindCounter MetricKind = "counter"
	KindValue   MetricKind = "value"
)

type InputType string

const (
	InputNumericAccumulative InputType = "numeric_accumulative"
	InputNumericSingle       InputType = "numeric_single"
	InputBooleanToggle       InputType = "boolean_toggle"
	InputScaleDiscrete       InputType = "scale_discrete"
)

type EntrySource string

const (
	SourceManual      EntrySource = "manual"
	SourceQuickAction EntrySource = "quick_action"
)

type Metric struct {
	ID               int        `db:"id" json:"id"`
	UserID           int        `db:"user_id" json:"user_id"`
	Slug             string     `db:"slug" json:"slug"`
	Name             string     `db:"name" json:"name"`
	Kind             MetricKind `db:"kind" json:"kind"`
	DisplayUnit      string     `db:"display_unit" json:"display_unit"`
	CanonicalUnit    string     `db:"canonical_unit" json:"canonical_unit"`
	ConversionFactor float64    `db:"conversion_factor" json:"conversion_factor"`
	DefaultTarget    *float64   `db:"default_target" json:"default_target,omitempty"`
	Color            string     `db:"color" json:"color"`
	Icon             string     `db:"icon" json:"icon"`
	OrderIndex       int        `db:"order_index" json:"order_index"`
	InputType        InputType  `db:"input_type" json:"input_type"`
	DeletedAt        *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`

	QuickActions []QuickAction `db:"-" json:"quick_actions,omitempty"`
}

// Active reports whether the metric is not soft-deleted.
func (m Metric) Active() bool { return m.DeletedAt == nil }

type QuickAction struct {
	ID              int     `db:"id" json:"id"`
	MetricID        int     `db:"metric_id" json:"metric_id"`
	Label           string  `db:"label" json:"label"`
	Value           float64 `db:"value" json:"value"`
	ValueNormalized float64 `db:"value_normalized" json:"value_normalized"`
	Icon            string  `db:"icon" json:"icon"`
	Position        int     `db:"position" json:"position"`
}

type Entry struct {
	ID              int         `db:"id" json:"id"`
	UserID          int         `db:"user_id" json:"user_id"`
	MetricID        int         `db:"metric_id" json:"metric_id"`
	Value           float64     `db:"value" json:"value"`
	ValueNormalized float64     `db:"value_normalized" json:"value_normalized"`
	Unit            string      `db:"unit" json:"unit"`
	DayKey          string      `db:"day_key" json:"day_key"`
	RecordedAt      time.Time   `db:"recorded_at" json:"recorded_at"`
	Source          EntrySource `db:"source" json:"source"`
	Notes           *string     `db:"notes" json:"notes,omitempty"`
	DisplayValue    *string     `db:"display_value" json:"display_value,omitempty"`
}

// DailyAggregate is derived from entries sharing a (user, metric, day key)
// bucket; it is recomputed on read, never incrementally patched.
type DailyAggregate struct {
	MetricID      int     `db:"metric_id" json:"metric_id"`
	DayKey        string  `db:"day_key" json:"day_key"`
	SumNormalized float64 `db:"sum_normalized" json:"sum_normalized"`
	Count         int     `db:"count" json:"count"`
}

// MetricDayData is one metric's slice of a day: its entries for the day key
// plus the aggregate computed from them.
type MetricDayData struct {
	Metric    Metric         `json:"metric"`
	Entries   []Entry        `json:"entries"`
	Aggregate DailyAggregate `json:"aggregate"`
}

type DayData struct {
	DayKey  string          `json:"day_key"`
	Metrics []MetricDayData `json:"metrics"`
}

type MacroEntry struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	Protein    float64   `db:"protein" json:"protein"`
	Carbs      float64   `db:"carbs" json:"carbs"`
	Fats       float64   `db:"fats" json:"fats"`
	Calories   int       `db:"calories" json:"calories"`
	DayKey     string    `db:"day_key" json:"day_key"`
	RecordedAt time.Time `db:"recorded_at" json:"recorded_at"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
}

type MacroTarget struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Protein   float64   `db:"protein" json:"protein"`
	Carbs     float64   `db:"carbs" json:"carbs"`
	Fats      float64   `db:"fats" json:"fats"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DayKeyFormat is the canonical layout of a day bucket key.
const DayKeyFormat = "2006-01-02"

// DayKeyOf buckets a timestamp into the calendar day of its own location.
func DayKeyOf(t time.Time) string { return t.Format(DayKeyFormat) }
