package service

import (
	"context"
	"time"

	"dayline/internal/models"
)

// CreateMetricParams is the persisted shape of a new metric; validation and
// order-index assignment happen in the service before this reaches storage.
type CreateMetricParams struct {
	UserID           int
	Slug             string
	Name             string
	Kind             models.MetricKind
	DisplayUnit      string
	CanonicalUnit    string
	ConversionFactor float64
	DefaultTarget    *float64
	Color            string
	Icon             string
	OrderIndex       int
	InputType        models.InputType
}

type UpdateMetricParams struct {
	Name          *string  `json:"name,omitempty"`
	DisplayUnit   *string  `json:"display_unit,omitempty"`
	DefaultTarget *float64 `json:"default_target,omitempty"`
	Color         *string  `json:"color,omitempty"`
	Icon          *string  `json:"icon,omitempty"`
}

type OrderPair struct {
	MetricID   int
	OrderIndex int
}

type CreateQuickActionParams struct {
	MetricID        int
	Label           string
	Value           float64
	ValueNormalized float64
	Icon            string
	Position        int
}

type CreateEntryParams struct {
	UserID          int
	MetricID        int
	Value           float64
	ValueNormalized float64
	Unit            string
	DayKey          string
	RecordedAt      time.Time
	Source          models.EntrySource
	Notes           *string
	DisplayValue    *string
}

// QuickActionEntryParams materializes an entry from a quick action. A
// non-negative QuickActionID names a stored row; a negative one names a
// catalog template action for Slug (see catalog.TemplateActionID).
type QuickActionEntryParams struct {
	QuickActionID int
	UserID        int
	Slug          string
	Notes         *string
	RecordedAt    time.Time
	DayKey        string
}

type UpdateEntryParams struct {
	Value           float64
	ValueNormalized float64
	Notes           *string
}

type CreateMacroEntryParams struct {
	UserID     int
	Protein    float64
	Carbs      float64
	Fats       float64
	Calories   int
	DayKey     string
	RecordedAt time.Time
	Notes      *string
}

type UpdateMacroEntryParams struct {
	Protein  float64
	Carbs    float64
	Fats     float64
	Calories int
	Notes    *string
}

// Repository is the storage surface the tracking service consumes. Lookups
// return nil (no error) when the row does not exist; the service owns the
// not-found semantics. The active-slug uniqueness check-then-insert race is
// closed by a unique constraint at the storage layer; the service-level
// check is the fast path only.
type Repository interface {
	GetActiveMetricsWithQuickActions(ctx context.Context, userID int) ([]models.Metric, error)
	GetMetrics(ctx context.Context, userID int) ([]models.Metric, error)
	GetDeletedMetrics(ctx context.Context, userID int) ([]models.Metric, error)
	GetMetricByID(ctx context.Context, id int) (*models.Metric, error)
	GetMetricBySlug(ctx context.Context, slug string, userID int) (*models.Metric, error)
	MetricExistsBySlug(ctx context.Context, slug string, userID int) (bool, error)
	CreateMetric(ctx context.Context, p CreateMetricParams) (models.Metric, error)
	UpdateMetric(ctx context.Context, id int, p UpdateMetricParams) (models.Metric, error)
	DeleteMetric(ctx context.Context, id int) (models.Metric, error)
	RestoreMetric(ctx context.Context, id int) (models.Metric, error)
	ReorderMetrics(ctx context.Context, pairs []OrderPair) error

	CreateQuickAction(ctx context.Context, p CreateQuickActionParams) error
	DeleteQuickAction(ctx context.Context, id int) error

	CreateEntry(ctx context.Context, p CreateEntryParams) (models.Entry, error)
	CreateEntryFromQuickAction(ctx context.Context, p QuickActionEntryParams) (models.Entry, error)
	GetEntryByID(ctx context.Context, id int) (*models.Entry, error)
	UpdateEntry(ctx context.Context, id int, p UpdateEntryParams) (models.Entry, error)
	DeleteEntry(ctx context.Context, id int) error
	GetRecentEntries(ctx context.Context, userID, limit int) ([]models.Entry, error)

	GetEntriesForDay(ctx context.Context, userID int, dayKey string) ([]models.Entry, error)
	GetDailyAggregate(ctx context.Context, userID, metricID int, dayKey string) (*models.DailyAggregate, error)
	GetDailyAggregatesRange(ctx context.Context, userID, metricID int, startKey, endKey string) ([]models.DailyAggregate, error)

	GetMacroTarget(ctx context.Context, userID int) (*models.MacroTarget, error)
	UpsertMacroTarget(ctx context.Context, userID int, protein, carbs, fats float64) (models.MacroTarget, error)
	CreateMacroEntry(ctx context.Context, p CreateMacroEntryParams) (models.MacroEntry, error)
	GetMacroEntryByID(ctx context.Context, id int) (*models.MacroEntry, error)
	UpdateMacroEntry(ctx context.Context, id int, p UpdateMacroEntryParams) (models.MacroEntry, error)
	DeleteMacroEntry(ctx context.Context, id int) error
	GetMacroEntriesForDay(ctx context.Context, userID int, dayKey string) ([]models.MacroEntry, error)
}
