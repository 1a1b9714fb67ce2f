// Package repository implements the tracking service's storage surface on
// Postgres. The partial unique index on (user_id, slug) for non-deleted
// metrics is the authoritative guard against active-slug collisions; the
// service-level existence check only fails fast.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"dayline/internal/models"
	"dayline/internal/service"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const metricColumns = `id, user_id, slug, name, kind, display_unit, canonical_unit,
	conversion_factor, default_target, color, icon, order_index, input_type,
	deleted_at, created_at`

type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres { return &Postgres{db: db} }

func (r *Postgres) GetActiveMetricsWithQuickActions(ctx context.Context, userID int) ([]models.Metric, error) {
	var metrics []models.Metric
	err := r.db.SelectContext(ctx, &metrics,
		`SELECT `+metricColumns+` FROM metrics WHERE user_id=$1 AND deleted_at IS NULL ORDER BY order_index`, userID)
	if err != nil {
		return nil, fmt.Errorf("select active metrics: %w", err)
	}
	if len(metrics) == 0 {
		return metrics, nil
	}
	ids := make([]int, len(metrics))
	index := make(map[int]int, len(metrics))
	for i, m := range metrics {
		ids[i] = m.ID
		index[m.ID] = i
	}
	query, args, err := psql.Select("id", "metric_id", "label", "value", "value_normalized", "icon", "position").
		From("quick_actions").
		Where(squirrel.Eq{"metric_id": ids}).
		OrderBy("metric_id", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build quick actions query: %w", err)
	}
	var actions []models.QuickAction
	if err := r.db.SelectContext(ctx, &actions, query, args...); err != nil {
		return nil, fmt.Errorf("select quick actions: %w", err)
	}
	for _, qa := range actions {
		i := index[qa.MetricID]
		metrics[i].QuickActions = append(metrics[i].QuickActions, qa)
	}
	return metrics, nil
}

func (r *Postgres) GetMetrics(ctx context.Context, userID int) ([]models.Metric, error) {
	var metrics []models.Metric
	err := r.db.SelectContext(ctx, &metrics,
		`SELECT `+metricColumns+` FROM metrics WHERE user_id=$1 ORDER BY order_index`, userID)
	if err != nil {
		return nil, fmt.Errorf("select metrics: %w", err)
	}
	return metrics, nil
}

func (r *Postgres) GetDeletedMetrics(ctx context.Context, userID int) ([]models.Metric, error) {
	var metrics []models.Metric
	err := r.db.SelectContext(ctx, &metrics,
		`SELECT `+metricColumns+` FROM metrics WHERE user_id=$1 AND deleted_at IS NOT NULL ORDER BY deleted_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("select deleted metrics: %w", err)
	}
	return metrics, nil
}

func (r *Postgres) GetMetricByID(ctx context.Context, id int) (*models.Metric, error) {
	var m models.Metric
	err := r.db.GetContext(ctx, &m, `SELECT `+metricColumns+` FROM metrics WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select metric %d: %w", id, err)
	}
	return &m, nil
}

func (r *Postgres) GetMetricBySlug(ctx context.Context, slug string, userID int) (*models.Metric, error) {
	var m models.Metric
	err := r.db.GetContext(ctx, &m,
		`SELECT `+metricColumns+` FROM metrics WHERE user_id=$1 AND slug=$2 AND deleted_at IS NULL`, userID, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select metric %q: %w", slug, err)
	}
	return &m, nil
}

func (r *Postgres) MetricExistsBySlug(ctx context.Context, slug string, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM metrics WHERE user_id=$1 AND slug=$2 AND deleted_at IS NULL)`, userID, slug)
	if err != nil {
		return false, fmt.Errorf("check slug %q: %w", slug, err)
	}
	return exists, nil
}

func (r *Postgres) CreateMetric(ctx context.Context, p service.CreateMetricParams) (models.Metric, error) {
	var m models.Metric
	err := r.db.GetContext(ctx, &m, `
		INSERT INTO metrics (user_id, slug, name, kind, display_unit, canonical_unit,
			conversion_factor, default_target, color, icon, order_index, input_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+metricColumns,
		p.UserID, p.Slug, p.Name, p.Kind, p.DisplayUnit, p.CanonicalUnit,
		p.ConversionFactor, p.DefaultTarget, p.Color, p.Icon, p.OrderIndex, p.InputType)
	if err != nil {
		if isPgErr(err, pgUniqueViolation) {
			return models.Metric{}, &service.ConflictError{Slug: p.Slug}
		}
		return models.Metric{}, fmt.Errorf("insert metric %q: %w", p.Slug, err)
	}
	return m, nil
}

func (r *Postgres) UpdateMetric(ctx context.Context, id int, p service.UpdateMetricParams) (models.Metric, error) {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.DisplayUnit != nil {
		set["display_unit"] = *p.DisplayUnit
	}
	if p.DefaultTarget != nil {
		set["default_target"] = *p.DefaultTarget
	}
	if p.Color != nil {
		set["color"] = *p.Color
	}
	if p.Icon != nil {
		set["icon"] = *p.Icon
	}
	if len(set) == 0 {
		m, err := r.GetMetricByID(ctx, id)
		if err != nil {
			return models.Metric{}, err
		}
		if m == nil {
			return models.Metric{}, &service.NotFoundError{Resource: "metric", Ref: fmt.Sprint(id)}
		}
		return *m, nil
	}
	query, args, err := psql.Update("metrics").SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + metricColumns).
		ToSql()
	if err != nil {
		return models.Metric{}, fmt.Errorf("build metric update: %w", err)
	}
	var m models.Metric
	if err := r.db.GetContext(ctx, &m, query, args...); err != nil {
		return models.Metric{}, fmt.Errorf("update metric %d: %w", id, err)
	}
	return m, nil
}

func (r *Postgres) DeleteMetric(ctx context.Context, id int) (models.Metric, error) {
	var m models.Metric
	err := r.db.GetContext(ctx, &m,
		`UPDATE metrics SET deleted_at = NOW() WHERE id=$1 AND deleted_at IS NULL RETURNING `+metricColumns, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Metric{}, &service.NotFoundError{Resource: "metric", Ref: fmt.Sprint(id)}
		}
		return models.Metric{}, fmt.Errorf("soft-delete metric %d: %w", id, err)
	}
	return m, nil
}

func (r *Postgres) RestoreMetric(ctx context.Context, id int) (models.Metric, error) {
	var m models.Metric
	err := r.db.GetContext(ctx, &m,
		`UPDATE metrics SET deleted_at = NULL WHERE id=$1 RETURNING `+metricColumns, id)
	if err != nil {
		if isPgErr(err, pgUniqueViolation) {
			slug := fmt.Sprint(id)
			_ = r.db.GetContext(ctx, &slug, `SELECT slug FROM metrics WHERE id=$1`, id)
			return models.Metric{}, &service.ConflictError{Slug: slug}
		}
		return models.Metric{}, fmt.Errorf("restore metric %d: %w", id, err)
	}
	return m, nil
}

func (r *Postgres) ReorderMetrics(ctx context.Context, pairs []service.OrderPair) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reorder: %w", err)
	}
	defer tx.Rollback()
	for _, p := range pairs {
		if _, err := tx.ExecContext(ctx,
			`UPDATE metrics SET order_index=$1 WHERE id=$2`, p.OrderIndex, p.MetricID); err != nil {
			return fmt.Errorf("reorder metric %d: %w", p.MetricID, err)
		}
	}
	return tx.Commit()
}

func (r *Postgres) CreateQuickAction(ctx context.Context, p service.CreateQuickActionParams) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quick_actions (metric_id, label, value, value_normalized, icon, position)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.MetricID, p.Label, p.Value, p.ValueNormalized, p.Icon, p.Position)
	if err != nil {
		if isPgErr(err, pgForeignKeyViolation) {
			return &service.ReferentialIntegrityError{
				Msg: fmt.Sprintf("quick action references metric %d which does not exist", p.MetricID),
			}
		}
		return fmt.Errorf("insert quick action %q: %w", p.Label, err)
	}
	return nil
}

func (r *Postgres) DeleteQuickAction(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quick_actions WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete quick action %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &service.NotFoundError{Resource: "quick action", Ref: fmt.Sprint(id)}
	}
	return nil
}

const entryColumns = `id, user_id, metric_id, value, value_normalized, unit, day_key,
	recorded_at, source, notes, display_value`

func (r *Postgres) CreateEntry(ctx context.Context, p service.CreateEntryParams) (models.Entry, error) {
	var e models.Entry
	err := r.db.GetContext(ctx, &e, `
		INSERT INTO entries (user_id, metric_id, value, value_normalized, unit, day_key,
			recorded_at, source, notes, display_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+entryColumns,
		p.UserID, p.MetricID, p.Value, p.ValueNormalized, p.Unit, p.DayKey,
		p.RecordedAt, p.Source, p.Notes, p.DisplayValue)
	if err != nil {
		if isPgErr(err, pgForeignKeyViolation) {
			return models.Entry{}, &service.ReferentialIntegrityError{
				Msg: fmt.Sprintf("entry references metric %d which does not exist", p.MetricID),
			}
		}
		return models.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	return e, nil
}

// CreateEntryFromQuickAction resolves a stored quick action together with
// its metric in one round trip and materializes the entry with the action's
// fixed value.
func (r *Postgres) CreateEntryFromQuickAction(ctx context.Context, p service.QuickActionEntryParams) (models.Entry, error) {
	var row struct {
		MetricID        int          `db:"metric_id"`
		Value           float64      `db:"value"`
		ValueNormalized float64      `db:"value_normalized"`
		DisplayUnit     string       `db:"display_unit"`
		UserID          int          `db:"user_id"`
		DeletedAt       sql.NullTime `db:"deleted_at"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT qa.metric_id, qa.value, qa.value_normalized, m.display_unit, m.user_id, m.deleted_at
		FROM quick_actions qa
		JOIN metrics m ON m.id = qa.metric_id
		WHERE qa.id = $1`, p.QuickActionID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, &service.NotFoundError{Resource: "quick action", Ref: fmt.Sprint(p.QuickActionID)}
	}
	if err != nil {
		return models.Entry{}, fmt.Errorf("resolve quick action %d: %w", p.QuickActionID, err)
	}
	if row.UserID != p.UserID || row.DeletedAt.Valid {
		return models.Entry{}, &service.NotFoundError{Resource: "quick action", Ref: fmt.Sprint(p.QuickActionID)}
	}
	return r.CreateEntry(ctx, service.CreateEntryParams{
		UserID:          p.UserID,
		MetricID:        row.MetricID,
		Value:           row.Value,
		ValueNormalized: row.ValueNormalized,
		Unit:            row.DisplayUnit,
		DayKey:          p.DayKey,
		RecordedAt:      p.RecordedAt,
		Source:          models.SourceQuickAction,
		Notes:           p.Notes,
	})
}

func (r *Postgres) GetEntryByID(ctx context.Context, id int) (*models.Entry, error) {
	var e models.Entry
	err := r.db.GetContext(ctx, &e, `SELECT `+entryColumns+` FROM entries WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select entry %d: %w", id, err)
	}
	return &e, nil
}

func (r *Postgres) UpdateEntry(ctx context.Context, id int, p service.UpdateEntryParams) (models.Entry, error) {
	var e models.Entry
	err := r.db.GetContext(ctx, &e, `
		UPDATE entries SET value=$1, value_normalized=$2, notes=COALESCE($3, notes)
		WHERE id=$4
		RETURNING `+entryColumns,
		p.Value, p.ValueNormalized, p.Notes, id)
	if err != nil {
		return models.Entry{}, fmt.Errorf("update entry %d: %w", id, err)
	}
	return e, nil
}

func (r *Postgres) DeleteEntry(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id=$1`, id); err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

func (r *Postgres) GetRecentEntries(ctx context.Context, userID, limit int) ([]models.Entry, error) {
	var entries []models.Entry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+entryColumns+` FROM entries WHERE user_id=$1 ORDER BY recorded_at DESC, id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent entries: %w", err)
	}
	return entries, nil
}

func (r *Postgres) GetEntriesForDay(ctx context.Context, userID int, dayKey string) ([]models.Entry, error) {
	var entries []models.Entry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT `+entryColumns+` FROM entries WHERE user_id=$1 AND day_key=$2 ORDER BY recorded_at, id`,
		userID, dayKey)
	if err != nil {
		return nil, fmt.Errorf("select entries for %s: %w", dayKey, err)
	}
	return entries, nil
}

func (r *Postgres) GetDailyAggregate(ctx context.Context, userID, metricID int, dayKey string) (*models.DailyAggregate, error) {
	var agg models.DailyAggregate
	err := r.db.GetContext(ctx, &agg, `
		SELECT metric_id, day_key, SUM(value_normalized) AS sum_normalized, COUNT(*) AS count
		FROM entries
		WHERE user_id=$1 AND metric_id=$2 AND day_key=$3
		GROUP BY metric_id, day_key`, userID, metricID, dayKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", dayKey, err)
	}
	return &agg, nil
}

// GetDailyAggregatesRange relies on day keys being "YYYY-MM-DD" strings, so
// lexicographic BETWEEN is date order.
func (r *Postgres) GetDailyAggregatesRange(ctx context.Context, userID, metricID int, startKey, endKey string) ([]models.DailyAggregate, error) {
	query, args, err := psql.Select(
		"metric_id", "day_key",
		"SUM(value_normalized) AS sum_normalized", "COUNT(*) AS count").
		From("entries").
		Where(squirrel.Eq{"user_id": userID, "metric_id": metricID}).
		Where(squirrel.GtOrEq{"day_key": startKey}).
		Where(squirrel.LtOrEq{"day_key": endKey}).
		GroupBy("metric_id", "day_key").
		OrderBy("day_key").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build aggregate range query: %w", err)
	}
	var aggs []models.DailyAggregate
	if err := r.db.SelectContext(ctx, &aggs, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate range %s..%s: %w", startKey, endKey, err)
	}
	return aggs, nil
}

func isPgErr(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
