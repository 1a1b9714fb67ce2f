package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"dayline/internal/catalog"
	"dayline/internal/models"
	"dayline/internal/units"
)

// TrackingService owns the business rules of the metric tracker: metric and
// entry lifecycle, validation, day bucketing and analytics. It holds no
// state of its own; everything lives behind the Repository.
type TrackingService struct {
	repo    Repository
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewTrackingService(repo Repository, cat *catalog.Catalog) *TrackingService {
	return &TrackingService{repo: repo, catalog: cat, now: time.Now}
}

type CustomMetricInput struct {
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

type QuickActionInput struct {
	MetricID int     `json:"metric_id"`
	Label    string  `json:"label"`
	Value    float64 `json:"value"`
	Icon     string  `json:"icon"`
	Position int     `json:"position"`
}

type EntryOptions struct {
	Notes        *string
	RecordedAt   *time.Time
	DisplayValue *string
}

type QuickActionEntryOptions struct {
	Notes      *string
	RecordedAt *time.Time
	// Slug selects the catalog template list when the quick action id is a
	// synthetic template id (negative).
	Slug string
}

// GetActiveMetrics returns the user's non-deleted metrics ordered by order
// index, each with its quick actions. Metrics without stored quick actions
// fall back to the catalog's template actions for their slug.
func (s *TrackingService) GetActiveMetrics(ctx context.Context, userID int) ([]models.Metric, error) {
	metrics, err := s.repo.GetActiveMetricsWithQuickActions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active metrics: %w", err)
	}
	for i := range metrics {
		if len(metrics[i].QuickActions) == 0 {
			metrics[i].QuickActions = s.templateActions(metrics[i])
		}
	}
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].OrderIndex < metrics[j].OrderIndex
	})
	return metrics, nil
}

func (s *TrackingService) templateActions(m models.Metric) []models.QuickAction {
	templates := s.catalog.QuickActions(m.Slug)
	if len(templates) == 0 {
		return nil
	}
	actions := make([]models.QuickAction, 0, len(templates))
	for i, t := range templates {
		actions = append(actions, models.QuickAction{
			ID:              catalog.TemplateActionID(i),
			MetricID:        m.ID,
			Label:           t.Label,
			Value:           t.Value,
			ValueNormalized: units.Normalize(t.Value, m.ConversionFactor),
			Icon:            t.Icon,
			Position:        t.Position,
		})
	}
	return actions
}

// CreateCustomMetric validates a user-defined metric, rejects active-slug
// collisions, assigns the next order index and persists it. The storage
// layer's partial unique index is the real guard against the
// check-then-insert race; this check is the fast path.
func (s *TrackingService) CreateCustomMetric(ctx context.Context, userID int, in CustomMetricInput) (models.Metric, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Metric{}, validationf("metric name is required")
	}
	if strings.TrimSpace(in.DisplayUnit) == "" {
		return models.Metric{}, validationf("display unit is required")
	}
	if in.ConversionFactor <= 0 {
		return models.Metric{}, validationf("conversion factor must be > 0")
	}
	if in.DefaultTarget != nil && *in.DefaultTarget < 0 {
		return models.Metric{}, validationf("default target must be >= 0")
	}
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = slugify(in.Name)
	}
	if in.Kind == "" {
		in.Kind = models.KindCounter
	}
	if in.InputType == "" {
		in.InputType = models.InputNumericAccumulative
	}
	if in.CanonicalUnit == "" {
		in.CanonicalUnit = in.DisplayUnit
	}

	exists, err := s.repo.MetricExistsBySlug(ctx, slug, userID)
	if err != nil {
		return models.Metric{}, fmt.Errorf("check slug %q: %w", slug, err)
	}
	if exists {
		return models.Metric{}, &ConflictError{Slug: slug}
	}

	orderIndex, err := s.nextOrderIndex(ctx, userID)
	if err != nil {
		return models.Metric{}, err
	}
	return s.repo.CreateMetric(ctx, CreateMetricParams{
		UserID:           userID,
		Slug:             slug,
		Name:             strings.TrimSpace(in.Name),
		Kind:             in.Kind,
		DisplayUnit:      in.DisplayUnit,
		CanonicalUnit:    in.CanonicalUnit,
		ConversionFactor: in.ConversionFactor,
		DefaultTarget:    in.DefaultTarget,
		Color:            in.Color,
		Icon:             in.Icon,
		OrderIndex:       orderIndex,
		InputType:        in.InputType,
	})
}

// AddMetricFromTemplate materializes a catalog template as a metric for the
// user, together with the template's quick actions.
func (s *TrackingService) AddMetricFromTemplate(ctx context.Context, userID int, slug string) (models.Metric, error) {
	tpl, ok := s.catalog.Template(slug)
	if !ok {
		return models.Metric{}, notFound("template", slug)
	}
	exists, err := s.repo.MetricExistsBySlug(ctx, slug, userID)
	if err != nil {
		return models.Metric{}, fmt.Errorf("check slug %q: %w", slug, err)
	}
	if exists {
		return models.Metric{}, &ConflictError{Slug: slug}
	}
	orderIndex, err := s.nextOrderIndex(ctx, userID)
	if err != nil {
		return models.Metric{}, err
	}
	metric, err := s.repo.CreateMetric(ctx, CreateMetricParams{
		UserID:           userID,
		Slug:             tpl.Slug,
		Name:             tpl.Name,
		Kind:             tpl.Kind,
		DisplayUnit:      tpl.DisplayUnit,
		CanonicalUnit:    tpl.CanonicalUnit,
		ConversionFactor: tpl.ConversionFactor,
		DefaultTarget:    tpl.DefaultTarget,
		Color:            tpl.Color,
		Icon:             tpl.Icon,
		OrderIndex:       orderIndex,
		InputType:        tpl.InputType,
	})
	if err != nil {
		return models.Metric{}, err
	}
	for _, qa := range s.catalog.QuickActions(slug) {
		err := s.repo.CreateQuickAction(ctx, CreateQuickActionParams{
			MetricID:        metric.ID,
			Label:           qa.Label,
			Value:           qa.Value,
			ValueNormalized: units.Normalize(qa.Value, tpl.ConversionFactor),
			Icon:            qa.Icon,
			Position:        qa.Position,
		})
		if err != nil {
			return models.Metric{}, fmt.Errorf("materialize quick action %q: %w", qa.Label, err)
		}
	}
	return metric, nil
}

func (s *TrackingService) nextOrderIndex(ctx context.Context, userID int) (int, error) {
	metrics, err := s.repo.GetMetrics(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load metrics for order index: %w", err)
	}
	max := 0
	for _, m := range metrics {
		if m.OrderIndex > max {
			max = m.OrderIndex
		}
	}
	return max + 1, nil
}

// UpdateMetric patches a metric's editable fields.
func (s *TrackingService) UpdateMetric(ctx context.Context, metricID int, p UpdateMetricParams) (models.Metric, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return models.Metric{}, validationf("metric name is required")
	}
	if p.DisplayUnit != nil && strings.TrimSpace(*p.DisplayUnit) == "" {
		return models.Metric{}, validationf("display unit is required")
	}
	if p.DefaultTarget != nil && *p.DefaultTarget < 0 {
		return models.Metric{}, validationf("default target must be >= 0")
	}
	metric, err := s.activeMetric(ctx, metricID)
	if err != nil {
		return models.Metric{}, err
	}
	return s.repo.UpdateMetric(ctx, metric.ID, p)
}

// DeleteMetric soft-deletes a metric. Its entries are kept; the metric can
// be restored later.
func (s *TrackingService) DeleteMetric(ctx context.Context, metricID int) (models.Metric, error) {
	metric, err := s.activeMetric(ctx, metricID)
	if err != nil {
		return models.Metric{}, err
	}
	return s.repo.DeleteMetric(ctx, metric.ID)
}

// RestoreMetric clears the soft-delete timestamp. Slug uniqueness is
// re-validated against the active set so a restore cannot collide with a
// metric created since the delete.
func (s *TrackingService) RestoreMetric(ctx context.Context, metricID int) (models.Metric, error) {
	metric, err := s.repo.GetMetricByID(ctx, metricID)
	if err != nil {
		return models.Metric{}, fmt.Errorf("load metric %d: %w", metricID, err)
	}
	if metric == nil {
		return models.Metric{}, notFound("metric", metricID)
	}
	if metric.Active() {
		return *metric, nil
	}
	exists, err := s.repo.MetricExistsBySlug(ctx, metric.Slug, metric.UserID)
	if err != nil {
		return models.Metric{}, fmt.Errorf("check slug %q: %w", metric.Slug, err)
	}
	if exists {
		return models.Metric{}, &ConflictError{Slug: metric.Slug}
	}
	return s.repo.RestoreMetric(ctx, metric.ID)
}

// ReorderMetrics assigns order_index = position + 1 for each id in the given
// order. Every id must name an active metric of the user; otherwise the call
// is rejected with the full list of invalid ids and nothing is written.
func (s *TrackingService) ReorderMetrics(ctx context.Context, userID int, metricIDs []int) error {
	if len(metricIDs) == 0 {
		return validationf("metric ids are required")
	}
	active, err := s.repo.GetActiveMetricsWithQuickActions(ctx, userID)
	if err != nil {
		return fmt.Errorf("load active metrics: %w", err)
	}
	owned := make(map[int]bool, len(active))
	for _, m := range active {
		owned[m.ID] = true
	}
	var invalid []int
	for _, id := range metricIDs {
		if !owned[id] {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return validationf("metric ids do not belong to an active metric of this user: %v", invalid)
	}
	pairs := make([]OrderPair, 0, len(metricIDs))
	for i, id := range metricIDs {
		pairs = append(pairs, OrderPair{MetricID: id, OrderIndex: i + 1})
	}
	return s.repo.ReorderMetrics(ctx, pairs)
}

// ListDeletedMetrics returns the user's soft-deleted metrics.
func (s *TrackingService) ListDeletedMetrics(ctx context.Context, userID int) ([]models.Metric, error) {
	return s.repo.GetDeletedMetrics(ctx, userID)
}

// ListAvailableTemplates returns the catalog templates the user has not yet
// added as active metrics.
func (s *TrackingService) ListAvailableTemplates(ctx context.Context, userID int) ([]catalog.MetricTemplate, error) {
	active, err := s.repo.GetActiveMetricsWithQuickActions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active metrics: %w", err)
	}
	taken := make(map[string]bool, len(active))
	for _, m := range active {
		taken[m.Slug] = true
	}
	var available []catalog.MetricTemplate
	for _, t := range s.catalog.Templates() {
		if !taken[t.Slug] {
			available = append(available, t)
		}
	}
	return available, nil
}

// CreateQuickAction attaches a shortcut with a fixed value to an active
// metric.
func (s *TrackingService) CreateQuickAction(ctx context.Context, in QuickActionInput) error {
	if strings.TrimSpace(in.Label) == "" {
		return validationf("quick action label is required")
	}
	if in.Value <= 0 {
		return validationf("quick action value must be > 0")
	}
	if in.Position < 0 {
		return validationf("quick action position must be >= 0")
	}
	metric, err := s.activeMetric(ctx, in.MetricID)
	if err != nil {
		return err
	}
	return s.repo.CreateQuickAction(ctx, CreateQuickActionParams{
		MetricID:        metric.ID,
		Label:           strings.TrimSpace(in.Label),
		Value:           in.Value,
		ValueNormalized: units.Normalize(in.Value, metric.ConversionFactor),
		Icon:            in.Icon,
		Position:        in.Position,
	})
}

func (s *TrackingService) DeleteQuickAction(ctx context.Context, id int) error {
	return s.repo.DeleteQuickAction(ctx, id)
}

// AddEntry records a manual observation for an active metric. The value is
// bucketed into the calendar day of recordedAt (defaulting to now) and
// normalized into the metric's canonical unit.
func (s *TrackingService) AddEntry(ctx context.Context, userID, metricID int, value float64, opts EntryOptions) (models.Entry, error) {
	if value < 0 {
		return models.Entry{}, validationf("entry value must be >= 0")
	}
	metric, err := s.activeMetric(ctx, metricID)
	if err != nil {
		return models.Entry{}, err
	}
	if metric.Kind == models.KindCounter && !atMostTwoDecimals(value) {
		return models.Entry{}, validationf("counter entries allow at most 2 decimal places")
	}
	recordedAt := s.now()
	if opts.RecordedAt != nil {
		recordedAt = *opts.RecordedAt
	}
	return s.repo.CreateEntry(ctx, CreateEntryParams{
		UserID:          userID,
		MetricID:        metric.ID,
		Value:           value,
		ValueNormalized: units.Normalize(value, metric.ConversionFactor),
		Unit:            metric.DisplayUnit,
		DayKey:          models.DayKeyOf(recordedAt),
		RecordedAt:      recordedAt,
		Source:          models.SourceManual,
		Notes:           opts.Notes,
		DisplayValue:    opts.DisplayValue,
	})
}

// AddEntryFromQuickAction materializes one entry from a quick action. A
// stored action (positive id) is resolved by the repository; a template
// action (negative id plus slug) is resolved from the catalog here. Batch
// application is N independent calls so each entry stays individually
// editable and deletable.
func (s *TrackingService) AddEntryFromQuickAction(ctx context.Context, userID, quickActionID int, opts QuickActionEntryOptions) (models.Entry, error) {
	recordedAt := s.now()
	if opts.RecordedAt != nil {
		recordedAt = *opts.RecordedAt
	}
	if idx, isTemplate := catalog.TemplateActionIndex(quickActionID); isTemplate {
		return s.addTemplateActionEntry(ctx, userID, idx, opts, recordedAt)
	}
	return s.repo.CreateEntryFromQuickAction(ctx, QuickActionEntryParams{
		QuickActionID: quickActionID,
		UserID:        userID,
		Slug:          opts.Slug,
		Notes:         opts.Notes,
		RecordedAt:    recordedAt,
		DayKey:        models.DayKeyOf(recordedAt),
	})
}

func (s *TrackingService) addTemplateActionEntry(ctx context.Context, userID, idx int, opts QuickActionEntryOptions, recordedAt time.Time) (models.Entry, error) {
	if opts.Slug == "" {
		return models.Entry{}, validationf("slug is required for template quick actions")
	}
	templates := s.catalog.QuickActions(opts.Slug)
	if idx >= len(templates) {
		return models.Entry{}, notFound("quick action template", fmt.Sprintf("%s[%d]", opts.Slug, idx))
	}
	metric, err := s.repo.GetMetricBySlug(ctx, opts.Slug, userID)
	if err != nil {
		return models.Entry{}, fmt.Errorf("load metric %q: %w", opts.Slug, err)
	}
	if metric == nil || !metric.Active() {
		return models.Entry{}, notFound("metric", opts.Slug)
	}
	tpl := templates[idx]
	return s.repo.CreateEntry(ctx, CreateEntryParams{
		UserID:          userID,
		MetricID:        metric.ID,
		Value:           tpl.Value,
		ValueNormalized: units.Normalize(tpl.Value, metric.ConversionFactor),
		Unit:            metric.DisplayUnit,
		DayKey:          models.DayKeyOf(recordedAt),
		RecordedAt:      recordedAt,
		Source:          models.SourceQuickAction,
		Notes:           opts.Notes,
	})
}

// UpdateEntry changes an entry's value and notes. The metric is re-resolved
// so the normalized value is recomputed with the current conversion factor.
func (s *TrackingService) UpdateEntry(ctx context.Context, entryID int, value float64, notes *string) (models.Entry, error) {
	if value <= 0 {
		return models.Entry{}, validationf("entry value must be > 0")
	}
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return models.Entry{}, fmt.Errorf("load entry %d: %w", entryID, err)
	}
	if entry == nil {
		return models.Entry{}, notFound("entry", entryID)
	}
	metric, err := s.repo.GetMetricByID(ctx, entry.MetricID)
	if err != nil {
		return models.Entry{}, fmt.Errorf("load metric %d: %w", entry.MetricID, err)
	}
	if metric == nil {
		return models.Entry{}, notFound("metric", entry.MetricID)
	}
	if metric.Kind == models.KindCounter && !atMostTwoDecimals(value) {
		return models.Entry{}, validationf("counter entries allow at most 2 decimal places")
	}
	return s.repo.UpdateEntry(ctx, entry.ID, UpdateEntryParams{
		Value:           value,
		ValueNormalized: units.Normalize(value, metric.ConversionFactor),
		Notes:           notes,
	})
}

// DeleteEntry removes an entry permanently.
func (s *TrackingService) DeleteEntry(ctx context.Context, entryID int) error {
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("load entry %d: %w", entryID, err)
	}
	if entry == nil {
		return notFound("entry", entryID)
	}
	return s.repo.DeleteEntry(ctx, entry.ID)
}

// GetRecentEntries returns the user's latest entries across all metrics.
func (s *TrackingService) GetRecentEntries(ctx context.Context, userID, limit int) ([]models.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.GetRecentEntries(ctx, userID, limit)
}

// GetDayData assembles the canonical per-day snapshot: every active metric
// with its entries for the day key and the aggregate derived from them.
func (s *TrackingService) GetDayData(ctx context.Context, userID int, dayKey string) (models.DayData, error) {
	if err := validateDayKey(dayKey); err != nil {
		return models.DayData{}, err
	}
	metrics, err := s.GetActiveMetrics(ctx, userID)
	if err != nil {
		return models.DayData{}, err
	}
	entries, err := s.repo.GetEntriesForDay(ctx, userID, dayKey)
	if err != nil {
		return models.DayData{}, fmt.Errorf("load entries for %s: %w", dayKey, err)
	}
	byMetric := make(map[int][]models.Entry)
	for _, e := range entries {
		byMetric[e.MetricID] = append(byMetric[e.MetricID], e)
	}
	day := models.DayData{DayKey: dayKey, Metrics: make([]models.MetricDayData, 0, len(metrics))}
	for _, m := range metrics {
		metricEntries := byMetric[m.ID]
		day.Metrics = append(day.Metrics, models.MetricDayData{
			Metric:    m,
			Entries:   metricEntries,
			Aggregate: BuildDailyAggregate(m.ID, dayKey, metricEntries),
		})
	}
	return day, nil
}

// maxWindowDays caps the trailing window for history and progress reads.
// The handler takes days from the query string, so an unclamped value
// would size an allocation per requested day.
const maxWindowDays = 365

// GetMetricHistory returns one aggregate slot per day for the trailing
// window ending today, missing days filled with zeros.
func (s *TrackingService) GetMetricHistory(ctx context.Context, userID, metricID, days int) ([]models.DailyAggregate, error) {
	if days < 1 {
		return nil, validationf("days must be >= 1")
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}
	metric, err := s.activeMetric(ctx, metricID)
	if err != nil {
		return nil, err
	}
	today := s.now()
	start := today.AddDate(0, 0, -(days - 1))
	aggs, err := s.repo.GetDailyAggregatesRange(ctx, userID, metric.ID,
		models.DayKeyOf(start), models.DayKeyOf(today))
	if err != nil {
		return nil, fmt.Errorf("load aggregates: %w", err)
	}
	byDay := make(map[string]models.DailyAggregate, len(aggs))
	for _, a := range aggs {
		byDay[a.DayKey] = a
	}
	history := make([]models.DailyAggregate, 0, days)
	for i := 0; i < days; i++ {
		key := models.DayKeyOf(start.AddDate(0, 0, i))
		if a, ok := byDay[key]; ok {
			history = append(history, a)
		} else {
			history = append(history, models.DailyAggregate{MetricID: metric.ID, DayKey: key})
		}
	}
	return history, nil
}

// GetMetricProgress computes the composite analytics for a metric over the
// trailing window: totals, average, streak, target completion, trend and
// consistency.
func (s *TrackingService) GetMetricProgress(ctx context.Context, userID, metricID, days int) (MetricProgress, error) {
	if days < 1 {
		return MetricProgress{}, validationf("days must be >= 1")
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}
	metric, err := s.activeMetric(ctx, metricID)
	if err != nil {
		return MetricProgress{}, err
	}
	today := s.now()
	start := today.AddDate(0, 0, -(days - 1))
	aggs, err := s.repo.GetDailyAggregatesRange(ctx, userID, metric.ID,
		models.DayKeyOf(start), models.DayKeyOf(today))
	if err != nil {
		return MetricProgress{}, fmt.Errorf("load aggregates: %w", err)
	}

	progress := MetricProgress{
		MetricID:    metric.ID,
		WindowDays:  days,
		Trend:       computeTrend(aggs),
		Consistency: computeConsistency(aggs, days),
	}
	byDay := make(map[string]models.DailyAggregate, len(aggs))
	for _, a := range aggs {
		byDay[a.DayKey] = a
		progress.TotalEntries += a.Count
	}
	// Days without an aggregate row are excluded from the average's
	// denominator, not counted as zero.
	if len(aggs) > 0 {
		progress.AvgDailyValue = meanSum(aggs)
	}
	progress.Streak = computeStreak(byDay, today, days)

	if metric.DefaultTarget != nil && *metric.DefaultTarget > 0 {
		if todayAgg, ok := byDay[models.DayKeyOf(today)]; ok {
			pct := targetPercentage(todayAgg.SumNormalized, *metric.DefaultTarget)
			met := todayAgg.SumNormalized >= *metric.DefaultTarget
			progress.TargetPercentage = &pct
			progress.IsTargetMet = &met
		}
	}
	return progress, nil
}

// GetTodaySummary classifies every active metric's target completion for
// the current day.
func (s *TrackingService) GetTodaySummary(ctx context.Context, userID int) (DaySummary, error) {
	return s.GetDayDataSummary(ctx, userID, models.DayKeyOf(s.now()))
}

// GetDayDataSummary is the per-metric status classification for one day.
func (s *TrackingService) GetDayDataSummary(ctx context.Context, userID int, dayKey string) (DaySummary, error) {
	day, err := s.GetDayData(ctx, userID, dayKey)
	if err != nil {
		return DaySummary{}, err
	}
	summary := DaySummary{DayKey: dayKey, Metrics: make([]MetricDaySummary, 0, len(day.Metrics))}
	for _, md := range day.Metrics {
		progress, status := classifyDay(md.Metric.DefaultTarget, md.Aggregate.SumNormalized, md.Aggregate.Count)
		summary.Metrics = append(summary.Metrics, MetricDaySummary{
			Metric:     md.Metric,
			Progress:   progress,
			Status:     status,
			Sum:        md.Aggregate.SumNormalized,
			EntryCount: md.Aggregate.Count,
		})
	}
	return summary, nil
}

func (s *TrackingService) activeMetric(ctx context.Context, metricID int) (*models.Metric, error) {
	metric, err := s.repo.GetMetricByID(ctx, metricID)
	if err != nil {
		return nil, fmt.Errorf("load metric %d: %w", metricID, err)
	}
	if metric == nil || !metric.Active() {
		return nil, notFound("metric", metricID)
	}
	return metric, nil
}

func validateDayKey(dayKey string) error {
	if _, err := time.Parse(models.DayKeyFormat, dayKey); err != nil {
		return validationf("invalid day key %q; expected YYYY-MM-DD", dayKey)
	}
	return nil
}

func atMostTwoDecimals(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
