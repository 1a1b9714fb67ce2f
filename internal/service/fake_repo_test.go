package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"dayline/internal/models"
)

// fakeRepo is an in-memory Repository for service tests. It mirrors the
// storage-layer guarantees the service relies on, including the active-slug
// unique constraint.
type fakeRepo struct {
	metrics      map[int]*models.Metric
	quickActions map[int]*models.QuickAction
	entries      map[int]*models.Entry
	macroEntries map[int]*models.MacroEntry
	macroTargets map[int]*models.MacroTarget
	nextID       int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		metrics:      make(map[int]*models.Metric),
		quickActions: make(map[int]*models.QuickAction),
		entries:      make(map[int]*models.Entry),
		macroEntries: make(map[int]*models.MacroEntry),
		macroTargets: make(map[int]*models.MacroTarget),
	}
}

func (f *fakeRepo) id() int {
	f.nextID++
	return f.nextID
}

func (f *fakeRepo) GetActiveMetricsWithQuickActions(_ context.Context, userID int) ([]models.Metric, error) {
	var out []models.Metric
	for _, m := range f.metrics {
		if m.UserID != userID || !m.Active() {
			continue
		}
		metric := *m
		metric.QuickActions = nil
		for _, qa := range f.quickActions {
			if qa.MetricID == m.ID {
				metric.QuickActions = append(metric.QuickActions, *qa)
			}
		}
		sort.Slice(metric.QuickActions, func(i, j int) bool {
			return metric.QuickActions[i].Position < metric.QuickActions[j].Position
		})
		out = append(out, metric)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeRepo) GetMetrics(_ context.Context, userID int) ([]models.Metric, error) {
	var out []models.Metric
	for _, m := range f.metrics {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeRepo) GetDeletedMetrics(_ context.Context, userID int) ([]models.Metric, error) {
	var out []models.Metric
	for _, m := range f.metrics {
		if m.UserID == userID && !m.Active() {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetMetricByID(_ context.Context, id int) (*models.Metric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (f *fakeRepo) GetMetricBySlug(_ context.Context, slug string, userID int) (*models.Metric, error) {
	for _, m := range f.metrics {
		if m.UserID == userID && m.Slug == slug && m.Active() {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) MetricExistsBySlug(_ context.Context, slug string, userID int) (bool, error) {
	for _, m := range f.metrics {
		if m.UserID == userID && m.Slug == slug && m.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateMetric(ctx context.Context, p CreateMetricParams) (models.Metric, error) {
	if exists, _ := f.MetricExistsBySlug(ctx, p.Slug, p.UserID); exists {
		return models.Metric{}, &ConflictError{Slug: p.Slug}
	}
	m := &models.Metric{
		ID:               f.id(),
		UserID:           p.UserID,
		Slug:             p.Slug,
		Name:             p.Name,
		Kind:             p.Kind,
		DisplayUnit:      p.DisplayUnit,
		CanonicalUnit:    p.CanonicalUnit,
		ConversionFactor: p.ConversionFactor,
		DefaultTarget:    p.DefaultTarget,
		Color:            p.Color,
		Icon:             p.Icon,
		OrderIndex:       p.OrderIndex,
		InputType:        p.InputType,
		CreatedAt:        time.Now(),
	}
	f.metrics[m.ID] = m
	return *m, nil
}

func (f *fakeRepo) UpdateMetric(_ context.Context, id int, p UpdateMetricParams) (models.Metric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return models.Metric{}, notFound("metric", id)
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.DisplayUnit != nil {
		m.DisplayUnit = *p.DisplayUnit
	}
	if p.DefaultTarget != nil {
		m.DefaultTarget = p.DefaultTarget
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.Icon != nil {
		m.Icon = *p.Icon
	}
	return *m, nil
}

func (f *fakeRepo) DeleteMetric(_ context.Context, id int) (models.Metric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return models.Metric{}, notFound("metric", id)
	}
	now := time.Now()
	m.DeletedAt = &now
	return *m, nil
}

func (f *fakeRepo) RestoreMetric(_ context.Context, id int) (models.Metric, error) {
	m, ok := f.metrics[id]
	if !ok {
		return models.Metric{}, notFound("metric", id)
	}
	m.DeletedAt = nil
	return *m, nil
}

func (f *fakeRepo) ReorderMetrics(_ context.Context, pairs []OrderPair) error {
	for _, p := range pairs {
		m, ok := f.metrics[p.MetricID]
		if !ok {
			return notFound("metric", p.MetricID)
		}
		m.OrderIndex = p.OrderIndex
	}
	return nil
}

func (f *fakeRepo) CreateQuickAction(_ context.Context, p CreateQuickActionParams) error {
	if _, ok := f.metrics[p.MetricID]; !ok {
		return &ReferentialIntegrityError{
			Msg: fmt.Sprintf("quick action references metric %d which does not exist", p.MetricID),
		}
	}
	qa := &models.QuickAction{
		ID:              f.id(),
		MetricID:        p.MetricID,
		Label:           p.Label,
		Value:           p.Value,
		ValueNormalized: p.ValueNormalized,
		Icon:            p.Icon,
		Position:        p.Position,
	}
	f.quickActions[qa.ID] = qa
	return nil
}

func (f *fakeRepo) DeleteQuickAction(_ context.Context, id int) error {
	if _, ok := f.quickActions[id]; !ok {
		return notFound("quick action", id)
	}
	delete(f.quickActions, id)
	return nil
}

func (f *fakeRepo) CreateEntry(_ context.Context, p CreateEntryParams) (models.Entry, error) {
	if _, ok := f.metrics[p.MetricID]; !ok {
		return models.Entry{}, &ReferentialIntegrityError{
			Msg: fmt.Sprintf("entry references metric %d which does not exist", p.MetricID),
		}
	}
	e := &models.Entry{
		ID:              f.id(),
		UserID:          p.UserID,
		MetricID:        p.MetricID,
		Value:           p.Value,
		ValueNormalized: p.ValueNormalized,
		Unit:            p.Unit,
		DayKey:          p.DayKey,
		RecordedAt:      p.RecordedAt,
		Source:          p.Source,
		Notes:           p.Notes,
		DisplayValue:    p.DisplayValue,
	}
	f.entries[e.ID] = e
	return *e, nil
}

func (f *fakeRepo) CreateEntryFromQuickAction(ctx context.Context, p QuickActionEntryParams) (models.Entry, error) {
	qa, ok := f.quickActions[p.QuickActionID]
	if !ok {
		return models.Entry{}, notFound("quick action", p.QuickActionID)
	}
	m, ok := f.metrics[qa.MetricID]
	if !ok {
		return models.Entry{}, &ReferentialIntegrityError{
			Msg: fmt.Sprintf("quick action references metric %d which does not exist", qa.MetricID),
		}
	}
	if m.UserID != p.UserID || !m.Active() {
		return models.Entry{}, notFound("quick action", p.QuickActionID)
	}
	return f.CreateEntry(ctx, CreateEntryParams{
		UserID:          p.UserID,
		MetricID:        m.ID,
		Value:           qa.Value,
		ValueNormalized: qa.ValueNormalized,
		Unit:            m.DisplayUnit,
		DayKey:          p.DayKey,
		RecordedAt:      p.RecordedAt,
		Source:          models.SourceQuickAction,
		Notes:           p.Notes,
	})
}

func (f *fakeRepo) GetEntryByID(_ context.Context, id int) (*models.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeRepo) UpdateEntry(_ context.Context, id int, p UpdateEntryParams) (models.Entry, error) {
	e, ok := f.entries[id]
	if !ok {
		return models.Entry{}, notFound("entry", id)
	}
	e.Value = p.Value
	e.ValueNormalized = p.ValueNormalized
	if p.Notes != nil {
		e.Notes = p.Notes
	}
	return *e, nil
}

func (f *fakeRepo) DeleteEntry(_ context.Context, id int) error {
	if _, ok := f.entries[id]; !ok {
		return notFound("entry", id)
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeRepo) GetRecentEntries(_ context.Context, userID, limit int) ([]models.Entry, error) {
	var out []models.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRepo) GetEntriesForDay(_ context.Context, userID int, dayKey string) ([]models.Entry, error) {
	var out []models.Entry
	for _, e := range f.entries {
		if e.UserID == userID && e.DayKey == dayKey {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRepo) GetDailyAggregate(ctx context.Context, userID, metricID int, dayKey string) (*models.DailyAggregate, error) {
	aggs, err := f.GetDailyAggregatesRange(ctx, userID, metricID, dayKey, dayKey)
	if err != nil || len(aggs) == 0 {
		return nil, err
	}
	return &aggs[0], nil
}

func (f *fakeRepo) GetDailyAggregatesRange(_ context.Context, userID, metricID int, startKey, endKey string) ([]models.DailyAggregate, error) {
	byDay := make(map[string]*models.DailyAggregate)
	for _, e := range f.entries {
		if e.UserID != userID || e.MetricID != metricID {
			continue
		}
		if e.DayKey < startKey || e.DayKey > endKey {
			continue
		}
		agg, ok := byDay[e.DayKey]
		if !ok {
			agg = &models.DailyAggregate{MetricID: metricID, DayKey: e.DayKey}
			byDay[e.DayKey] = agg
		}
		agg.SumNormalized += e.ValueNormalized
		agg.Count++
	}
	var out []models.DailyAggregate
	for _, agg := range byDay {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayKey < out[j].DayKey })
	return out, nil
}

func (f *fakeRepo) GetMacroTarget(_ context.Context, userID int) (*models.MacroTarget, error) {
	t, ok := f.macroTargets[userID]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (f *fakeRepo) UpsertMacroTarget(_ context.Context, userID int, protein, carbs, fats float64) (models.MacroTarget, error) {
	t, ok := f.macroTargets[userID]
	if !ok {
		t = &models.MacroTarget{ID: f.id(), UserID: userID}
		f.macroTargets[userID] = t
	}
	t.Protein = protein
	t.Carbs = carbs
	t.Fats = fats
	t.UpdatedAt = time.Now()
	return *t, nil
}

func (f *fakeRepo) CreateMacroEntry(_ context.Context, p CreateMacroEntryParams) (models.MacroEntry, error) {
	e := &models.MacroEntry{
		ID:         f.id(),
		UserID:     p.UserID,
		Protein:    p.Protein,
		Carbs:      p.Carbs,
		Fats:       p.Fats,
		Calories:   p.Calories,
		DayKey:     p.DayKey,
		RecordedAt: p.RecordedAt,
		Notes:      p.Notes,
	}
	f.macroEntries[e.ID] = e
	return *e, nil
}

func (f *fakeRepo) GetMacroEntryByID(_ context.Context, id int) (*models.MacroEntry, error) {
	e, ok := f.macroEntries[id]
	if !ok {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (f *fakeRepo) UpdateMacroEntry(_ context.Context, id int, p UpdateMacroEntryParams) (models.MacroEntry, error) {
	e, ok := f.macroEntries[id]
	if !ok {
		return models.MacroEntry{}, notFound("macro entry", id)
	}
	e.Protein = p.Protein
	e.Carbs = p.Carbs
	e.Fats = p.Fats
	e.Calories = p.Calories
	if p.Notes != nil {
		e.Notes = p.Notes
	}
	return *e, nil
}

func (f *fakeRepo) DeleteMacroEntry(_ context.Context, id int) error {
	if _, ok := f.macroEntries[id]; !ok {
		return notFound("macro entry", id)
	}
	delete(f.macroEntries, id)
	return nil
}

func (f *fakeRepo) GetMacroEntriesForDay(_ context.Context, userID int, dayKey string) ([]models.MacroEntry, error) {
	var out []models.MacroEntry
	for _, e := range f.macroEntries {
		if e.UserID == userID && e.DayKey == dayKey {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
