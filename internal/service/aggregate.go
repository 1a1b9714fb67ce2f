package service

import "dayline/internal/models"

// BuildDailyAggregate derives a day bucket's totals from its entries. The
// service always recomputes aggregates from the entry set instead of
// patching a cached running total, so the invariant
// sum_normalized == Σ value_normalized holds after any add/update/delete
// sequence.
func BuildDailyAggregate(metricID int, dayKey string, entries []models.Entry) models.DailyAggregate {
	agg := models.DailyAggregate{MetricID: metricID, DayKey: dayKey}
	for _, e := range entries {
		agg.SumNormalized += e.ValueNormalized
		agg.Count++
	}
	return agg
}
