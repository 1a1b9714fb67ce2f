package service

import (
	"math"
	"sort"
	"time"

	"dayline/internal/models"
)

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// trendMinRows is the number of aggregate rows needed before a trend is
// computed: three recent days compared against the three before them.
const trendMinRows = 6

// trendBandPct is the band around zero within which the change counts as stable.
const trendBandPct = 5.0

type MetricProgress struct {
	MetricID         int            `json:"metric_id"`
	WindowDays       int            `json:"window_days"`
	TotalEntries     int            `json:"total_entries"`
	AvgDailyValue    float64        `json:"avg_daily_value"`
	Streak           int            `json:"streak"`
	TargetPercentage *int           `json:"target_percentage,omitempty"`
	IsTargetMet      *bool          `json:"is_target_met,omitempty"`
	Trend            TrendDirection `json:"trend"`
	Consistency      float64        `json:"consistency"`
}

// DayStatus classifies a metric's target completion for one day.
type DayStatus string

const (
	StatusNotStarted DayStatus = "not_started"
	StatusInProgress DayStatus = "in_progress"
	StatusCompleted  DayStatus = "completed"
	StatusExceeded   DayStatus = "exceeded"
)

type MetricDaySummary struct {
	Metric     models.Metric `json:"metric"`
	Progress   float64       `json:"progress"`
	Status     DayStatus     `json:"status"`
	Sum        float64       `json:"sum_normalized"`
	EntryCount int           `json:"entry_count"`
}

type DaySummary struct {
	DayKey  string             `json:"day_key"`
	Metrics []MetricDaySummary `json:"metrics"`
}

// computeStreak walks backward from the reference day, counting consecutive
// days that have at least one entry. The first day without entries breaks
// the streak; gaps are never skipped. The walk is bounded by windowDays.
func computeStreak(byDay map[string]models.DailyAggregate, ref time.Time, windowDays int) int {
	streak := 0
	for i := 0; i < windowDays; i++ {
		key := models.DayKeyOf(ref.AddDate(0, 0, -i))
		agg, ok := byDay[key]
		if !ok || agg.Count == 0 {
			break
		}
		streak++
	}
	return streak
}

// computeTrend compares the mean of the last three aggregate rows against
// the mean of the three before them. Fewer than six rows, or a zero
// previous average, yields stable.
func computeTrend(aggs []models.DailyAggregate) TrendDirection {
	if len(aggs) < trendMinRows {
		return TrendStable
	}
	sorted := make([]models.DailyAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DayKey < sorted[j].DayKey })

	n := len(sorted)
	recent := meanSum(sorted[n-3:])
	previous := meanSum(sorted[n-6 : n-3])
	if previous == 0 {
		return TrendStable
	}
	change := (recent - previous) / previous * 100
	switch {
	case change > trendBandPct:
		return TrendUp
	case change < -trendBandPct:
		return TrendDown
	default:
		return TrendStable
	}
}

func meanSum(aggs []models.DailyAggregate) float64 {
	if len(aggs) == 0 {
		return 0
	}
	var total float64
	for _, a := range aggs {
		total += a.SumNormalized
	}
	return total / float64(len(aggs))
}

// computeConsistency is the share of window days with at least one entry.
func computeConsistency(aggs []models.DailyAggregate, windowDays int) float64 {
	if windowDays == 0 {
		return 0
	}
	active := 0
	for _, a := range aggs {
		if a.Count > 0 {
			active++
		}
	}
	return float64(active) / float64(windowDays) * 100
}

// classifyDay maps a metric's day aggregate to its completion status. With
// no usable target the day is in_progress as soon as it has entries.
func classifyDay(target *float64, sum float64, entryCount int) (float64, DayStatus) {
	if target == nil || *target <= 0 {
		if entryCount > 0 {
			return 0, StatusInProgress
		}
		return 0, StatusNotStarted
	}
	progress := sum / *target * 100
	switch {
	case progress <= 0:
		return 0, StatusNotStarted
	case progress < 100:
		return progress, StatusInProgress
	case progress < 120:
		return progress, StatusCompleted
	default:
		return progress, StatusExceeded
	}
}

func targetPercentage(sum, target float64) int {
	return int(math.Round(sum / target * 100))
}
