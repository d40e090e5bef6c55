package analytics

import (
	"math"
	"time"

	"github.com/spec-kit/servicedesk-proxy/internal/domain"
)

const (
	week          = 7 * 24 * time.Hour
	msPerDay      = 86_400_000
	mttrBenchmark = 3.5
)

// Placeholder metrics: satisfaction, SLA breach rate and incident ratio have
// no upstream data source yet and are reported as fixed illustrative values.
// The benchmarks are the dashboard's agreed targets (4.0 of 5, 30%).
var (
	staticSatisfaction  = domain.TrendMetric{Value: 4.2, PreviousValue: 4.1, ChangePercent: 2.44, Benchmark: 4.0}
	staticSLABreachRate = domain.TrendMetric{Value: 12.5, PreviousValue: 14.2, ChangePercent: -11.97, Benchmark: 30}
	staticIncidentRatio = domain.TrendMetric{Value: 0.45, PreviousValue: 0.5, ChangePercent: -10, Benchmark: 0.3}
)

// WeeklyReport bundles the computed MTTR trend with the placeholder metrics.
type WeeklyReport struct {
	MTTR              domain.TrendMetric
	Satisfaction      domain.TrendMetric
	SLABreachRate     domain.TrendMetric
	IncidentRatio     domain.TrendMetric
	CurrentWeekCount  int
	PreviousWeekCount int
}

// WeeklyTrend partitions records by update time into the current week
// [now-7d, ...) and the previous week [now-14d, now-7d), and reports the mean
// open age in days of each partition plus the percent change between them.
//
// Empty partitions yield 0; a change of 0 is therefore ambiguous between "no
// change" and "no baseline" and callers must treat it as such.
func WeeklyTrend(records []domain.ServiceRecord, now time.Time) WeeklyReport {
	weekAgo := now.Add(-week)
	twoWeeksAgo := now.Add(-2 * week)

	var current, previous []domain.ServiceRecord
	for _, r := range records {
		updated := time.UnixMilli(r.UpdateTime)
		switch {
		case !updated.Before(weekAgo):
			current = append(current, r)
		case !updated.Before(twoWeeksAgo):
			previous = append(previous, r)
		}
	}

	currentAge := meanAgeDays(current, now)
	previousAge := meanAgeDays(previous, now)

	change := 0.0
	if previousAge != 0 {
		change = round2((currentAge - previousAge) / previousAge * 100)
	}

	return WeeklyReport{
		MTTR: domain.TrendMetric{
			Value:         currentAge,
			PreviousValue: previousAge,
			ChangePercent: change,
			Benchmark:     mttrBenchmark,
		},
		Satisfaction:      staticSatisfaction,
		SLABreachRate:     staticSLABreachRate,
		IncidentRatio:     staticIncidentRatio,
		CurrentWeekCount:  len(current),
		PreviousWeekCount: len(previous),
	}
}

// meanAgeDays averages now - insertTime over the partition, in days, rounded
// to two decimals. Empty partitions yield 0.
func meanAgeDays(records []domain.ServiceRecord, now time.Time) float64 {
	if len(records) == 0 {
		return 0
	}
	nowMs := now.UnixMilli()
	var totalDays float64
	for _, r := range records {
		totalDays += float64(nowMs-r.InsertTime) / msPerDay
	}
	return round2(totalDays / float64(len(records)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
