package analytics

import (
	"time"

	"github.com/spec-kit/servicedesk-proxy/internal/domain"
)

const dueDateLayout = "2006-01-02"

// ActiveSnapshot reports backlog health over the non-closed slice of the
// given records: percent overdue, percent open more than five days, percent
// with no due date. All three are 0 when nothing is active. A due date that
// does not parse counts as "no due date".
func ActiveSnapshot(records []domain.ServiceRecord, now time.Time) domain.ActiveHealth {
	active := FilterByStatus(records, domain.StatusFilterOpen)
	total := len(active)
	if total == 0 {
		return domain.ActiveHealth{}
	}

	fiveDaysAgo := now.Add(-5 * 24 * time.Hour)
	var overdue, openLong, noDue int
	for _, r := range active {
		due, ok := parseDueDate(r.DueDate)
		switch {
		case !ok:
			noDue++
		case due.Before(now):
			overdue++
		}
		if time.UnixMilli(r.InsertTime).Before(fiveDaysAgo) {
			openLong++
		}
	}

	return domain.ActiveHealth{
		TotalActive:       total,
		OverduePercent:    percent(overdue, total),
		OpenMoreThan5Days: percent(openLong, total),
		NoDueDate:         percent(noDue, total),
	}
}

func parseDueDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	due, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

func percent(part, total int) float64 {
	return float64(part) / float64(total) * 100
}
