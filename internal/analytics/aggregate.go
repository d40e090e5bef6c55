package analytics

import (
	"sort"

	"github.com/spec-kit/servicedesk-proxy/internal/domain"
)

// UnassignedBucket collects records with no assignee or an id the agent
// directory cannot resolve.
const UnassignedBucket = "Unassigned"

// priorityLabels maps upstream priority codes 1..5, in rank order.
var priorityLabels = []string{"Very High", "High", "Normal", "Low", "Very Low"}

const priorityUnknown = "Unknown"

// PriorityLabel translates an upstream priority code to its display label.
func PriorityLabel(code int) string {
	if code >= 1 && code <= len(priorityLabels) {
		return priorityLabels[code-1]
	}
	return priorityUnknown
}

// FilterByStatus narrows records to the requested lifecycle slice. "all" and
// any unrecognized filter return the input unchanged.
func FilterByStatus(records []domain.ServiceRecord, filter domain.StatusFilter) []domain.ServiceRecord {
	switch filter {
	case domain.StatusFilterOpen, domain.StatusFilterClosed:
	default:
		return records
	}
	wantClosed := filter == domain.StatusFilterClosed
	out := make([]domain.ServiceRecord, 0, len(records))
	for _, r := range records {
		if r.Closed() == wantClosed {
			out = append(out, r)
		}
	}
	return out
}

// AssigneeDistribution groups records by assignee display name, bucketing
// missing and unresolvable assignees under "Unassigned". Sorted descending by
// count; ties keep first-occurrence order.
func AssigneeDistribution(records []domain.ServiceRecord, agents domain.Directory) []domain.NameValue {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		name := UnassignedBucket
		if r.Assignee != nil {
			if resolved, ok := agents[*r.Assignee]; ok {
				name = resolved
			}
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]domain.NameValue, 0, len(order))
	for _, name := range order {
		out = append(out, domain.NameValue{Name: name, Value: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// PriorityDistribution buckets records by priority label, ordered by the
// fixed priority rank rather than by count. Absent categories are omitted.
func PriorityDistribution(records []domain.ServiceRecord) []domain.NameValue {
	counts := make(map[string]int)
	for _, r := range records {
		counts[PriorityLabel(r.Priority)]++
	}

	out := make([]domain.NameValue, 0, len(priorityLabels)+1)
	for _, label := range append(append([]string{}, priorityLabels...), priorityUnknown) {
		if counts[label] > 0 {
			out = append(out, domain.NameValue{Name: label, Value: counts[label]})
		}
	}
	return out
}

// TopAssignees ranks resolved assignees by record count, descending, and
// truncates to n. Records whose assignee is missing or unresolvable are
// excluded entirely, not bucketed.
func TopAssignees(records []domain.ServiceRecord, agents domain.Directory, n int) []domain.NameValue {
	return topResolved(records, agents, n, func(r domain.ServiceRecord) *int64 {
		return r.Assignee
	})
}

// TopRequesters ranks resolved request users by record count, descending,
// truncated to n.
func TopRequesters(records []domain.ServiceRecord, users domain.Directory, n int) []domain.NameValue {
	return topResolved(records, users, n, func(r domain.ServiceRecord) *int64 {
		return r.RequestUser
	})
}

func topResolved(records []domain.ServiceRecord, dir domain.Directory, n int, pick func(domain.ServiceRecord) *int64) []domain.NameValue {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range records {
		id := pick(r)
		if id == nil {
			continue
		}
		name, ok := dir[*id]
		if !ok {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]domain.NameValue, 0, len(order))
	for _, name := range order {
		out = append(out, domain.NameValue{Name: name, Value: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
