package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/servicedesk-proxy/internal/domain"
)

func idPtr(v int64) *int64 {
	return &v
}

func TestFilterByStatus(t *testing.T) {
	records := []domain.ServiceRecord{
		{ID: 1, Status: 1},
		{ID: 2, Status: domain.StatusClosed},
		{ID: 3, Status: 7},
	}

	open := FilterByStatus(records, domain.StatusFilterOpen)
	require.Len(t, open, 2)
	for _, r := range open {
		assert.NotEqual(t, domain.StatusClosed, r.Status)
	}

	closed := FilterByStatus(records, domain.StatusFilterClosed)
	require.Len(t, closed, 1)
	assert.Equal(t, int64(2), closed[0].ID)

	assert.Equal(t, records, FilterByStatus(records, domain.StatusFilterAll))
	assert.Equal(t, records, FilterByStatus(records, domain.StatusFilter("bogus")))
	assert.Equal(t, records, FilterByStatus(records, domain.StatusFilter("")))
}

func TestFilterByStatusIdempotent(t *testing.T) {
	records := []domain.ServiceRecord{
		{ID: 1, Status: 1},
		{ID: 2, Status: domain.StatusClosed},
		{ID: 3, Status: 2},
	}

	once := FilterByStatus(records, domain.StatusFilterOpen)
	twice := FilterByStatus(once, domain.StatusFilterOpen)
	assert.Equal(t, once, twice)
}

func TestAssigneeDistribution(t *testing.T) {
	agents := domain.Directory{10: "Dana", 11: "Lee"}
	records := []domain.ServiceRecord{
		{Assignee: idPtr(10)},
		{Assignee: idPtr(11)},
		{Assignee: idPtr(10)},
		{Assignee: nil},
		{Assignee: idPtr(99)}, // not in the directory
	}

	dist := AssigneeDistribution(records, agents)
	require.Len(t, dist, 3)

	assert.Equal(t, domain.NameValue{Name: "Dana", Value: 2}, dist[0])
	assert.Equal(t, domain.NameValue{Name: UnassignedBucket, Value: 2}, dist[1])
	assert.Equal(t, domain.NameValue{Name: "Lee", Value: 1}, dist[2])

	// The bucket values always sum to the record count.
	total := 0
	for _, bucket := range dist {
		total += bucket.Value
	}
	assert.Equal(t, len(records), total)
}

func TestAssigneeDistributionTiesKeepEncounterOrder(t *testing.T) {
	agents := domain.Directory{1: "First", 2: "Second", 3: "Third"}
	records := []domain.ServiceRecord{
		{Assignee: idPtr(1)},
		{Assignee: idPtr(2)},
		{Assignee: idPtr(3)},
	}

	dist := AssigneeDistribution(records, agents)
	require.Len(t, dist, 3)
	assert.Equal(t, "First", dist[0].Name)
	assert.Equal(t, "Second", dist[1].Name)
	assert.Equal(t, "Third", dist[2].Name)
}

func TestPriorityDistributionOrder(t *testing.T) {
	records := []domain.ServiceRecord{
		{Priority: 2},
		{Priority: 1},
		{Priority: 3},
		{Priority: 5},
	}

	dist := PriorityDistribution(records)
	require.Len(t, dist, 4)
	assert.Equal(t, []domain.NameValue{
		{Name: "Very High", Value: 1},
		{Name: "High", Value: 1},
		{Name: "Normal", Value: 1},
		{Name: "Very Low", Value: 1},
	}, dist)
}

func TestPriorityDistributionUnknownLast(t *testing.T) {
	records := []domain.ServiceRecord{
		{Priority: 4},
		{Priority: 0},
		{Priority: 9},
		{Priority: 4},
	}

	dist := PriorityDistribution(records)
	require.Len(t, dist, 2)
	assert.Equal(t, domain.NameValue{Name: "Low", Value: 2}, dist[0])
	assert.Equal(t, domain.NameValue{Name: "Unknown", Value: 2}, dist[1])
}

func TestTopAssigneesExcludesUnresolved(t *testing.T) {
	agents := domain.Directory{10: "Dana"}
	records := []domain.ServiceRecord{
		{Assignee: idPtr(10)},
		{Assignee: idPtr(99)},
		{Assignee: nil},
	}

	top := TopAssignees(records, agents, 4)
	require.Len(t, top, 1)
	assert.Equal(t, domain.NameValue{Name: "Dana", Value: 1}, top[0])

	// Same records: the distribution buckets the unresolved ones instead.
	dist := AssigneeDistribution(records, agents)
	require.Len(t, dist, 2)
	assert.Equal(t, domain.NameValue{Name: UnassignedBucket, Value: 2}, dist[0])
}

func TestTopRequestersTruncates(t *testing.T) {
	users := domain.Directory{}
	records := make([]domain.ServiceRecord, 0, 7*3)
	for id := int64(1); id <= 7; id++ {
		users[id] = "User" + string(rune('A'+id-1))
		// id 1 files the most requests, id 7 the fewest.
		for n := int64(0); n <= 7-id; n++ {
			records = append(records, domain.ServiceRecord{RequestUser: idPtr(id)})
		}
	}

	top := TopRequesters(records, users, 5)
	require.Len(t, top, 5)
	assert.Equal(t, "UserA", top[0].Name)
	assert.Equal(t, 7, top[0].Value)
	assert.Equal(t, "UserE", top[4].Name)
	assert.Equal(t, 3, top[4].Value)
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "Very High", PriorityLabel(1))
	assert.Equal(t, "Very Low", PriorityLabel(5))
	assert.Equal(t, "Unknown", PriorityLabel(0))
	assert.Equal(t, "Unknown", PriorityLabel(6))
	assert.Equal(t, "Unknown", PriorityLabel(-1))
}
