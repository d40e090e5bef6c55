package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/servicedesk-proxy/internal/domain"
)

type fakeConnect struct {
	records    []domain.ServiceRecord
	agents     domain.Directory
	users      domain.Directory
	recordsErr error
	agentsErr  error
	usersErr   error

	lastLimit  int
	lastOffset int
}

func (f *fakeConnect) Call(_ context.Context, resourcePath string) (json.RawMessage, error) {
	return json.RawMessage(`{"path":"` + resourcePath + `"}`), nil
}

func (f *fakeConnect) ServiceRecords(_ context.Context, limit, offset int) ([]domain.ServiceRecord, error) {
	f.lastLimit, f.lastOffset = limit, offset
	if f.recordsErr != nil {
		return nil, f.recordsErr
	}
	return f.records, nil
}

func (f *fakeConnect) RawServiceRecords(_ context.Context, limit, offset int) (json.RawMessage, error) {
	f.lastLimit, f.lastOffset = limit, offset
	return json.RawMessage(`[{"id":1}]`), nil
}

func (f *fakeConnect) Agents(_ context.Context) (domain.Directory, error) {
	return f.agents, f.agentsErr
}

func (f *fakeConnect) EndUsers(_ context.Context) (domain.Directory, error) {
	return f.users, f.usersErr
}

func (f *fakeConnect) ActionItems(_ context.Context, id string) (json.RawMessage, int, error) {
	return json.RawMessage(`[{"id":"` + id + `"}]`), 1, nil
}

func idPtr(v int64) *int64 {
	return &v
}

func TestOverviewSummary(t *testing.T) {
	fake := &fakeConnect{
		records: []domain.ServiceRecord{
			{ID: 1, Status: 1, Priority: 2, Assignee: idPtr(10), RequestUser: idPtr(20)},
			{ID: 2, Status: domain.StatusClosed, Priority: 1, Assignee: idPtr(10)},
			{ID: 3, Status: 1, Priority: 3, RequestUser: idPtr(21)},
		},
		agents: domain.Directory{10: "Dana"},
		users:  domain.Directory{20: "Ray", 21: "Kim"},
	}
	svc := NewDashboardService(fake, 100, zap.NewNop())

	result, err := svc.Overview(context.Background(), 0, domain.StatusFilterOpen)
	require.NoError(t, err)

	// Open/closed count the raw page, total counts the filtered one.
	assert.Equal(t, Summary{Total: 2, Open: 2, Closed: 1}, result.Summary)

	total := 0
	for _, bucket := range result.AssigneeDistribution {
		total += bucket.Value
	}
	assert.Equal(t, 2, total)

	require.Len(t, result.TopEndUsers, 2)
	assert.Equal(t, 100, fake.lastLimit)
}

func TestOverviewFailsWhenAnyFetchFails(t *testing.T) {
	fake := &fakeConnect{
		records:   []domain.ServiceRecord{{ID: 1, Status: 1}},
		agentsErr: errors.New("agents unavailable"),
		users:     domain.Directory{},
	}
	svc := NewDashboardService(fake, 100, zap.NewNop())

	_, err := svc.Overview(context.Background(), 50, domain.StatusFilterOpen)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "agents unavailable")
}

func TestWeeklyMetricsFilterAndMeta(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fake := &fakeConnect{
		records: []domain.ServiceRecord{
			{ID: 1, Status: 1, InsertTime: now.Add(-24 * time.Hour).UnixMilli(), UpdateTime: now.Add(-time.Hour).UnixMilli()},
			{ID: 2, Status: domain.StatusClosed, InsertTime: now.Add(-24 * time.Hour).UnixMilli(), UpdateTime: now.Add(-time.Hour).UnixMilli()},
		},
	}
	svc := NewDashboardService(fake, 100, zap.NewNop())
	svc.nowFn = func() time.Time { return now }

	result, err := svc.WeeklyMetrics(context.Background(), domain.StatusFilterOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFilterOpen, result.Status)
	assert.Equal(t, now, result.GeneratedAt)
	assert.Equal(t, 1, result.Report.CurrentWeekCount)
	assert.InDelta(t, 1.0, result.Report.MTTR.Value, 0.001)
}

func TestActiveHealthUsesPageLimit(t *testing.T) {
	now := time.Now()
	fake := &fakeConnect{
		records: []domain.ServiceRecord{
			{ID: 1, Status: 1, InsertTime: now.Add(-time.Hour).UnixMilli()},
		},
	}
	svc := NewDashboardService(fake, 250, zap.NewNop())

	health, err := svc.ActiveHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, health.TotalActive)
	assert.Equal(t, 250, fake.lastLimit)
}

func TestListRecordsDefaults(t *testing.T) {
	fake := &fakeConnect{}
	svc := NewDashboardService(fake, 100, zap.NewNop())

	raw, err := svc.ListRecords(context.Background(), 0, -5)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(raw))
	assert.Equal(t, 100, fake.lastLimit)
	assert.Equal(t, 0, fake.lastOffset)
}

func TestPassthrough(t *testing.T) {
	fake := &fakeConnect{}
	svc := NewDashboardService(fake, 100, zap.NewNop())

	raw, err := svc.Passthrough(context.Background(), "/ci/list?limit=5")
	require.NoError(t, err)
	assert.JSONEq(t, `{"path":"/ci/list?limit=5"}`, string(raw))
}
