package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/servicedesk-proxy/internal/analytics"
	"github.com/spec-kit/servicedesk-proxy/internal/domain"
)

const (
	topAdministratorsCount = 4
	topEndUsersCount       = 5
)

// ConnectClient is the slice of the upstream client the dashboard needs.
type ConnectClient interface {
	Call(ctx context.Context, resourcePath string) (json.RawMessage, error)
	ServiceRecords(ctx context.Context, limit, offset int) ([]domain.ServiceRecord, error)
	RawServiceRecords(ctx context.Context, limit, offset int) (json.RawMessage, error)
	Agents(ctx context.Context) (domain.Directory, error)
	EndUsers(ctx context.Context) (domain.Directory, error)
	ActionItems(ctx context.Context, id string) (json.RawMessage, int, error)
}

// DashboardService fetches upstream snapshots and reduces them into
// dashboard aggregates. It holds no per-request state; directories are
// rebuilt on every call.
type DashboardService struct {
	upstream  ConnectClient
	pageLimit int
	nowFn     func() time.Time
	logger    *zap.Logger
}

// NewDashboardService constructs the service. pageLimit bounds the single
// page fetched when an endpoint takes no explicit limit.
func NewDashboardService(upstream ConnectClient, pageLimit int, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &DashboardService{
		upstream:  upstream,
		pageLimit: pageLimit,
		nowFn:     time.Now,
		logger:    logger,
	}
}

// Summary counts the fetched snapshot: open/closed over the unfiltered set,
// total over the filtered one.
type Summary struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// OverviewResult is the reduced analytics snapshot for the dashboard.
type OverviewResult struct {
	AssigneeDistribution []domain.NameValue
	PriorityDistribution []domain.NameValue
	TopAdministrators    []domain.NameValue
	TopEndUsers          []domain.NameValue
	Summary              Summary
}

// WeeklyResult is the weekly trend report plus the filter it was computed under.
type WeeklyResult struct {
	Report      analytics.WeeklyReport
	Status      domain.StatusFilter
	GeneratedAt time.Time
}

type snapshot struct {
	records []domain.ServiceRecord
	agents  domain.Directory
	users   domain.Directory
}

// fetchSnapshot pulls records, agents and end users concurrently. Any single
// failure fails the whole fetch; there are no partial results.
func (s *DashboardService) fetchSnapshot(ctx context.Context, limit int) (snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := s.upstream.ServiceRecords(ctx, limit, 0)
		if err != nil {
			return err
		}
		snap.records = records
		return nil
	})
	g.Go(func() error {
		agents, err := s.upstream.Agents(ctx)
		if err != nil {
			return err
		}
		snap.agents = agents
		return nil
	})
	g.Go(func() error {
		users, err := s.upstream.EndUsers(ctx)
		if err != nil {
			return err
		}
		snap.users = users
		return nil
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// Overview fetches one page of records plus both directories and reduces
// them into distributions, rankings and a count summary.
func (s *DashboardService) Overview(ctx context.Context, limit int, filter domain.StatusFilter) (*OverviewResult, error) {
	if limit <= 0 {
		limit = s.pageLimit
	}
	snap, err := s.fetchSnapshot(ctx, limit)
	if err != nil {
		return nil, err
	}

	var open, closed int
	for _, r := range snap.records {
		if r.Closed() {
			closed++
		} else {
			open++
		}
	}

	filtered := analytics.FilterByStatus(snap.records, filter)
	return &OverviewResult{
		AssigneeDistribution: analytics.AssigneeDistribution(filtered, snap.agents),
		PriorityDistribution: analytics.PriorityDistribution(filtered),
		TopAdministrators:    analytics.TopAssignees(filtered, snap.agents, topAdministratorsCount),
		TopEndUsers:          analytics.TopRequesters(filtered, snap.users, topEndUsersCount),
		Summary: Summary{
			Total:  len(filtered),
			Open:   open,
			Closed: closed,
		},
	}, nil
}

// WeeklyMetrics computes the weekly trend report over a status-filtered page
// of records.
func (s *DashboardService) WeeklyMetrics(ctx context.Context, filter domain.StatusFilter) (*WeeklyResult, error) {
	records, err := s.upstream.ServiceRecords(ctx, s.pageLimit, 0)
	if err != nil {
		return nil, err
	}
	now := s.nowFn()
	filtered := analytics.FilterByStatus(records, filter)
	return &WeeklyResult{
		Report:      analytics.WeeklyTrend(filtered, now),
		Status:      filter,
		GeneratedAt: now,
	}, nil
}

// ActiveHealth snapshots the non-closed backlog.
func (s *DashboardService) ActiveHealth(ctx context.Context) (domain.ActiveHealth, error) {
	records, err := s.upstream.ServiceRecords(ctx, s.pageLimit, 0)
	if err != nil {
		return domain.ActiveHealth{}, err
	}
	return analytics.ActiveSnapshot(records, s.nowFn()), nil
}

// ListRecords passes one raw page of tickets through unmodified.
func (s *DashboardService) ListRecords(ctx context.Context, limit, offset int) (json.RawMessage, error) {
	if limit <= 0 {
		limit = s.pageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.upstream.RawServiceRecords(ctx, limit, offset)
}

// ActionItems returns one record's action items plus their count.
func (s *DashboardService) ActionItems(ctx context.Context, id string) (json.RawMessage, int, error) {
	return s.upstream.ActionItems(ctx, id)
}

// Passthrough forwards an arbitrary Connect sub-path and returns the raw body.
func (s *DashboardService) Passthrough(ctx context.Context, subPath string) (json.RawMessage, error) {
	return s.upstream.Call(ctx, subPath)
}
