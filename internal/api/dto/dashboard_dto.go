package dto

import (
	"time"

	"github.com/spec-kit/servicedesk-proxy/internal/domain"
	"github.com/spec-kit/servicedesk-proxy/internal/service"
)

// HealthResponse reports liveness plus token cache state.
type HealthResponse struct {
	Status      string `json:"status"`
	TokenCached bool   `json:"tokenCached"`
}

// OverviewData is the analytics overview payload.
type OverviewData struct {
	AssigneeDistribution []domain.NameValue `json:"assigneeDistribution"`
	PriorityDistribution []domain.NameValue `json:"priorityDistribution"`
	TopAdministrators    []domain.NameValue `json:"topAdministrators"`
	TopEndUsers          []domain.NameValue `json:"topEndUsers"`
	Summary              service.Summary    `json:"summary"`
}

// WeeklyMeta describes how a weekly report was computed.
type WeeklyMeta struct {
	Status            domain.StatusFilter `json:"status"`
	CurrentWeekCount  int                 `json:"currentWeekCount"`
	PreviousWeekCount int                 `json:"previousWeekCount"`
	GeneratedAt       time.Time           `json:"generatedAt"`
}

// WeeklyData is the weekly metrics payload.
type WeeklyData struct {
	MTTR          domain.TrendMetric `json:"mttr"`
	Satisfaction  domain.TrendMetric `json:"satisfaction"`
	SLABreachRate domain.TrendMetric `json:"slaBreachRate"`
	IncidentRatio domain.TrendMetric `json:"incidentRatio"`
	Meta          WeeklyMeta         `json:"meta"`
}

// FromOverview maps the service result onto the wire shape.
func FromOverview(result *service.OverviewResult) OverviewData {
	return OverviewData{
		AssigneeDistribution: result.AssigneeDistribution,
		PriorityDistribution: result.PriorityDistribution,
		TopAdministrators:    result.TopAdministrators,
		TopEndUsers:          result.TopEndUsers,
		Summary:              result.Summary,
	}
}

// FromWeekly maps the service result onto the wire shape.
func FromWeekly(result *service.WeeklyResult) WeeklyData {
	return WeeklyData{
		MTTR:          result.Report.MTTR,
		Satisfaction:  result.Report.Satisfaction,
		SLABreachRate: result.Report.SLABreachRate,
		IncidentRatio: result.Report.IncidentRatio,
		Meta: WeeklyMeta{
			Status:            result.Status,
			CurrentWeekCount:  result.Report.CurrentWeekCount,
			PreviousWeekCount: result.Report.PreviousWeekCount,
			GeneratedAt:       result.GeneratedAt,
		},
	}
}
