package domain

// StatusFilter selects which lifecycle slice of records an endpoint works on.
type StatusFilter string

const (
	StatusFilterAll    StatusFilter = "all"
	StatusFilterOpen   StatusFilter = "open"
	StatusFilterClosed StatusFilter = "closed"
)

// NameValue is one bucket of a distribution or ranking.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TrendMetric compares the current week against the previous one.
type TrendMetric struct {
	Value         float64 `json:"value"`
	PreviousValue float64 `json:"previousValue"`
	ChangePercent float64 `json:"changePercent"`
	Benchmark     float64 `json:"benchmark"`
}

// ActiveHealth summarizes the non-closed backlog. Percentages are raw,
// display-side rounding is left to the client.
type ActiveHealth struct {
	TotalActive       int     `json:"totalActive"`
	OverduePercent    float64 `json:"overduePercent"`
	OpenMoreThan5Days float64 `json:"openMoreThan5Days"`
	NoDueDate         float64 `json:"noDueDate"`
}
