package domain

// Trend classifies a recent window of values against the window before it.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Streak counts consecutive goal-met days.
type Streak struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Score is a 0-100 rating with a qualitative label.
type Score struct {
	Value float64 `json:"score"`
	Label string  `json:"label"`
}

// Insights is the derived, never-persisted summary for one domain. Domain
// specific sub-metrics go in Highlights.
type Insights struct {
	Domain           Domain             `json:"domain"`
	From             string             `json:"from"`
	To               string             `json:"to"`
	AverageValue     float64            `json:"averageValue"`
	AverageScore     float64            `json:"averageScore"`
	Today            Score              `json:"today"`
	GoalProgress     float64            `json:"goalProgress"`
	ConsistencyScore float64            `json:"consistencyScore"`
	Trend            Trend              `json:"trend"`
	Streak           Streak             `json:"streak"`
	Highlights       map[string]float64 `json:"highlights"`
	Recommendations  []string           `json:"recommendations"`
}
