// Package score turns a metrics reading into the optimization score, its
// status band and the optimization recommendation.
package score

import "github.com/janyksteenbeek/hostcheckr/internal/collector"

const (
	MaxScore = 100

	// RecommendBelow is the score under which optimization is recommended.
	// It is deliberately separate from the band thresholds.
	RecommendBelow = 90

	CriticalBelow = 60
	HealthyFrom   = 85
)

// Band is the coarse status derived from a score.
type Band string

const (
	BandCritical Band = "critical"
	BandDegraded Band = "degraded"
	BandHealthy  Band = "healthy"
)

// BandFor maps a score to its band.
func BandFor(score int) Band {
	switch {
	case score < CriticalBelow:
		return BandCritical
	case score < HealthyFrom:
		return BandDegraded
	default:
		return BandHealthy
	}
}

// Color returns the severity tag dashboards use for the band.
func (b Band) Color() string {
	switch b {
	case BandCritical:
		return "danger"
	case BandDegraded:
		return "warning"
	default:
		return "success"
	}
}

type Recommendation struct {
	Recommended bool   `json:"recommendation"`
	Text        string `json:"recommendation_text"`
	Color       string `json:"recommendation_color"`
}

func RecommendationFor(score int) Recommendation {
	if score < RecommendBelow {
		return Recommendation{Recommended: true, Text: "Optimization Recommended", Color: "warning"}
	}
	return Recommendation{Recommended: false, Text: "System Healthy", Color: "success"}
}

// Penalty records a rule that fired.
type Penalty struct {
	Metric Metric  `json:"metric"`
	Value  float64 `json:"value"`
	Above  float64 `json:"above"`
	Points int     `json:"points"`
}

type Result struct {
	Score          int
	Band           Band
	Recommendation Recommendation
	Penalties      []Penalty
}

// Engine scores metrics against a fixed penalty table. It holds no state
// besides the table and is safe for concurrent use.
type Engine struct {
	table PenaltyTable
}

func NewEngine(table PenaltyTable) *Engine {
	return &Engine{table: table}
}

func (e *Engine) Table() PenaltyTable { return e.table }

// Score computes the result for m.
func (e *Engine) Score(m collector.Metrics) Result {
	total := MaxScore
	var penalties []Penalty

	for _, rule := range e.table.Rules {
		v := rule.Metric.value(m)
		for _, th := range rule.Thresholds {
			if v > th.Above {
				total -= th.Penalty
				penalties = append(penalties, Penalty{
					Metric: rule.Metric,
					Value:  v,
					Above:  th.Above,
					Points: th.Penalty,
				})
				break
			}
		}
	}

	total = clamp(total)
	return Result{
		Score:          total,
		Band:           BandFor(total),
		Recommendation: RecommendationFor(total),
		Penalties:      penalties,
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
