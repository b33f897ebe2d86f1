// Package health combines the collector and the score engine into a single
// read-only host check.
package health

import (
	"context"
	"log/slog"
	"maps"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
	"github.com/janyksteenbeek/hostcheckr/internal/config"
	"github.com/janyksteenbeek/hostcheckr/internal/score"
)

// Snapshot is one scored reading of the host.
type Snapshot struct {
	CPULoad             float64         `json:"cpu_load"`
	MemoryPercent       int             `json:"memory_percent"`
	DiskPercent         int             `json:"disk_percent"`
	AuxServiceActive    bool            `json:"auxiliary_service_active"`
	Score               int             `json:"score"`
	Band                score.Band      `json:"band"`
	Recommendation      bool            `json:"recommendation"`
	RecommendationText  string          `json:"recommendation_text"`
	RecommendationColor string          `json:"recommendation_color"`
	Penalties           []score.Penalty `json:"penalties,omitempty"`
	Details             map[string]any  `json:"details"`
	CollectedAt         string          `json:"collected_at"`
}

// NewSnapshot builds a snapshot from collected metrics and their score.
func NewSnapshot(m collector.Metrics, r score.Result) Snapshot {
	details := make(map[string]any, len(m.Details))
	maps.Copy(details, m.Details)

	return Snapshot{
		CPULoad:             m.CPULoad,
		MemoryPercent:       m.MemoryPercent,
		DiskPercent:         m.DiskPercent,
		AuxServiceActive:    m.AuxServiceActive,
		Score:               r.Score,
		Band:                r.Band,
		Recommendation:      r.Recommendation.Recommended,
		RecommendationText:  r.Recommendation.Text,
		RecommendationColor: r.Recommendation.Color,
		Penalties:           r.Penalties,
		Details:             details,
		CollectedAt:         m.CollectedAt,
	}
}

// MetricsCollector is satisfied by *collector.Collector.
type MetricsCollector interface {
	Collect(ctx context.Context) *collector.Metrics
}

type Checker struct {
	collector MetricsCollector
	engine    *score.Engine
	log       *slog.Logger
}

func NewChecker(c MetricsCollector, engine *score.Engine, log *slog.Logger) *Checker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Checker{
		collector: c,
		engine:    engine,
		log:       log.With("component", "health"),
	}
}

// GetMetrics collects and scores the host. It has no side effects besides
// spawning the liveness probe.
func (c *Checker) GetMetrics(ctx context.Context) Snapshot {
	ctx, cancel := context.WithTimeout(ctx, config.CollectionTimeout)
	defer cancel()

	m := c.collector.Collect(ctx)
	if m == nil {
		m = &collector.Metrics{}
	}
	r := c.engine.Score(*m)

	c.log.Debug("host scored",
		"score", r.Score,
		"band", r.Band,
		"memory_percent", m.MemoryPercent,
		"cpu_load", m.CPULoad,
		"disk_percent", m.DiskPercent,
		"aux_service_active", m.AuxServiceActive,
		"table", c.engine.Table().Name)

	return NewSnapshot(*m, r)
}
