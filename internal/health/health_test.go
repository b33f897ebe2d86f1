package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
	"github.com/janyksteenbeek/hostcheckr/internal/score"
)

type stubCollector struct {
	metrics *collector.Metrics
	calls   int
}

func (s *stubCollector) Collect(ctx context.Context) *collector.Metrics {
	s.calls++
	return s.metrics
}

func TestChecker_GetMetrics(t *testing.T) {
	stub := &stubCollector{metrics: &collector.Metrics{
		CPULoad:          6.1,
		MemoryPercent:    92,
		DiskPercent:      50,
		AuxServiceActive: true,
		Details:          map[string]any{collector.DetailMemoryTotalMB: 4096},
		CollectedAt:      "2026-01-02T03:04:05Z",
	}}
	c := NewChecker(stub, score.NewEngine(score.Detailed), nil)

	snap := c.GetMetrics(context.Background())

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, 45, snap.Score)
	assert.Equal(t, score.BandCritical, snap.Band)
	assert.True(t, snap.Recommendation)
	assert.Equal(t, "Optimization Recommended", snap.RecommendationText)
	assert.Equal(t, "warning", snap.RecommendationColor)
	assert.Equal(t, 6.1, snap.CPULoad)
	assert.Equal(t, 92, snap.MemoryPercent)
	assert.True(t, snap.AuxServiceActive)
	assert.Equal(t, 4096, snap.Details[collector.DetailMemoryTotalMB])
	assert.Equal(t, "2026-01-02T03:04:05Z", snap.CollectedAt)
	assert.Len(t, snap.Penalties, 2)
}

func TestChecker_EverySourceFailed(t *testing.T) {
	stub := &stubCollector{metrics: &collector.Metrics{
		Details: map[string]any{collector.DetailErrorMemory: "Memory stats unavailable (Not Linux)"},
	}}
	snap := NewChecker(stub, score.NewEngine(score.Detailed), nil).GetMetrics(context.Background())

	assert.Equal(t, 100, snap.Score)
	assert.Equal(t, score.BandHealthy, snap.Band)
	assert.False(t, snap.Recommendation)
	assert.Contains(t, snap.Details, collector.DetailErrorMemory)
}

func TestChecker_NilMetrics(t *testing.T) {
	snap := NewChecker(&stubCollector{}, score.NewEngine(score.Detailed), nil).GetMetrics(context.Background())

	assert.Equal(t, 100, snap.Score)
	require.NotNil(t, snap.Details)
}

func TestNewSnapshot_CopiesDetails(t *testing.T) {
	m := collector.Metrics{Details: map[string]any{"k": 1}}
	snap := NewSnapshot(m, score.NewEngine(score.Detailed).Score(m))

	m.Details["k"] = 2
	assert.Equal(t, 1, snap.Details["k"])
}
