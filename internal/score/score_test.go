package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
)

func TestEngine_Score(t *testing.T) {
	tests := []struct {
		name    string
		metrics collector.Metrics
		want    int
	}{
		{"zero pressure", collector.Metrics{}, 100},
		{"all maximum pressure", collector.Metrics{MemoryPercent: 95, CPULoad: 6.5, DiskPercent: 97}, 25},
		{"memory above 75", collector.Metrics{MemoryPercent: 80}, 85},
		{"memory exactly 75", collector.Metrics{MemoryPercent: 75}, 95},
		{"memory above 60", collector.Metrics{MemoryPercent: 61}, 95},
		{"memory exactly 60", collector.Metrics{MemoryPercent: 60}, 100},
		{"load above 2", collector.Metrics{CPULoad: 2.01}, 90},
		{"load exactly 5", collector.Metrics{CPULoad: 5.0}, 90},
		{"load above 5", collector.Metrics{CPULoad: 5.01}, 75},
		{"disk above 80", collector.Metrics{DiskPercent: 81}, 90},
		{"disk above 90", collector.Metrics{DiskPercent: 91}, 80},
		{"penalties add up", collector.Metrics{MemoryPercent: 76, CPULoad: 3, DiskPercent: 85}, 65},
	}

	engine := NewEngine(Detailed)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Score(tt.metrics)
			assert.Equal(t, tt.want, got.Score)
		})
	}
}

func TestEngine_ZeroPressureIsHealthy(t *testing.T) {
	r := NewEngine(Detailed).Score(collector.Metrics{})
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, BandHealthy, r.Band)
	assert.False(t, r.Recommendation.Recommended)
	assert.Equal(t, "System Healthy", r.Recommendation.Text)
	assert.Equal(t, "success", r.Recommendation.Color)
	assert.Empty(t, r.Penalties)
}

func TestEngine_ReportsFiredPenalties(t *testing.T) {
	r := NewEngine(Detailed).Score(collector.Metrics{MemoryPercent: 95, DiskPercent: 85})
	require.Len(t, r.Penalties, 2)
	assert.Equal(t, Penalty{Metric: MetricMemory, Value: 95, Above: 90, Points: 30}, r.Penalties[0])
	assert.Equal(t, Penalty{Metric: MetricDisk, Value: 85, Above: 80, Points: 10}, r.Penalties[1])
}

func TestEngine_ClampsAtZero(t *testing.T) {
	harsh := PenaltyTable{
		Name: "harsh",
		Rules: []Rule{
			{Metric: MetricMemory, Thresholds: []Threshold{{0, 80}}},
			{Metric: MetricDisk, Thresholds: []Threshold{{0, 80}}},
		},
	}
	r := NewEngine(harsh).Score(collector.Metrics{MemoryPercent: 50, DiskPercent: 50})
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, BandCritical, r.Band)
}

func TestEngine_SimplifiedTable(t *testing.T) {
	engine := NewEngine(Simplified)
	assert.Equal(t, 80, engine.Score(collector.Metrics{CPULoad: 4.5}).Score)
	assert.Equal(t, 80, engine.Score(collector.Metrics{CPULoad: 9}).Score)
	assert.Equal(t, 100, engine.Score(collector.Metrics{CPULoad: 3}).Score)
	assert.Equal(t, 90, engine.Score(collector.Metrics{MemoryPercent: 72}).Score)
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{0, BandCritical},
		{59, BandCritical},
		{60, BandDegraded},
		{84, BandDegraded},
		{85, BandHealthy},
		{100, BandHealthy},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.score), "score %d", tt.score)
	}
}

func TestBand_Color(t *testing.T) {
	assert.Equal(t, "danger", BandCritical.Color())
	assert.Equal(t, "warning", BandDegraded.Color())
	assert.Equal(t, "success", BandHealthy.Color())
}

func TestRecommendationFor(t *testing.T) {
	r := RecommendationFor(89)
	assert.True(t, r.Recommended)
	assert.Equal(t, "Optimization Recommended", r.Text)
	assert.Equal(t, "warning", r.Color)

	r = RecommendationFor(90)
	assert.False(t, r.Recommended)
	assert.Equal(t, "success", r.Color)

	// Band and recommendation thresholds differ: 87 is healthy yet still
	// gets a recommendation.
	assert.Equal(t, BandHealthy, BandFor(87))
	assert.True(t, RecommendationFor(87).Recommended)
}

func TestTableByName(t *testing.T) {
	tbl, err := TableByName("")
	require.NoError(t, err)
	assert.Equal(t, Detailed.Name, tbl.Name)

	tbl, err = TableByName("simplified")
	require.NoError(t, err)
	assert.Equal(t, Simplified.Name, tbl.Name)

	_, err = TableByName("strict")
	assert.Error(t, err)
}
