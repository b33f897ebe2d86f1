package score

import (
	"fmt"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
)

// Metric identifies which reading a rule applies to.
type Metric string

const (
	MetricMemory Metric = "memory"
	MetricLoad   Metric = "load"
	MetricDisk   Metric = "disk"
)

func (m Metric) value(metrics collector.Metrics) float64 {
	switch m {
	case MetricMemory:
		return float64(metrics.MemoryPercent)
	case MetricLoad:
		return metrics.CPULoad
	case MetricDisk:
		return float64(metrics.DiskPercent)
	}
	return 0
}

// Threshold deducts Penalty points once the metric exceeds Above.
type Threshold struct {
	Above   float64
	Penalty int
}

// Rule lists the thresholds of one metric from highest to lowest. Only the
// first threshold exceeded applies.
type Rule struct {
	Metric     Metric
	Thresholds []Threshold
}

// PenaltyTable is the full set of rules a score is computed from.
type PenaltyTable struct {
	Name  string
	Rules []Rule
}

// Detailed is the canonical table.
var Detailed = PenaltyTable{
	Name: "detailed",
	Rules: []Rule{
		{Metric: MetricMemory, Thresholds: []Threshold{{90, 30}, {75, 15}, {60, 5}}},
		{Metric: MetricLoad, Thresholds: []Threshold{{5.0, 25}, {2.0, 10}}},
		{Metric: MetricDisk, Thresholds: []Threshold{{90, 20}, {80, 10}}},
	},
}

// Simplified uses lower memory and a single load breakpoint.
var Simplified = PenaltyTable{
	Name: "simplified",
	Rules: []Rule{
		{Metric: MetricMemory, Thresholds: []Threshold{{90, 30}, {70, 10}, {60, 5}}},
		{Metric: MetricLoad, Thresholds: []Threshold{{4.0, 20}}},
		{Metric: MetricDisk, Thresholds: []Threshold{{90, 20}, {80, 10}}},
	},
}

// TableByName resolves a table name from configuration.
func TableByName(name string) (PenaltyTable, error) {
	switch name {
	case "", Detailed.Name:
		return Detailed, nil
	case Simplified.Name:
		return Simplified, nil
	}
	return PenaltyTable{}, fmt.Errorf("unknown penalty table %q", name)
}
