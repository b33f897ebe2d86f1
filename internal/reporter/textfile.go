package reporter

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/janyksteenbeek/hostcheckr/internal/health"
	"github.com/janyksteenbeek/hostcheckr/internal/remediation"
	"github.com/janyksteenbeek/hostcheckr/internal/score"
)

var bands = []score.Band{score.BandCritical, score.BandDegraded, score.BandHealthy}

// WriteTextfile exports snap, and res when non-nil, in the node_exporter
// textfile collector format. The file is replaced atomically.
func WriteTextfile(path string, snap health.Snapshot, res *remediation.Result) error {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	factory.NewGauge(prometheus.GaugeOpts{
		Name: "hostcheckr_optimization_score",
		Help: "Host optimization score (0-100)",
	}).Set(float64(snap.Score))

	bandGauge := factory.NewGaugeVec(prometheus.GaugeOpts{
		Name: "hostcheckr_band",
		Help: "1 for the current status band, 0 otherwise",
	}, []string{"band"})
	for _, b := range bands {
		v := 0.0
		if b == snap.Band {
			v = 1
		}
		bandGauge.WithLabelValues(string(b)).Set(v)
	}

	factory.NewGauge(prometheus.GaugeOpts{
		Name: "hostcheckr_cpu_load1",
		Help: "1-minute load average",
	}).Set(snap.CPULoad)
	factory.NewGauge(prometheus.GaugeOpts{
		Name: "hostcheckr_memory_used_percent",
		Help: "Memory in use, percent of total",
	}).Set(float64(snap.MemoryPercent))
	factory.NewGauge(prometheus.GaugeOpts{
		Name: "hostcheckr_disk_used_percent",
		Help: "Root filesystem in use, percent of capacity",
	}).Set(float64(snap.DiskPercent))

	aux := 0.0
	if snap.AuxServiceActive {
		aux = 1
	}
	factory.NewGauge(prometheus.GaugeOpts{
		Name: "hostcheckr_auxiliary_service_up",
		Help: "Whether the auxiliary cache service process is running",
	}).Set(aux)

	if res != nil {
		factory.NewGauge(prometheus.GaugeOpts{
			Name: "hostcheckr_remediation_score_before",
			Help: "Optimization score before the last remediation run",
		}).Set(float64(res.ScoreBefore))
		factory.NewGauge(prometheus.GaugeOpts{
			Name: "hostcheckr_remediation_finished_timestamp_seconds",
			Help: "Unix time the last remediation run finished",
		}).Set(float64(res.FinishedAt.Unix()))

		steps := factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hostcheckr_remediation_step_outcome",
			Help: "Outcome of each remediation step in the last run",
		}, []string{"step", "outcome"})
		for _, s := range res.Steps {
			steps.WithLabelValues(s.Name, string(s.Outcome)).Set(1)
		}
	}

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("failed to write textfile %s: %w", path, err)
	}
	return nil
}
