// Package remediation runs the host cleanup sequence and re-scores the host
// afterwards.
package remediation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/janyksteenbeek/hostcheckr/internal/collector"
	"github.com/janyksteenbeek/hostcheckr/internal/health"
	"github.com/janyksteenbeek/hostcheckr/internal/score"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	MessageExecuted   = "Optimization steps executed."
	MessageFullClean  = "System, Database, PHP, and Redis optimized."
	MessagePartial    = "Optimization ran (Root needed for full clean)."
	MessageUnexpected = "Optimization failed: unexpected error"
)

// Checker is satisfied by *health.Checker.
type Checker interface {
	GetMetrics(ctx context.Context) health.Snapshot
}

type Result struct {
	RunID       string          `json:"run_id"`
	Status      Status          `json:"status"`
	Message     string          `json:"message"`
	ScoreBefore int             `json:"score_before"`
	ScoreAfter  int             `json:"new_score"`
	Band        score.Band      `json:"band"`
	StatusColor string          `json:"status_color"`
	Steps       []StepResult    `json:"steps"`
	Metrics     health.Snapshot `json:"metrics"`
	StartedAt   time.Time       `json:"started_at"`
	FinishedAt  time.Time       `json:"finished_at"`
}

type Orchestrator struct {
	checker Checker
	steps   []Step
	log     *slog.Logger
}

// New creates an orchestrator running steps in order. A nil steps slice
// selects DefaultSteps with the real command runner.
func New(checker Checker, steps []Step, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if steps == nil {
		steps = DefaultSteps(nil)
	}
	return &Orchestrator{
		checker: checker,
		steps:   steps,
		log:     log.With("component", "remediation"),
	}
}

// Remediate scores the host, runs every step regardless of earlier
// failures, then scores the host again. It always returns a result.
func (o *Orchestrator) Remediate(ctx context.Context) (res Result) {
	res = Result{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := o.log.With("run_id", res.RunID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("remediation aborted", "panic", fmt.Sprint(r))
			res.Status = StatusError
			res.Message = MessageUnexpected
			if res.Metrics.Details == nil {
				res.Metrics = fallbackSnapshot()
			}
			res.ScoreAfter = res.Metrics.Score
			res.Band = res.Metrics.Band
			res.StatusColor = res.Band.Color()
			res.FinishedAt = time.Now().UTC()
		}
	}()

	before := o.checker.GetMetrics(ctx)
	res.ScoreBefore = before.Score
	res.Metrics = before
	log.Info("remediation started", "score", before.Score, "band", before.Band, "steps", len(o.steps))

	res.Steps = make([]StepResult, 0, len(o.steps))
	for _, step := range o.steps {
		sr := step.Execute(ctx)
		res.Steps = append(res.Steps, sr)
		log.Debug("remediation step finished",
			"step", sr.Name,
			"outcome", sr.Outcome,
			"duration", sr.Duration,
			"error", sr.Error)
	}

	after := o.checker.GetMetrics(ctx)
	res.Status = StatusSuccess
	res.Message = summarize(res.Steps)
	res.ScoreAfter = after.Score
	res.Band = after.Band
	res.StatusColor = after.Band.Color()
	res.Metrics = after
	res.FinishedAt = time.Now().UTC()

	log.Info("remediation finished",
		"score_before", res.ScoreBefore,
		"score_after", res.ScoreAfter,
		"band", res.Band,
		"message", res.Message)
	return res
}

// summarize picks the user-facing message. Only the cache drop step, which
// needs root, changes it.
func summarize(steps []StepResult) string {
	for _, s := range steps {
		if s.Name != StepDropCaches {
			continue
		}
		switch s.Outcome {
		case OutcomeOK:
			return MessageFullClean
		case OutcomePermissionDenied:
			return MessagePartial
		}
	}
	return MessageExecuted
}

// fallbackSnapshot is the zero-pressure reading used when no check could run.
func fallbackSnapshot() health.Snapshot {
	m := collector.Metrics{Details: map[string]any{}}
	return health.NewSnapshot(m, score.NewEngine(score.Detailed).Score(m))
}
