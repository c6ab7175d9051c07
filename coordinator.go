package deepresearch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qmerge/deepresearch/agent"
	"github.com/qmerge/deepresearch/memory"
)

// Memory store keys written by the coordinator.
const (
	KeySubQuestions = "sub_questions"
	KeyFindings     = "findings"
	KeyReport       = "report"
)

// FindingKey returns the store key for the i-th finding (1-indexed).
func FindingKey(i int) string {
	return fmt.Sprintf("finding_%d", i)
}

const defaultMaxSubQuestions = 5

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithMaxSubQuestions caps how many sub-questions are investigated per run.
// Values below one are ignored.
func WithMaxSubQuestions(n int) Option {
	return func(c *Coordinator) {
		if n >= 1 {
			c.maxSubQuestions = n
		}
	}
}

// WithLogger attaches a logger (no-op by default).
func WithLogger(log zerolog.Logger) Option {
	return func(c *Coordinator) { c.log = log }
}

// Coordinator sequences the pipeline: decompose once, investigate each
// sub-question in order, synthesize once. It is the sole writer to the
// run's memory store.
type Coordinator struct {
	backend         agent.Backend
	search          SearchFunc
	maxSubQuestions int
	store           *memory.Store
	log             zerolog.Logger
}

// NewCoordinator builds a coordinator sharing backend and search across all
// sub-agents of a run.
func NewCoordinator(backend agent.Backend, search SearchFunc, opts ...Option) *Coordinator {
	c := &Coordinator{
		backend:         backend,
		search:          search,
		maxSubQuestions: defaultMaxSubQuestions,
		store:           memory.NewStore(),
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Memory exposes the run's store for inspection. After a failed run it holds
// the output of every stage that completed before the failure.
func (c *Coordinator) Memory() *memory.Store {
	return c.store
}

// Run executes one full pipeline for question and returns the report. Each
// stage's output is stored before the next stage starts. Backend and search
// failures are not caught here; they abort the run in whatever state they
// occurred. Calling Run again restarts from scratch, clearing the store.
func (c *Coordinator) Run(ctx context.Context, question string) (string, error) {
	c.store.Clear()
	c.log.Info().Str("question", question).Msg("planning")

	subQuestions, err := NewDecomposer(c.backend).Decompose(ctx, question)
	if err != nil {
		return "", fmt.Errorf("decompose: %w", err)
	}
	if len(subQuestions) > c.maxSubQuestions {
		subQuestions = subQuestions[:c.maxSubQuestions]
	}
	c.store.Store(KeySubQuestions, subQuestions)
	c.log.Info().Int("count", len(subQuestions)).Msg("sub-questions planned")

	findings := make([]Finding, 0, len(subQuestions))
	for i, sq := range subQuestions {
		c.log.Info().Int("index", i+1).Str("sub_question", sq).Msg("researching")
		finding, err := NewInvestigator(c.backend, c.search).Research(ctx, sq)
		if err != nil {
			return "", err
		}
		c.store.Store(FindingKey(i+1), finding)
		findings = append(findings, finding)
	}
	c.store.Store(KeyFindings, findings)

	c.log.Info().Msg("synthesizing")
	report, err := NewMerger(c.backend).Synthesize(ctx, question, findings)
	if err != nil {
		return "", err
	}
	c.store.Store(KeyReport, report)
	c.log.Info().Int("report_chars", len(report)).Msg("done")
	return report, nil
}
