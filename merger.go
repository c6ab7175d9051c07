package deepresearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/qmerge/deepresearch/agent"
)

const mergerSystem = `You are a research editor. Given a research question and a set of
investigated findings, write a final report with:
- an executive summary,
- one section per finding with its key insights,
- a numbered reference list built from the findings' sources.
Cite sources by reference number where they support a claim.`

// Merger combines all findings into one final narrative report.
type Merger struct {
	agent *agent.Agent
}

// NewMerger builds a merger on top of the given backend.
func NewMerger(backend agent.Backend) *Merger {
	return &Merger{agent: agent.New(backend, mergerSystem, nil)}
}

// Synthesize asks the model for the final report and returns its text
// verbatim; report structure is entirely delegated to the instruction.
func (m *Merger) Synthesize(ctx context.Context, question string, findings []Finding) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Research question: %s\n\nFindings:\n", question)
	for i, f := range findings {
		sources := "none"
		if len(f.Sources) > 0 {
			sources = strings.Join(f.Sources, ", ")
		}
		fmt.Fprintf(&b, "\n%d. Sub-question: %s\n   Summary: %s\n   Sources: %s\n",
			i+1, f.SubQuestion, f.Summary, sources)
	}

	report, err := m.agent.Run(ctx, b.String(), nil)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}
	return report, nil
}
