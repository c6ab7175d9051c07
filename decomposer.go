package deepresearch

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/qmerge/deepresearch/agent"
)

const decomposerSystem = `You are a research planner. Given a broad research question,
break it into 3 to 6 focused sub-questions that together cover the topic.
Return ONLY a JSON array of strings, with no commentary and no code fences.`

// Decomposer turns one research question into an ordered list of focused
// sub-questions.
type Decomposer struct {
	agent *agent.Agent
}

// NewDecomposer builds a decomposer on top of the given backend.
func NewDecomposer(backend agent.Backend) *Decomposer {
	return &Decomposer{agent: agent.New(backend, decomposerSystem, nil)}
}

// Decompose asks the model for sub-questions and parses its answer. A JSON
// array of strings is preferred; when the model answers in free text the
// response is split into lines with list punctuation stripped. Parse
// failures never surface; only backend errors do.
func (d *Decomposer) Decompose(ctx context.Context, question string) ([]string, error) {
	raw, err := d.agent.Run(ctx, question, nil)
	if err != nil {
		return nil, err
	}
	return parseSubQuestions(raw), nil
}

func parseSubQuestions(raw string) []string {
	cleaned := stripFences(raw)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed
	}

	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•0123456789.) ")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// stripFences removes a wrapping markdown code fence (with optional language
// tag) and any stray surrounding backticks.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.Index(s, "\n"); i >= 0 && !strings.HasPrefix(s, "[") {
			// drop the language tag line, e.g. ```json
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.Trim(strings.TrimSpace(s), "`")
}
