package deepresearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/qmerge/deepresearch/agent"
)

// SearchToolName is the tool name the investigator registers its search
// capability under.
const SearchToolName = "web_search"

const (
	summaryTag = "SUMMARY:"
	sourcesTag = "SOURCES:"
)

const investigatorSystem = `You are a research assistant. Use the ` + SearchToolName + ` tool to
gather evidence for the question you are given, then answer in exactly this format:

SUMMARY: <two or three sentences answering the question>
SOURCES: <comma-separated URLs drawn from the search results>`

// Finding is the structured result of investigating one sub-question. It is
// created once and not mutated afterwards.
type Finding struct {
	SubQuestion string
	Summary     string
	Sources     []string
}

// Investigator answers one sub-question at a time using an injected search
// capability. Each instance keeps its conversation state private.
type Investigator struct {
	agent  *agent.Agent
	search SearchFunc
}

// NewInvestigator builds an investigator. The search capability is required
// and is never hard-coded, so tests and offline runs substitute their own.
func NewInvestigator(backend agent.Backend, search SearchFunc) *Investigator {
	tools := []agent.ToolDef{{
		Name:        SearchToolName,
		Description: "Search the web and return relevant results for a query.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"query"},
		},
	}}
	return &Investigator{
		agent:  agent.New(backend, investigatorSystem, tools),
		search: search,
	}
}

// Research investigates one sub-question and extracts a Finding from the
// agent's tagged output. Untagged output degrades gracefully: the whole
// response becomes the summary and the source list stays empty.
func (inv *Investigator) Research(ctx context.Context, subQuestion string) (Finding, error) {
	reg := agent.Registry{
		SearchToolName: func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			if query == "" {
				query = subQuestion
			}
			return inv.search(ctx, query)
		},
	}

	raw, err := inv.agent.Run(ctx, subQuestion, reg)
	if err != nil {
		return Finding{}, fmt.Errorf("research %q: %w", subQuestion, err)
	}

	f := Finding{SubQuestion: subQuestion, Summary: strings.TrimSpace(raw), Sources: []string{}}
	summaryFound, sourcesFound := false, false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case !summaryFound && strings.HasPrefix(line, summaryTag):
			f.Summary = strings.TrimSpace(strings.TrimPrefix(line, summaryTag))
			summaryFound = true
		case !sourcesFound && strings.HasPrefix(line, sourcesTag):
			for _, src := range strings.Split(strings.TrimPrefix(line, sourcesTag), ",") {
				if src = strings.TrimSpace(src); src != "" {
					f.Sources = append(f.Sources, src)
				}
			}
			sourcesFound = true
		}
	}
	return f, nil
}
