// Package agent implements a minimal conversational agent: a system
// instruction, a user input, and at most one round of model-requested tool
// invocations before the final answer is produced.
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// Message roles, mirroring the chat-completion wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is one entry in a conversation. Conversations only ever grow by
// appending; no message is edited after it is added.
type Message struct {
	Role       string
	Content    string
	ToolCallID string     // set on tool-result messages
	ToolCalls  []ToolCall // set on assistant messages that request tools
}

// ToolCall is a model-issued request to invoke a named capability. It is
// produced by the backend and consumed by dispatch; agents never construct
// one themselves.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ToolDef declares a tool to the backend. Parameters is a JSON-schema
// object describing the arguments.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Tool is an invocable capability. A non-string result is serialized to
// JSON before being fed back into the conversation.
type Tool func(ctx context.Context, args map[string]any) (any, error)

// Registry maps tool names to capabilities. It is supplied by the caller
// per invocation and is not owned by the agent.
type Registry map[string]Tool

// Response is one backend turn: either plain text, or one or more tool
// calls (Content may still be set alongside tool calls).
type Response struct {
	Content   string
	ToolCalls []ToolCall
}

// Backend produces one completion for a conversation. Implementations own
// transport, authentication, timeouts and retries; the agent layer attempts
// every call exactly once.
type Backend interface {
	Complete(ctx context.Context, msgs []Message, tools []ToolDef) (Response, error)
}

// Agent drives a single request/response cycle against a Backend.
type Agent struct {
	backend Backend
	system  string
	tools   []ToolDef
	log     zerolog.Logger
}

// New builds an agent with a fixed system instruction and the tools it
// advertises to the backend. Advertising tools never forces their use; the
// backend decides whether to invoke one.
func New(backend Backend, system string, tools []ToolDef) *Agent {
	return &Agent{backend: backend, system: system, tools: tools, log: zerolog.Nop()}
}

// SetLogger replaces the agent's logger (a no-op logger by default).
func (a *Agent) SetLogger(log zerolog.Logger) { a.log = log }

// Run sends input to the backend and returns the final assistant text. If
// the backend requests tool calls and reg is non-nil, each call is resolved
// by name and executed, its result appended to the conversation, and the
// backend is called exactly once more. A second round of tool requests is
// not serviced; its text content is returned as-is.
func (a *Agent) Run(ctx context.Context, input string, reg Registry) (string, error) {
	msgs := []Message{
		{Role: RoleSystem, Content: a.system},
		{Role: RoleUser, Content: input},
	}

	resp, err := a.backend.Complete(ctx, msgs, a.tools)
	if err != nil {
		return "", fmt.Errorf("agent: backend call: %w", err)
	}

	if len(resp.ToolCalls) == 0 || reg == nil {
		return resp.Content, nil
	}

	msgs = append(msgs, Message{
		Role:      RoleAssistant,
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
	})
	for _, call := range resp.ToolCalls {
		result := a.dispatch(ctx, reg, call)
		msgs = append(msgs, Message{
			Role:       RoleTool,
			Content:    result,
			ToolCallID: call.ID,
		})
	}

	final, err := a.backend.Complete(ctx, msgs, a.tools)
	if err != nil {
		return "", fmt.Errorf("agent: backend call after tools: %w", err)
	}
	return final.Content, nil
}

// dispatch resolves and runs one tool call. Failures of any kind become
// error-text results so the model can react to them; they never abort the
// agent.
func (a *Agent) dispatch(ctx context.Context, reg Registry, call ToolCall) (result string) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn().Str("tool", call.Name).Interface("panic", r).Msg("tool panicked")
			result = fmt.Sprintf("Error: tool %q panicked: %v", call.Name, r)
		}
	}()

	tool, ok := reg[call.Name]
	if !ok {
		a.log.Warn().Str("tool", call.Name).Msg("unknown tool requested")
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	a.log.Debug().Str("tool", call.Name).Msg("invoking tool")
	out, err := tool(ctx, call.Arguments)
	if err != nil {
		a.log.Warn().Str("tool", call.Name).Err(err).Msg("tool failed")
		return fmt.Sprintf("Error: tool %q failed: %v", call.Name, err)
	}
	return renderResult(out)
}

// renderResult converts a tool result to text for the conversation.
func renderResult(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
