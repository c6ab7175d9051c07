package agent

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIBackend adapts an OpenAI chat-completion client to the Backend
// interface. Model selection is pass-through configuration.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

// NewOpenAIBackend wraps an existing client. model must be a chat model
// that supports tool calling.
func NewOpenAIBackend(client *openai.Client, model string) *OpenAIBackend {
	return &OpenAIBackend{client: client, model: model}
}

// Complete issues one chat completion. Tool definitions are advertised as
// function tools; tool choice is left to the model.
func (b *OpenAIBackend) Complete(ctx context.Context, msgs []Message, tools []ToolDef) (Response, error) {
	req := openai.ChatCompletionRequest{
		Model:    b.model,
		Messages: toOpenAIMessages(msgs),
	}
	for _, t := range tools {
		params, err := json.Marshal(t.Parameters)
		if err != nil {
			return Response{}, fmt.Errorf("agent: marshal parameters for tool %q: %w", t.Name, err)
		}
		req.Tools = append(req.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  json.RawMessage(params),
			},
		})
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return Response{}, err
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("agent: completion returned no choices")
	}

	choice := resp.Choices[0].Message
	out := Response{Content: choice.Content}
	for _, tc := range choice.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			// Malformed argument JSON degrades to an empty argument map;
			// the tool sees the call, not a transport error.
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return out, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		om := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			args, err := json.Marshal(tc.Arguments)
			if err != nil {
				args = []byte("{}")
			}
			om.ToolCalls = append(om.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(args),
				},
			})
		}
		out = append(out, om)
	}
	return out
}
