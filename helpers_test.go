package deepresearch

import (
	"context"
	"errors"

	"github.com/qmerge/deepresearch/agent"
)

// scriptedBackend replays queued responses in order and records each
// conversation. A nil pick function replays the queue; a non-nil one routes
// by conversation content (used by pipeline tests that serve several agents
// from one backend).
type scriptedBackend struct {
	responses []agent.Response
	calls     [][]agent.Message
	err       error
	pick      func(msgs []agent.Message) (agent.Response, bool)
}

func newScriptedBackend(responses ...agent.Response) *scriptedBackend {
	return &scriptedBackend{responses: responses}
}

func (s *scriptedBackend) Complete(_ context.Context, msgs []agent.Message, _ []agent.ToolDef) (agent.Response, error) {
	s.calls = append(s.calls, append([]agent.Message(nil), msgs...))
	if s.err != nil {
		return agent.Response{}, s.err
	}
	if s.pick != nil {
		if resp, ok := s.pick(msgs); ok {
			return resp, nil
		}
	}
	i := len(s.calls) - 1
	if i >= len(s.responses) {
		return agent.Response{}, errors.New("scripted backend exhausted")
	}
	return s.responses[i], nil
}
