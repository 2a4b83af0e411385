package eval

import (
	"context"

	"github.com/stonebriar/insbench/internal/model"
)

// Agent answers a natural-language question, typically by exploring the
// warehouse and running SQL. Implementations own their own database access;
// the harness only ever hands them the question text.
type Agent interface {
	Answer(ctx context.Context, question string) (model.AgentAnswer, error)
}

// StubAgent stands in until a real agent is wired up. Every answer it gives
// scores as "could not compare", which exercises the full harness path
// without producing fake passes.
type StubAgent struct{}

func (StubAgent) Answer(ctx context.Context, question string) (model.AgentAnswer, error) {
	return model.AgentAnswer{
		Response: "[agent not connected] stub response",
	}, nil
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(ctx context.Context, question string) (model.AgentAnswer, error)

func (f AgentFunc) Answer(ctx context.Context, question string) (model.AgentAnswer, error) {
	return f(ctx, question)
}
