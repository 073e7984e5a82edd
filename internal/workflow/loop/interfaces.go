package loop

import (
	"context"

	"github.com/Cyclone1070/llmx/internal/prompt"
	"github.com/Cyclone1070/llmx/internal/provider"
	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/workflow"
)

// conversation is the provider client holding the history.
type conversation interface {
	Send(ctx context.Context, userMessage string, tools []tool.Declaration, systemPrompt string) (*provider.Message, error)
	Continue(ctx context.Context, tools []tool.Declaration) (*provider.Message, error)
	RecordAssistantTurn(msg provider.Message)
	RecordToolResult(id, name, result string)
	Reset()
}

// router picks the prompt and tool subset for a message.
type router interface {
	Route(message string) prompt.RoutingDecision
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns the schemas of ids, or of every tool when none
	// are given.
	Declarations(ids ...tool.ID) []tool.Declaration

	// Execute runs a tool call and returns the tool turn answering it.
	// It emits ToolStartEvent and ToolEndEvent to the events channel.
	Execute(ctx context.Context, tc provider.ToolCall, events chan<- workflow.Event) (provider.Message, error)
}

// logger is the logging collaborator.
type logger interface {
	Info(msg string, attrs ...any)
	Error(err error, where string)
	Path() string
}
