// Package provider holds the conversation model shared by every LLM
// backend and the Client that owns one conversation.
package provider

import (
	"context"

	"github.com/Cyclone1070/llmx/internal/config"
	"github.com/Cyclone1070/llmx/internal/tool"
)

// Role identifies the author of a Message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// FunctionCall is the function part of a ToolCall. Arguments is kept in
// the serialized form the backend produced; parsing is the caller's job.
type FunctionCall struct {
	Name      string
	Arguments string
}

// ToolCall is one invocation requested by the model.
type ToolCall struct {
	ID       string
	Function FunctionCall
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string

	// Assistant turns only.
	ToolCalls []ToolCall

	// Tool turns only.
	ToolCallID string
	Name       string
}

// HasToolCalls reports whether the model asked for tools.
func (m *Message) HasToolCalls() bool {
	return m != nil && len(m.ToolCalls) > 0
}

// Request is one chat-completion call. Messages starts with the system
// turn. Backends set tool_choice to auto whenever Tools is non-empty.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []tool.Declaration
	MaxTokens   int
	Temperature float64
}

// Backend sends a Request to one vendor API.
type Backend interface {
	Complete(ctx context.Context, req *Request) (*Message, error)
}

// BackendFactory connects to a provider with one credential.
type BackendFactory func(ctx context.Context, info config.ProviderInfo, apiKey string) (Backend, error)
