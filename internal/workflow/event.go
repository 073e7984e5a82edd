// Package workflow defines the progress events the agent loop emits to
// the terminal UI.
package workflow

// Event is the interface for all workflow events.
// UI handles events via type switch.
type Event interface {
	isEvent()
}

// TextEvent is emitted when the model says something alongside tool calls.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// ThinkingEvent is emitted before each provider request.
type ThinkingEvent struct{}

func (ThinkingEvent) isEvent() {}

// DoneEvent is emitted when the agent loop has answered a message.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}

// ToolStartEvent is emitted when a tool execution begins.
type ToolStartEvent struct {
	ToolName string
	Preview  string // value of the first argument
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool completes.
type ToolEndEvent struct {
	ToolName string
	Result   string
	Failed   bool
}

func (ToolEndEvent) isEvent() {}

// NoticeEvent carries a warning for the user, such as a credential
// rotation or a retry.
type NoticeEvent struct {
	Text string
}

func (NoticeEvent) isEvent() {}
