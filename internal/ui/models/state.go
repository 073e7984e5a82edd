package models

import (
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Message roles shown in the chat history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleNotice    = "notice"
	RoleTool      = "tool"
)

// Status phases driving the status bar.
const (
	PhaseReady     = "ready"
	PhaseThinking  = "thinking"
	PhaseExecuting = "executing"
	PhaseDone      = "done"
	PhaseError     = "error"
)

// Message is one entry of the chat history.
type Message struct {
	Role    string
	Content string
}

// PermissionRequest is a confirmation waiting for a y/n/a key.
type PermissionRequest struct {
	Request policy.Request
}

// State is everything the views need to render a frame.
type State struct {
	Width  int
	Height int

	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Messages  []Message
	CanSubmit bool

	StatusPhase   string
	StatusMessage string
	DotCount      int
	CurrentModel  string

	PendingPermission *PermissionRequest

	ShowModelList  bool
	ModelList      []string
	ModelListIndex int
}
