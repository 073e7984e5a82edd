package ui

import (
	"context"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/workflow"
)

// UserInterface defines the contract for all user interactions.
//
// Context Usage:
// Blocking methods accept context.Context. If the user quits, the caller
// cancels the context and implementations return context.Canceled.
type UserInterface interface {
	policy.Confirmer

	Start() error
	Ready() <-chan struct{}

	// ReadInput waits for the next line the user submits.
	ReadInput(ctx context.Context) (string, error)

	// Events is where the agent loop publishes its progress.
	Events() chan<- workflow.Event

	WriteMessage(content string)
	WriteNotice(text string)
	WriteModelList(models []string)
	SetModel(model string)

	// Commands delivers slash commands that need the application.
	Commands() <-chan UICommand
}

// CommandType names a slash command forwarded to the application.
type CommandType string

const (
	CommandClear       CommandType = "clear"
	CommandListModels  CommandType = "list_models"
	CommandSwitchModel CommandType = "switch_model"
	CommandSaveKey     CommandType = "save_key"
	CommandListKeys    CommandType = "list_keys"
	CommandCancel      CommandType = "cancel"
)

// UICommand is a request from the UI to the application.
type UICommand struct {
	Type CommandType
	Args map[string]string
}
