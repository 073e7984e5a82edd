package ui

import (
	"context"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/ui/models"
	"github.com/Cyclone1070/llmx/internal/ui/services"
	"github.com/Cyclone1070/llmx/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// UI implements UserInterface using Bubble Tea
type UI struct {
	program *tea.Program

	// Application -> UI
	inputReq      chan struct{}
	inputResp     chan string
	permReq       chan policy.Request
	permResp      chan policy.Decision
	eventChan     chan workflow.Event
	messageChan   chan models.Message
	modelListChan chan []string
	setModelChan  chan string

	// UI -> Application
	commandChan chan UICommand

	readyChan chan struct{}
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	InputReq      chan struct{}
	InputResp     chan string
	PermReq       chan policy.Request
	PermResp      chan policy.Decision
	EventChan     chan workflow.Event
	MessageChan   chan models.Message
	ModelListChan chan []string
	SetModelChan  chan string
	CommandChan   chan UICommand
	ReadyChan     chan struct{} // closed once the program accepts requests
}

// NewUIChannels creates a new UIChannels struct with default buffers
func NewUIChannels() *UIChannels {
	return &UIChannels{
		InputReq:      make(chan struct{}),
		InputResp:     make(chan string, 1),
		PermReq:       make(chan policy.Request),
		PermResp:      make(chan policy.Decision, 1),
		EventChan:     make(chan workflow.Event, 32),
		MessageChan:   make(chan models.Message, 10),
		ModelListChan: make(chan []string, 1),
		SetModelChan:  make(chan string, 1),
		CommandChan:   make(chan UICommand, 10),
		ReadyChan:     make(chan struct{}),
	}
}

// NewUI creates a new Bubble Tea UI
func NewUI(
	channels *UIChannels,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) *UI {
	ui := &UI{
		inputReq:      channels.InputReq,
		inputResp:     channels.InputResp,
		permReq:       channels.PermReq,
		permResp:      channels.PermResp,
		eventChan:     channels.EventChan,
		messageChan:   channels.MessageChan,
		modelListChan: channels.ModelListChan,
		setModelChan:  channels.SetModelChan,
		commandChan:   channels.CommandChan,
		readyChan:     channels.ReadyChan,
	}

	model := newBubbleTeaModel(channels, renderer, spinnerFactory)
	ui.program = tea.NewProgram(model, tea.WithAltScreen())

	return ui
}

// Start runs the program until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}

// ReadInput waits for the next submitted line.
func (u *UI) ReadInput(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case u.inputReq <- struct{}{}:
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case response := <-u.inputResp:
			return response, nil
		}
	}
}

// Confirm shows a confirmation box and waits for y, n or a.
func (u *UI) Confirm(ctx context.Context, req policy.Request) (policy.Decision, error) {
	select {
	case <-ctx.Done():
		return policy.DecisionDeny, ctx.Err()
	case u.permReq <- req:
		select {
		case <-ctx.Done():
			return policy.DecisionDeny, ctx.Err()
		case decision := <-u.permResp:
			return decision, nil
		}
	}
}

// Events returns the channel the agent loop reports progress on.
func (u *UI) Events() chan<- workflow.Event {
	return u.eventChan
}

// WriteMessage appends an assistant answer to the chat.
func (u *UI) WriteMessage(content string) {
	u.write(models.Message{Role: models.RoleAssistant, Content: content})
}

// WriteNotice appends a warning line to the chat.
func (u *UI) WriteNotice(text string) {
	u.write(models.Message{Role: models.RoleNotice, Content: text})
}

func (u *UI) write(msg models.Message) {
	select {
	case u.messageChan <- msg:
	default:
		// Drop if channel is full
	}
}

// WriteModelList opens the model popup.
func (u *UI) WriteModelList(models []string) {
	select {
	case u.modelListChan <- models:
	default:
	}
}

// SetModel updates the model shown in the status bar.
func (u *UI) SetModel(model string) {
	select {
	case u.setModelChan <- model:
	default:
	}
}

// Commands returns the command channel
func (u *UI) Commands() <-chan UICommand {
	return u.commandChan
}

// Ready returns a channel that is closed when the UI is ready to accept requests
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}
