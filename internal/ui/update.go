package ui

import (
	"strings"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/ui/models"
	"github.com/Cyclone1070/llmx/internal/ui/services"
	"github.com/Cyclone1070/llmx/internal/ui/views"
	"github.com/Cyclone1070/llmx/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	renderer services.MarkdownRenderer

	// Application -> UI
	inputReq      <-chan struct{}
	inputResp     chan<- string
	permReq       <-chan policy.Request
	permResp      chan<- policy.Decision
	eventChan     <-chan workflow.Event
	messageChan   <-chan models.Message
	modelListChan <-chan []string
	setModelChan  <-chan string

	// UI -> Application
	commandChan chan<- UICommand

	readyChan chan<- struct{}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.renderer)
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

func newBubbleTeaModel(channels *UIChannels, renderer services.MarkdownRenderer, spinnerFactory SpinnerFactory) BubbleTeaModel {
	ti := textinput.New()
	ti.Placeholder = "Pergunte algo sobre o seu sistema..."
	ti.Prompt = "> "
	ti.Focus()

	return BubbleTeaModel{
		state: models.State{
			Input:       ti,
			Viewport:    viewport.New(80, 20),
			Spinner:     spinnerFactory(),
			Messages:    []models.Message{},
			StatusPhase: models.PhaseReady,
		},
		renderer:      renderer,
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
}

// Internal messages
type tickMsg time.Time
type inputRequestMsg struct{}
type permRequestMsg policy.Request
type eventMsg struct{ event workflow.Event }
type messageReceivedMsg models.Message
type modelListReceivedMsg []string
type setModelMsg string

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		tick(),
		listenForInputRequests(m.inputReq),
		listenForPermRequests(m.permReq),
		listenForEvents(m.eventChan),
		listenForMessages(m.messageChan),
		listenForModelList(m.modelListChan),
		listenForModel(m.setModelChan),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = msg.Height - 6 // input and status
		m.updateViewport()
		return m, nil

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case inputRequestMsg:
		m.state.CanSubmit = true
		return m, listenForInputRequests(m.inputReq)

	case permRequestMsg:
		m.state.PendingPermission = &models.PermissionRequest{Request: policy.Request(msg)}
		return m, listenForPermRequests(m.permReq)

	case eventMsg:
		m.handleEvent(msg.event)
		return m, listenForEvents(m.eventChan)

	case messageReceivedMsg:
		m.appendMessage(models.Message(msg))
		return m, listenForMessages(m.messageChan)

	case modelListReceivedMsg:
		m.state.ModelList = []string(msg)
		m.state.ShowModelList = len(msg) > 0
		m.state.ModelListIndex = 0
		for i, name := range m.state.ModelList {
			if name == m.state.CurrentModel {
				m.state.ModelListIndex = i
			}
		}
		return m, listenForModelList(m.modelListChan)

	case setModelMsg:
		m.state.CurrentModel = string(msg)
		return m, listenForModel(m.setModelChan)
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m *BubbleTeaModel) handleEvent(event workflow.Event) {
	switch e := event.(type) {
	case workflow.ThinkingEvent:
		m.state.StatusPhase = models.PhaseThinking
		m.state.StatusMessage = ""
	case workflow.ToolStartEvent:
		status := services.FormatToolStatus(e.ToolName, e.Preview)
		m.state.StatusPhase = models.PhaseExecuting
		m.state.StatusMessage = status
		m.appendMessage(models.Message{Role: models.RoleTool, Content: status})
	case workflow.ToolEndEvent:
		if e.Failed {
			m.state.StatusPhase = models.PhaseError
		} else {
			m.state.StatusPhase = models.PhaseDone
		}
		m.state.StatusMessage = e.ToolName
	case workflow.TextEvent:
		m.appendMessage(models.Message{Role: models.RoleAssistant, Content: e.Text})
	case workflow.NoticeEvent:
		m.appendMessage(models.Message{Role: models.RoleNotice, Content: e.Text})
	case workflow.DoneEvent:
		m.state.StatusPhase = models.PhaseReady
		m.state.StatusMessage = ""
	}
}

func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.ShowModelList {
		switch msg.String() {
		case "up", "k":
			if m.state.ModelListIndex > 0 {
				m.state.ModelListIndex--
			}
		case "down", "j":
			if m.state.ModelListIndex < len(m.state.ModelList)-1 {
				m.state.ModelListIndex++
			}
		case "enter":
			if m.state.ModelListIndex < len(m.state.ModelList) {
				m.commandChan <- UICommand{
					Type: CommandSwitchModel,
					Args: map[string]string{"model": m.state.ModelList[m.state.ModelListIndex]},
				}
			}
			m.state.ShowModelList = false
		case "esc":
			m.state.ShowModelList = false
		}
		return m, nil
	}

	if m.state.PendingPermission != nil {
		var decision policy.Decision
		switch msg.String() {
		case "y", "s":
			decision = policy.DecisionAllow
		case "n", "esc":
			decision = policy.DecisionDeny
		case "a":
			decision = policy.DecisionAllowAlways
		case "ctrl+c":
			return m, tea.Quit
		default:
			return m, nil
		}
		m.permResp <- decision
		m.state.PendingPermission = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if !m.state.CanSubmit {
			m.commandChan <- UICommand{Type: CommandCancel}
		}
		return m, nil

	case "enter":
		input := strings.TrimSpace(m.state.Input.Value())
		if input == "" {
			return m, nil
		}
		if isExit(input) {
			return m, tea.Quit
		}
		if strings.HasPrefix(input, "/") {
			return m.handleCommand(input)
		}
		if !m.state.CanSubmit {
			return m, nil
		}

		m.appendMessage(models.Message{Role: models.RoleUser, Content: input})
		m.inputResp <- input
		m.state.Input.SetValue("")
		m.state.CanSubmit = false
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleCommand handles slash commands
func (m BubbleTeaModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	res := parseCommand(input)
	m.state.Input.SetValue("")

	if res.help {
		m.appendMessage(models.Message{Role: models.RoleAssistant, Content: helpText})
	}
	if res.notice != "" {
		m.appendMessage(models.Message{Role: models.RoleNotice, Content: res.notice})
	}
	if res.command != nil {
		m.commandChan <- *res.command
	}
	return m, nil
}

func (m *BubbleTeaModel) appendMessage(msg models.Message) {
	m.state.Messages = append(m.state.Messages, msg)
	m.updateViewport()
}

func (m *BubbleTeaModel) updateViewport() {
	content := views.FormatChatContent(m.state.Messages, m.state.Width-4, m.renderer)
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoBottom()
}

// Helper commands for listening to channels
func listenForInputRequests(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return inputRequestMsg{}
	}
}

func listenForPermRequests(ch <-chan policy.Request) tea.Cmd {
	return func() tea.Msg {
		return permRequestMsg(<-ch)
	}
}

func listenForEvents(ch <-chan workflow.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{event: <-ch}
	}
}

func listenForMessages(ch <-chan models.Message) tea.Cmd {
	return func() tea.Msg {
		return messageReceivedMsg(<-ch)
	}
}

func listenForModelList(ch <-chan []string) tea.Cmd {
	return func() tea.Msg {
		return modelListReceivedMsg(<-ch)
	}
}

func listenForModel(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return setModelMsg(<-ch)
	}
}

func tick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
