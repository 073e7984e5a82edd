package ui

import (
	"testing"
	"time"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/ui/models"
	"github.com/Cyclone1070/llmx/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestModel() (BubbleTeaModel, *UIChannels) {
	channels := NewUIChannels()
	return newBubbleTeaModel(channels, &MockMarkdownRenderer{}, mockSpinnerFactory), channels
}

func update(t *testing.T, m BubbleTeaModel, msg tea.Msg) (BubbleTeaModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(BubbleTeaModel), cmd
}

func enter(t *testing.T, m BubbleTeaModel, text string) (BubbleTeaModel, tea.Cmd) {
	t.Helper()
	m.state.Input.SetValue(text)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func key(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting on channel")
	}
	var zero T
	return zero
}

func TestInit_ClosesReady(t *testing.T) {
	model, channels := createTestModel()

	cmd := model.Init()

	assert.NotNil(t, cmd)
	_, open := <-channels.ReadyChan
	assert.False(t, open)
}

func TestUpdate_KeyEnter_SubmitsInput(t *testing.T) {
	model, channels := createTestModel()
	model.state.CanSubmit = true

	m, _ := enter(t, model, "  onde esta o firefox?  ")

	assert.Equal(t, "", m.state.Input.Value())
	assert.False(t, m.state.CanSubmit)
	require.Len(t, m.state.Messages, 1)
	assert.Equal(t, models.RoleUser, m.state.Messages[0].Role)
	assert.Equal(t, "onde esta o firefox?", receive(t, channels.InputResp))
}

func TestUpdate_EmptyInputIgnored(t *testing.T) {
	model, channels := createTestModel()
	model.state.CanSubmit = true

	m, _ := enter(t, model, "   ")

	assert.True(t, m.state.CanSubmit)
	assert.Empty(t, m.state.Messages)
	assert.Len(t, channels.InputResp, 0)
}

func TestUpdate_InputWhileBusyIsHeld(t *testing.T) {
	model, channels := createTestModel()
	model.state.CanSubmit = false

	m, _ := enter(t, model, "outra pergunta")

	assert.Equal(t, "outra pergunta", m.state.Input.Value())
	assert.Len(t, channels.InputResp, 0)
}

func TestUpdate_ExitWordsQuit(t *testing.T) {
	for _, word := range []string{"/sair", "sair", "/q", "exit"} {
		model, _ := createTestModel()
		model.state.CanSubmit = true

		_, cmd := enter(t, model, word)

		require.NotNil(t, cmd, word)
		assert.IsType(t, tea.QuitMsg{}, cmd(), word)
	}
}

func TestUpdate_SlashModel_RequestsList(t *testing.T) {
	model, channels := createTestModel()

	m, _ := enter(t, model, "/model")

	assert.Equal(t, "", m.state.Input.Value())
	assert.Equal(t, CommandListModels, receive(t, channels.CommandChan).Type)
}

func TestUpdate_SlashHelp_AddsHelp(t *testing.T) {
	model, channels := createTestModel()

	m, _ := enter(t, model, "/ajuda")

	require.Len(t, m.state.Messages, 1)
	assert.Contains(t, m.state.Messages[0].Content, "/key <provider> <key>")
	assert.Len(t, channels.CommandChan, 0)
}

func TestUpdate_SlashKey_BadUsage(t *testing.T) {
	model, _ := createTestModel()

	m, _ := enter(t, model, "/key groq")

	require.Len(t, m.state.Messages, 1)
	assert.Equal(t, models.RoleNotice, m.state.Messages[0].Role)
}

func TestUpdate_CommandsWorkWhileBusy(t *testing.T) {
	model, channels := createTestModel()
	model.state.CanSubmit = false

	enter(t, model, "/limpar")

	assert.Equal(t, CommandClear, receive(t, channels.CommandChan).Type)
}

func TestUpdate_EscCancelsWhileBusy(t *testing.T) {
	model, channels := createTestModel()
	model.state.CanSubmit = false

	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, CommandCancel, receive(t, channels.CommandChan).Type)
}

func TestUpdate_EscIdleDoesNothing(t *testing.T) {
	model, channels := createTestModel()
	model.state.CanSubmit = true

	update(t, model, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Len(t, channels.CommandChan, 0)
}

func TestUpdate_PopupNavigation(t *testing.T) {
	model, _ := createTestModel()
	model.state.ShowModelList = true
	model.state.ModelList = []string{"a", "b", "c"}

	m, _ := update(t, model, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.state.ModelListIndex)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.state.ModelListIndex)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.state.ModelListIndex)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.state.ShowModelList)
}

func TestUpdate_PopupEnter_SwitchesModel(t *testing.T) {
	model, channels := createTestModel()
	model.state.ShowModelList = true
	model.state.ModelList = []string{"gemini-1.5-flash"}

	m, _ := update(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.state.ShowModelList)
	cmd := receive(t, channels.CommandChan)
	assert.Equal(t, CommandSwitchModel, cmd.Type)
	assert.Equal(t, "gemini-1.5-flash", cmd.Args["model"])
}

func TestUpdate_ModelListSelectsCurrent(t *testing.T) {
	model, _ := createTestModel()
	model.state.CurrentModel = "b"

	m, _ := update(t, model, modelListReceivedMsg{"a", "b", "c"})

	assert.True(t, m.state.ShowModelList)
	assert.Equal(t, 1, m.state.ModelListIndex)
}

func TestUpdate_SetModel(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, setModelMsg("llama-3.1-8b-instant"))

	assert.Equal(t, "llama-3.1-8b-instant", m.state.CurrentModel)
}

func TestUpdate_PermissionKeys(t *testing.T) {
	tests := []struct {
		key  rune
		want policy.Decision
	}{
		{'y', policy.DecisionAllow},
		{'s', policy.DecisionAllow},
		{'n', policy.DecisionDeny},
		{'a', policy.DecisionAllowAlways},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			model, channels := createTestModel()
			model, _ = update(t, model, permRequestMsg(policy.Request{Tool: tool.RunCommand, Command: "reboot"}))
			require.NotNil(t, model.state.PendingPermission)

			m, _ := update(t, model, key(tt.key))

			assert.Nil(t, m.state.PendingPermission)
			assert.Equal(t, tt.want, receive(t, channels.PermResp))
		})
	}
}

func TestUpdate_PermissionIgnoresOtherKeys(t *testing.T) {
	model, channels := createTestModel()
	model.state.PendingPermission = &models.PermissionRequest{}

	m, _ := update(t, model, key('x'))

	assert.NotNil(t, m.state.PendingPermission)
	assert.Len(t, channels.PermResp, 0)
}

func TestUpdate_WorkflowEvents(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, eventMsg{event: workflow.ThinkingEvent{}})
	assert.Equal(t, models.PhaseThinking, m.state.StatusPhase)

	m, _ = update(t, m, eventMsg{event: workflow.ToolStartEvent{ToolName: "find_file", Preview: "*.pdf"}})
	assert.Equal(t, models.PhaseExecuting, m.state.StatusPhase)
	assert.Equal(t, "⟡ find_file (*.pdf)", m.state.StatusMessage)
	require.Len(t, m.state.Messages, 1)
	assert.Equal(t, models.RoleTool, m.state.Messages[0].Role)

	m, _ = update(t, m, eventMsg{event: workflow.ToolEndEvent{ToolName: "find_file", Failed: true}})
	assert.Equal(t, models.PhaseError, m.state.StatusPhase)

	m, _ = update(t, m, eventMsg{event: workflow.NoticeEvent{Text: "limite atingido. trocando para api key 2/3..."}})
	m, _ = update(t, m, eventMsg{event: workflow.TextEvent{Text: "procurando..."}})
	require.Len(t, m.state.Messages, 3)
	assert.Equal(t, models.RoleNotice, m.state.Messages[1].Role)
	assert.Equal(t, models.RoleAssistant, m.state.Messages[2].Role)

	m, _ = update(t, m, eventMsg{event: workflow.DoneEvent{}})
	assert.Equal(t, models.PhaseReady, m.state.StatusPhase)
	assert.Empty(t, m.state.StatusMessage)
}

func TestUpdate_MessageReceived(t *testing.T) {
	model, _ := createTestModel()

	m, _ := update(t, model, messageReceivedMsg{Role: models.RoleAssistant, Content: "pronto"})

	require.Len(t, m.state.Messages, 1)
	assert.Contains(t, m.state.Viewport.View(), "pronto")
}

func TestTick_DotAnimation(t *testing.T) {
	model, _ := createTestModel()

	for i := 0; i < 4; i++ {
		model, _ = update(t, model, tickMsg(time.Now()))
	}

	assert.Equal(t, 0, model.state.DotCount)
}

func TestUpdate_TextInput(t *testing.T) {
	model, _ := createTestModel()
	model.state.CanSubmit = true

	for _, r := range "abc" {
		model, _ = update(t, model, key(r))
	}

	assert.Equal(t, "abc", model.state.Input.Value())
}

func TestUpdate_CtrlC_Quits(t *testing.T) {
	model, _ := createTestModel()

	_, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
