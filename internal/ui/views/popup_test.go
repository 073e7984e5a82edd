package views

import (
	"testing"

	"github.com/Cyclone1070/llmx/internal/tool"
	"github.com/Cyclone1070/llmx/internal/tool/policy"
	"github.com/Cyclone1070/llmx/internal/ui/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderModelPopup_WithSelection(t *testing.T) {
	state := models.State{
		ShowModelList:  true,
		ModelList:      []string{"llama-3.3-70b-versatile", "gemini-1.5-flash"},
		ModelListIndex: 1,
		CurrentModel:   "llama-3.3-70b-versatile",
	}

	result := RenderModelPopup(state)

	assert.Contains(t, result, "Escolha o modelo")
	assert.Contains(t, result, "llama-3.3-70b-versatile (atual)")
	assert.Contains(t, result, "▸ gemini-1.5-flash")
	assert.Contains(t, result, "navegar")
}

func TestRenderModelPopup_EmptyList(t *testing.T) {
	state := models.State{
		ShowModelList: true,
		ModelList:     []string{},
	}

	assert.Empty(t, RenderModelPopup(state))
}

func TestRenderModelPopup_IndexOutOfBounds(t *testing.T) {
	state := models.State{
		ShowModelList:  true,
		ModelList:      []string{"a", "b"},
		ModelListIndex: 10,
	}

	result := RenderModelPopup(state)

	assert.Contains(t, result, "a")
	assert.Contains(t, result, "b")
	assert.NotContains(t, result, "▸")
}

func TestRenderPermission(t *testing.T) {
	state := models.State{
		PendingPermission: &models.PermissionRequest{
			Request: policy.Describe(policy.Request{Tool: tool.RunSudoCommand, Command: "apt update"}),
		},
	}

	result := RenderPermission(state)

	assert.Contains(t, result, "Comando com Sudo")
	assert.Contains(t, result, "$ apt update")
	assert.Contains(t, result, "[a] sempre")
}

func TestRenderPermission_NothingPending(t *testing.T) {
	assert.Empty(t, RenderPermission(models.State{}))
}
