package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/llmx/internal/ui/models"
	"github.com/Cyclone1070/llmx/internal/ui/services"
	"github.com/charmbracelet/lipgloss"
)

// RenderModelPopup renders the model selection popup
func RenderModelPopup(s models.State) string {
	if !s.ShowModelList || len(s.ModelList) == 0 {
		return ""
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Escolha o modelo:"))
	lines = append(lines, "")

	for i, model := range s.ModelList {
		label := model
		if model == s.CurrentModel {
			label += " (atual)"
		}
		if i == s.ModelListIndex {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Render(fmt.Sprintf("▸ %s", label)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", label))
		}
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("↑/↓: navegar  Enter: selecionar  Esc: cancelar"))

	return PermissionBoxStyle.Render(strings.Join(lines, "\n"))
}

// RenderPermission renders the confirmation box for a pending request.
func RenderPermission(s models.State) string {
	if s.PendingPermission == nil {
		return ""
	}
	req := s.PendingPermission.Request

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(ColorWarning).Render(req.Title))
	if preview := services.RenderPreview(req); preview != "" {
		lines = append(lines, "", preview)
	}
	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Faint(true).Render("[y] sim  [n] nao  [a] sempre nesta sessao"))

	return PermissionBoxStyle.Render(strings.Join(lines, "\n"))
}
