package views

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/llmx/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State) string {
	var icon string
	style := StatusDefaultStyle

	switch s.StatusPhase {
	case models.PhaseExecuting:
		icon = s.Spinner.View()
		style = StatusExecutingStyle
	case models.PhaseDone:
		icon = "✔"
		style = StatusDoneStyle
	case models.PhaseError:
		icon = "✘"
		style = StatusErrorStyle
	case models.PhaseThinking:
		icon = s.Spinner.View()
		style = StatusThinkingStyle
		dots := strings.Repeat(".", s.DotCount)
		return withModel(style.Render(fmt.Sprintf("%s Pensando%s", icon, dots)), s.CurrentModel)
	}

	status := "Pronto"
	if s.StatusMessage != "" {
		status = strings.TrimSpace(fmt.Sprintf("%s %s", icon, s.StatusMessage))
	} else if s.StatusPhase != models.PhaseReady && s.StatusPhase != "" {
		status = icon
	}

	return withModel(style.Render(status), s.CurrentModel)
}

func withModel(left, model string) string {
	if model == "" {
		return left
	}
	return fmt.Sprintf("%s  %s", left, StatusDefaultStyle.Render(model))
}
