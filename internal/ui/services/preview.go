package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/llmx/internal/tool/policy"
)

const (
	maxPreviewLines = 15
	maxStatusArg    = 60
)

// FormatToolStatus builds the status line shown while a tool runs.
func FormatToolStatus(name, firstArg string) string {
	firstArg = strings.TrimSpace(firstArg)
	if firstArg == "" {
		return "⟡ " + name
	}
	if r := []rune(firstArg); len(r) > maxStatusArg {
		firstArg = string(r[:maxStatusArg]) + "..."
	}
	return fmt.Sprintf("⟡ %s (%s)", name, firstArg)
}

// RenderPreview renders the body of a confirmation box.
func RenderPreview(req policy.Request) string {
	switch req.Kind {
	case policy.KindExec:
		return renderExecPreview(req)
	case policy.KindEdit:
		return renderEditPreview(req)
	default:
		if req.Command != "" {
			return renderExecPreview(req)
		}
		return req.Path
	}
}

func renderExecPreview(req policy.Request) string {
	return fmt.Sprintf("$ %s", req.Command)
}

func renderEditPreview(req policy.Request) string {
	var sb strings.Builder
	if req.Path != "" {
		sb.WriteString(fmt.Sprintf("Arquivo: %s\n", req.Path))
	}
	if req.Command != "" {
		sb.WriteString(fmt.Sprintf("$ %s\n", req.Command))
	}
	if req.Content == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	sb.WriteString("\n")
	lines := strings.Split(strings.TrimRight(req.Content, "\n"), "\n")
	shown := lines
	if len(shown) > maxPreviewLines {
		shown = shown[:maxPreviewLines]
	}
	for _, line := range shown {
		sb.WriteString("  + " + line + "\n")
	}
	if hidden := len(lines) - len(shown); hidden > 0 {
		sb.WriteString(fmt.Sprintf("  ... (%d linhas omitidas)\n", hidden))
	}
	return strings.TrimRight(sb.String(), "\n")
}
