package views

import (
	"strings"

	"github.com/Cyclone1070/llmx/internal/ui/models"
	"github.com/Cyclone1070/llmx/internal/ui/services"
)

// RenderChat renders the message history
func RenderChat(s models.State, renderer services.MarkdownRenderer) string {
	if len(s.Messages) == 0 {
		return ToolMessageStyle.Render("Digite sua pergunta. /ajuda lista os comandos.")
	}
	return s.Viewport.View()
}

// FormatChatContent formats the messages for the viewport
func FormatChatContent(messages []models.Message, width int, renderer services.MarkdownRenderer) string {
	var lines []string
	for _, msg := range messages {
		switch msg.Role {
		case models.RoleUser:
			lines = append(lines, UserMessageStyle.Render("> "+msg.Content))
		case models.RoleNotice:
			lines = append(lines, NoticeMessageStyle.Render("⚠ "+msg.Content))
		case models.RoleTool:
			lines = append(lines, ToolMessageStyle.Render(msg.Content))
		default:
			rendered, err := services.RenderMarkdown(msg.Content, width, renderer)
			if err != nil {
				// Fallback to plain text
				lines = append(lines, AssistantMessageStyle.Render(msg.Content))
			} else {
				lines = append(lines, AssistantMessageStyle.Render(strings.TrimRight(rendered, "\n")))
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
