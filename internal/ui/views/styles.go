package views

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("39")
	ColorWarning = lipgloss.Color("214")
	ColorError   = lipgloss.Color("196")
	ColorSuccess = lipgloss.Color("42")
	ColorDim     = lipgloss.Color("241")
)

var (
	UserMessageStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	AssistantMessageStyle = lipgloss.NewStyle()

	NoticeMessageStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	ToolMessageStyle = lipgloss.NewStyle().
				Foreground(ColorDim)

	InputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorDim)

	StatusDefaultStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	StatusThinkingStyle  = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusExecutingStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	StatusDoneStyle      = lipgloss.NewStyle().Foreground(ColorSuccess)
	StatusErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)

	PermissionBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorWarning).
				Padding(0, 1)
)
