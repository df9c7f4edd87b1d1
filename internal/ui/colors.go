package ui

import "github.com/charmbracelet/lipgloss"

const (
	Primary   = lipgloss.Color("#fff")
	Secondary = lipgloss.Color("#888")
	Faded     = lipgloss.Color("#555")

	Blue   = lipgloss.Color("#4db7ff")
	Green  = lipgloss.Color("#00a352")
	Red    = lipgloss.Color("#c42912")
	Orange = lipgloss.Color("#c27510")
)

var (
	TaskTitle    = lipgloss.NewStyle().Foreground(Primary)
	DoneTitle    = lipgloss.NewStyle().Foreground(Faded).Strikethrough(true)
	TaskMeta     = lipgloss.NewStyle().Foreground(Secondary)
	FooterStyle  = lipgloss.NewStyle().Foreground(Secondary).Padding(0, 1)
	WarningStyle = lipgloss.NewStyle().Foreground(Orange)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red)
	HeadingStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
)
