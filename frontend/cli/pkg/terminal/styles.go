package terminal

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles are bound to a renderer so that colors are only emitted when the
// destination is a terminal.
type Styles struct {
	Question  lipgloss.Style
	Answer    lipgloss.Style
	Option    lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Filter    lipgloss.Style
	Hint      lipgloss.Style
	Success   lipgloss.Style
	Failure   lipgloss.Style
	TaskName  lipgloss.Style
	Separator lipgloss.Style
}

func NewStyles(out io.Writer) Styles {
	r := lipgloss.NewRenderer(out)

	return Styles{
		Question: r.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),

		Answer: r.NewStyle().
			Foreground(lipgloss.Color("34")),

		Option: r.NewStyle().
			Foreground(lipgloss.Color("252")).
			PaddingLeft(2),

		Selected: r.NewStyle().
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("236")).
			Bold(true),

		Cursor: r.NewStyle().
			Foreground(lipgloss.Color("39")).
			SetString("❯ "),

		Filter: r.NewStyle().
			Foreground(lipgloss.Color("214")),

		Hint: r.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true),

		Success: r.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true),

		Failure: r.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),

		TaskName: r.NewStyle().
			Bold(true),

		Separator: r.NewStyle().
			Foreground(lipgloss.Color("240")),
	}
}
