package terminal

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type TextPrompt struct {
	title  string
	input  textinput.Model
	styles Styles

	done      bool
	cancelled bool
}

var _ tea.Model = (*TextPrompt)(nil)

func NewTextPrompt(title string, styles Styles) *TextPrompt {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 32768
	ti.Focus()

	return &TextPrompt{
		title:  title,
		input:  ti,
		styles: styles,
	}
}

func (p *TextPrompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p *TextPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			p.cancelled = true
			return p, tea.Quit
		case tea.KeyEnter:
			p.done = true
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *TextPrompt) View() string {
	question := p.styles.Question.Render("? " + p.title)

	switch {
	case p.done:
		return question + " " + p.styles.Answer.Render(p.input.Value()) + "\n"
	case p.cancelled:
		return question + " " + p.styles.Hint.Render("cancelled") + "\n"
	}

	return question + "\n" + p.input.View() + "\n" + p.styles.Hint.Render("enter to confirm, esc to cancel") + "\n"
}

func (p *TextPrompt) Value() string {
	return p.input.Value()
}

func (p *TextPrompt) IsCancelled() bool {
	return p.cancelled
}
