package terminal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/furisto/codex-swarm/frontend/cli/pkg/interactive"
	"github.com/sahilm/fuzzy"
)

// SelectList is a single choice menu. Typing narrows the options with a fuzzy
// filter, Enter picks the highlighted option and Esc cancels.
type SelectList struct {
	title   string
	options []interactive.Option
	styles  Styles

	filter  string
	matches []int
	cursor  int

	done      bool
	cancelled bool
}

var _ tea.Model = (*SelectList)(nil)

func NewSelectList(title string, options []interactive.Option, styles Styles) *SelectList {
	list := &SelectList{
		title:   title,
		options: options,
		styles:  styles,
	}
	list.refilter()
	return list
}

// WithCursor highlights the option at index before the list is shown.
func (s *SelectList) WithCursor(index int) *SelectList {
	if index >= 0 && index < len(s.matches) {
		s.cursor = index
	}
	return s
}

func (s *SelectList) Init() tea.Cmd {
	return nil
}

func (s *SelectList) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		s.cancelled = true
		return s, tea.Quit

	case tea.KeyEnter:
		if len(s.matches) > 0 {
			s.done = true
			return s, tea.Quit
		}

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		if s.cursor > 0 {
			s.cursor--
		}

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		if s.cursor < len(s.matches)-1 {
			s.cursor++
		}

	case tea.KeyHome:
		s.cursor = 0

	case tea.KeyEnd:
		s.cursor = max(0, len(s.matches)-1)

	case tea.KeyBackspace:
		if s.filter != "" {
			runes := []rune(s.filter)
			s.filter = string(runes[:len(runes)-1])
			s.refilter()
		}

	case tea.KeySpace:
		s.filter += " "
		s.refilter()

	case tea.KeyRunes:
		s.filter += string(keyMsg.Runes)
		s.refilter()
	}

	return s, nil
}

func (s *SelectList) refilter() {
	s.cursor = 0
	s.matches = s.matches[:0]

	if s.filter == "" {
		for i := range s.options {
			s.matches = append(s.matches, i)
		}
		return
	}

	labels := make([]string, len(s.options))
	for i, option := range s.options {
		labels[i] = option.Label
	}
	for _, match := range fuzzy.Find(s.filter, labels) {
		s.matches = append(s.matches, match.Index)
	}
}

func (s *SelectList) View() string {
	question := s.styles.Question.Render("? " + s.title)

	if s.done {
		option, _ := s.Selected()
		return question + " " + s.styles.Answer.Render(option.Label) + "\n"
	}
	if s.cancelled {
		return question + " " + s.styles.Hint.Render("cancelled") + "\n"
	}

	var lines []string
	header := question
	if s.filter != "" {
		header += " " + s.styles.Filter.Render(s.filter)
	}
	lines = append(lines, header)

	if len(s.matches) == 0 {
		lines = append(lines, s.styles.Hint.Render("  no matches"))
	}
	for i, index := range s.matches {
		label := s.options[index].Label
		if i == s.cursor {
			lines = append(lines, s.styles.Cursor.String()+s.styles.Selected.Render(label))
		} else {
			lines = append(lines, s.styles.Option.Render(label))
		}
	}

	lines = append(lines, s.styles.Hint.Render("↑/↓ to move, type to filter, enter to select, esc to cancel"))
	return strings.Join(lines, "\n") + "\n"
}

func (s *SelectList) Selected() (interactive.Option, bool) {
	if s.cancelled || s.cursor >= len(s.matches) {
		return interactive.Option{}, false
	}
	return s.options[s.matches[s.cursor]], true
}

func (s *SelectList) IsCancelled() bool {
	return s.cancelled
}

func (s *SelectList) IsDone() bool {
	return s.done
}
