package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/furisto/codex-swarm/frontend/cli/pkg/interactive"
)

// MenuPrompter asks questions with arrow key menus. It needs a terminal on
// both ends.
type MenuPrompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles
}

var _ interactive.Prompter = (*MenuPrompter)(nil)

func NewMenuPrompter(in io.Reader, out io.Writer) *MenuPrompter {
	return &MenuPrompter{
		in:     in,
		out:    out,
		styles: NewStyles(out),
	}
}

func (p *MenuPrompter) Select(ctx context.Context, message string, options []interactive.Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from")
	}

	list := NewSelectList(message, options, p.styles)
	if err := p.run(ctx, list); err != nil {
		return "", err
	}
	if list.IsCancelled() {
		return "", interactive.ErrAborted
	}

	option, ok := list.Selected()
	if !ok {
		return "", interactive.ErrAborted
	}
	return option.Value, nil
}

func (p *MenuPrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	options := []interactive.Option{
		{Label: "Yes", Value: "yes"},
		{Label: "No", Value: "no"},
	}

	cursor := 1
	if defaultValue {
		cursor = 0
	}

	list := NewSelectList(message, options, p.styles).WithCursor(cursor)
	if err := p.run(ctx, list); err != nil {
		return false, err
	}
	if list.IsCancelled() {
		return false, interactive.ErrAborted
	}

	option, ok := list.Selected()
	if !ok {
		return false, interactive.ErrAborted
	}
	return option.Value == "yes", nil
}

func (p *MenuPrompter) Input(ctx context.Context, message string) (string, error) {
	prompt := NewTextPrompt(message, p.styles)
	if err := p.run(ctx, prompt); err != nil {
		return "", err
	}
	if prompt.IsCancelled() {
		return "", interactive.ErrAborted
	}
	return prompt.Value(), nil
}

func (p *MenuPrompter) run(ctx context.Context, model tea.Model) error {
	program := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to run prompt: %w", err)
	}
	return nil
}
