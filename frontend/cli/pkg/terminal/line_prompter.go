package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/furisto/codex-swarm/frontend/cli/pkg/interactive"
)

const maxLineSize = 1024 * 1024

type line struct {
	text string
	err  error
}

// LinePrompter asks questions one line at a time. It works with piped input
// and dumb terminals where MenuPrompter cannot draw.
type LinePrompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles

	start sync.Once
	lines chan line
}

var _ interactive.Prompter = (*LinePrompter)(nil)

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:     in,
		out:    out,
		styles: NewStyles(out),
		lines:  make(chan line),
	}
}

func (p *LinePrompter) Select(ctx context.Context, message string, options []interactive.Option) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to choose from")
	}

	fmt.Fprintln(p.out, p.styles.Question.Render(message))
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, option.Label)
	}

	for {
		fmt.Fprint(p.out, "> ")
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}

		answer = strings.TrimSpace(answer)
		if answer == "" {
			continue
		}
		if option, ok := matchOption(answer, options); ok {
			return option.Value, nil
		}
		fmt.Fprintf(p.out, "Invalid choice %q, enter a number between 1 and %d.\n", answer, len(options))
	}
}

func matchOption(answer string, options []interactive.Option) (interactive.Option, bool) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return interactive.Option{}, false
	}

	for _, option := range options {
		if strings.EqualFold(option.Label, answer) || strings.EqualFold(option.Value, answer) {
			return option, true
		}
	}
	return interactive.Option{}, false
}

func (p *LinePrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	hint := "[y/N]"
	if defaultValue {
		hint = "[Y/n]"
	}

	for {
		fmt.Fprintf(p.out, "%s %s ", p.styles.Question.Render(message), hint)
		answer, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

func (p *LinePrompter) Input(ctx context.Context, message string) (string, error) {
	fmt.Fprintf(p.out, "%s ", p.styles.Question.Render(message))
	return p.readLine(ctx)
}

// readLine returns the next line of input without its line ending. Once the
// input is exhausted every call returns io.EOF.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	p.start.Do(func() {
		go p.scan()
	})

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (p *LinePrompter) scan() {
	defer close(p.lines)

	scanner := bufio.NewScanner(p.in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		p.lines <- line{text: strings.TrimSuffix(scanner.Text(), "\r")}
	}
	if err := scanner.Err(); err != nil {
		p.lines <- line{err: fmt.Errorf("failed to read input: %w", err)}
	}
}
