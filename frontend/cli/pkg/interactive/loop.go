package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/furisto/codex-swarm/backend/prompt"
	"github.com/furisto/codex-swarm/backend/task"
)

const templateCommand = "/template"

var errNoTemplates = errors.New("no templates found")

type Executor interface {
	Run(ctx context.Context, tasks []task.Task) *task.Results
}

type Templates interface {
	Dir() string
	Names() ([]string, error)
	Load(name string) (string, error)
}

type LoopOption func(*Loop)

// WithTemplates enables the /template command when entering a description.
func WithTemplates(templates Templates) LoopOption {
	return func(l *Loop) {
		l.templates = templates
	}
}

// Loop drives the user through the task menu until they choose to exit.
type Loop struct {
	store     *task.Store
	executor  Executor
	prompter  Prompter
	templates Templates
	out       io.Writer
	state     State
	handlers  map[State]func(ctx context.Context) (State, error)
}

func NewLoop(store *task.Store, executor Executor, prompter Prompter, out io.Writer, opts ...LoopOption) *Loop {
	loop := &Loop{
		store:    store,
		executor: executor,
		prompter: prompter,
		out:      out,
		state:    StateMainMenu,
	}
	loop.handlers = map[State]func(ctx context.Context) (State, error){
		StateMainMenu:   loop.mainMenu,
		StateAddFlow:    loop.addFlow,
		StateDeleteFlow: loop.deleteFlow,
		StateListFlow:   loop.listFlow,
		StateRunFlow:    loop.runFlow,
	}

	for _, opt := range opts {
		opt(loop)
	}
	return loop
}

func (l *Loop) State() State {
	return l.state
}

// Run blocks until the user exits. Only failures of the prompter itself are
// returned; nothing that happens to a task ends the loop.
func (l *Loop) Run(ctx context.Context) error {
	for l.state != StateExit {
		handler, ok := l.handlers[l.state]
		if !ok {
			return fmt.Errorf("no handler for state %s", l.state)
		}

		next, err := handler(ctx)
		if err != nil {
			l.state = StateExit
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		slog.DebugContext(ctx, "state transition", "from", l.state, "to", next)
		l.state = next
	}

	return nil
}

func (l *Loop) mainMenu(ctx context.Context) (State, error) {
	choice, err := l.prompter.Select(ctx, "What would you like to do?", mainMenuOptions)
	if err != nil {
		if isAbort(err) {
			return StateExit, nil
		}
		return StateExit, fmt.Errorf("failed to read menu selection: %w", err)
	}

	next, ok := Next(Action(choice))
	if !ok {
		l.printf("Unknown action %q.\n", choice)
		return StateMainMenu, nil
	}
	return next, nil
}

func (l *Loop) addFlow(ctx context.Context) (State, error) {
	usePredefined, err := l.prompter.Confirm(ctx, "Use a predefined prompt?", false)
	if err != nil {
		return l.abandon(err)
	}

	var name, description string
	if usePredefined {
		options := make([]Option, 0, len(prompt.PredefinedPrompts()))
		for _, predefined := range prompt.PredefinedPrompts() {
			options = append(options, Option{Label: predefined.Label, Value: predefined.Prompt})
		}

		choice, err := l.prompter.Select(ctx, "Choose a predefined prompt:", options)
		if err != nil {
			return l.abandon(err)
		}
		name, description = choice, choice
	} else {
		name, err = l.prompter.Input(ctx, "Enter task name:")
		if err != nil {
			return l.abandon(err)
		}

		description, err = l.readDescription(ctx)
		if err != nil {
			return l.abandon(err)
		}
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if !l.store.Add(name, description) {
		l.printf("Task not added: a name and a description are required.\n")
		return StateMainMenu, nil
	}

	l.printf("Task %q added.\n", name)
	return StateMainMenu, nil
}

func (l *Loop) readDescription(ctx context.Context) (string, error) {
	message := "Enter task description:"
	if l.templates != nil {
		message = "Enter task description (or /template):"
	}

	for {
		entry, err := l.prompter.Input(ctx, message)
		if err != nil {
			return "", err
		}

		fields := strings.Fields(entry)
		if l.templates == nil || len(fields) == 0 || fields[0] != templateCommand {
			return entry, nil
		}

		content, err := l.loadTemplate(ctx, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(entry), templateCommand)))
		switch {
		case err == nil:
			return content, nil
		case isAbort(err), errors.Is(err, context.Canceled):
			return "", err
		case errors.Is(err, errNoTemplates):
			l.printf("No templates found in %s.\n", l.templates.Dir())
		default:
			l.printf("Error loading template: %v\n", err)
		}
	}
}

func (l *Loop) loadTemplate(ctx context.Context, name string) (string, error) {
	if name == "" {
		names, err := l.templates.Names()
		if err != nil {
			return "", err
		}
		if len(names) == 0 {
			return "", errNoTemplates
		}

		options := make([]Option, len(names))
		for i, n := range names {
			options[i] = Option{Label: n, Value: n}
		}

		name, err = l.prompter.Select(ctx, "Select a template:", options)
		if err != nil {
			return "", err
		}
	}

	return l.templates.Load(name)
}

func (l *Loop) deleteFlow(ctx context.Context) (State, error) {
	if l.store.IsEmpty() {
		l.printf("No tasks to delete.\n")
		return StateMainMenu, nil
	}

	names := l.store.Names()
	options := make([]Option, len(names))
	for i, name := range names {
		options[i] = Option{Label: name, Value: name}
	}

	name, err := l.prompter.Select(ctx, "Select a task to delete:", options)
	if err != nil {
		return l.abandon(err)
	}

	if !l.store.Delete(name) {
		l.printf("Task %q not found, nothing to delete.\n", name)
		return StateMainMenu, nil
	}

	l.printf("Task %q deleted.\n", name)
	return StateMainMenu, nil
}

func (l *Loop) listFlow(ctx context.Context) (State, error) {
	if l.store.IsEmpty() {
		l.printf("No tasks available.\n")
		return StateMainMenu, nil
	}

	l.printf("Current tasks:\n")
	for _, t := range l.store.List() {
		l.printf("- %s: %s\n", t.Name, t.Description)
	}
	return StateMainMenu, nil
}

func (l *Loop) runFlow(ctx context.Context) (State, error) {
	if l.store.IsEmpty() {
		l.printf("No tasks to run.\n")
		return StateMainMenu, nil
	}

	tasks := l.store.List()
	l.printf("Running %d task(s)...\n", len(tasks))

	results := l.executor.Run(ctx, tasks)

	l.printf("\nTask results:\n")
	for _, result := range results.All() {
		if result.Succeeded() {
			l.printf("Task response for '%s': %s\n", result.TaskName, result.Output)
		} else {
			l.printf("Task '%s' failed: %s\n", result.TaskName, result.Diagnostic)
		}
	}
	return StateMainMenu, nil
}

// abandon ends the current flow. An aborted prompt returns to the main menu,
// any other prompter failure ends the loop.
func (l *Loop) abandon(err error) (State, error) {
	if isAbort(err) {
		l.printf("Cancelled.\n")
		return StateMainMenu, nil
	}
	return StateExit, err
}

func (l *Loop) printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}
