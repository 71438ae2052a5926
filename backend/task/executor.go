package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Invoker interface {
	Invoke(ctx context.Context, description string) (string, error)
}

type InvokerFunc func(ctx context.Context, description string) (string, error)

func (f InvokerFunc) Invoke(ctx context.Context, description string) (string, error) {
	return f(ctx, description)
}

// SettledFunc is called once per task as soon as its invocation has settled.
// Calls are serialized; settled counts from 1 to total.
type SettledFunc func(result Result, settled, total int)

type ExecutorOption func(*Executor)

// WithMaxWorkers caps the number of invocations in flight. Zero or a negative
// value leaves the fan-out unbounded.
func WithMaxWorkers(maxWorkers int) ExecutorOption {
	return func(e *Executor) {
		e.maxWorkers = maxWorkers
	}
}

func WithSettledFunc(fn SettledFunc) ExecutorOption {
	return func(e *Executor) {
		e.onSettled = fn
	}
}

// Executor dispatches a batch of tasks to an Invoker and joins on all of them.
// There is no timeout and no retry: a hung invocation stalls Run until the
// invoker returns.
type Executor struct {
	invoker    Invoker
	maxWorkers int
	onSettled  SettledFunc
}

func NewExecutor(invoker Invoker, opts ...ExecutorOption) *Executor {
	executor := &Executor{
		invoker: invoker,
	}
	for _, opt := range opts {
		opt(executor)
	}
	return executor
}

// Run launches one invocation per task and returns once every invocation has
// settled. A failing invocation only affects the result of its own task.
func (e *Executor) Run(ctx context.Context, tasks []Task) *Results {
	runID := uuid.New()
	logger := slog.With("run_id", runID)
	logger.InfoContext(ctx, "dispatching tasks", "count", len(tasks), "max_workers", e.maxWorkers)

	slots := make([]Result, len(tasks))

	var (
		g       errgroup.Group
		mu      sync.Mutex
		settled int
	)
	if e.maxWorkers > 0 {
		g.SetLimit(e.maxWorkers)
	}

	start := time.Now()
	for i, task := range tasks {
		g.Go(func() error {
			taskStart := time.Now()
			result := e.invoke(ctx, task)
			slots[i] = result

			logger.InfoContext(ctx, "task settled",
				"task", task.Name,
				"status", result.Status,
				"duration", time.Since(taskStart),
			)

			if e.onSettled != nil {
				mu.Lock()
				settled++
				e.onSettled(result, settled, len(tasks))
				mu.Unlock()
			}

			// the group never fails, errors are kept in the result
			return nil
		})
	}
	_ = g.Wait()

	results := newResults(len(tasks))
	for _, result := range slots {
		results.set(result)
	}

	logger.InfoContext(ctx, "run finished", "count", results.Len(), "failed", results.Failed(), "duration", time.Since(start))
	return results
}

func (e *Executor) invoke(ctx context.Context, task Task) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.ErrorContext(ctx, "panic while invoking agent", "error", rec, "task", task.Name)
			result = Failure(task.Name, fmt.Sprintf("panic: %v", rec))
		}
	}()

	output, err := e.invoker.Invoke(ctx, task.Description)
	if err != nil {
		return Failure(task.Name, Diagnostic(err))
	}
	return Success(task.Name, output)
}

// Diagnostic extracts the text shown to the user for a failed invocation.
// Errors that carry their own diagnostic take precedence over Error().
func Diagnostic(err error) string {
	var diagnoser interface{ Diagnostic() string }
	if errors.As(err, &diagnoser) {
		if diagnostic := diagnoser.Diagnostic(); diagnostic != "" {
			return diagnostic
		}
	}
	return err.Error()
}
