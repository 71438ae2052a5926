package interactive

import (
	"context"
	"errors"
	"io"
)

// ErrAborted is returned by a Prompter when the user backs out of a prompt.
var ErrAborted = errors.New("prompt aborted")

type Option struct {
	Label string
	Value string
}

// Prompter renders a single question and returns the answer. Implementations
// return ErrAborted or io.EOF when no answer will be given.
type Prompter interface {
	Select(ctx context.Context, message string, options []Option) (string, error)
	Confirm(ctx context.Context, message string, defaultValue bool) (bool, error)
	Input(ctx context.Context, message string) (string, error)
}

func isAbort(err error) bool {
	return errors.Is(err, ErrAborted) || errors.Is(err, io.EOF)
}
