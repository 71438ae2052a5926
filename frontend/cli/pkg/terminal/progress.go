package terminal

import (
	"fmt"
	"io"

	"github.com/furisto/codex-swarm/backend/task"
)

// Progress returns a task.SettledFunc that prints one line per settled task,
// e.g. "[2/3] build done".
func Progress(out io.Writer) task.SettledFunc {
	styles := NewStyles(out)

	return func(result task.Result, settled, total int) {
		counter := styles.Separator.Render(fmt.Sprintf("[%d/%d]", settled, total))
		name := styles.TaskName.Render(result.TaskName)

		status := styles.Success.Render("done")
		if !result.Succeeded() {
			status = styles.Failure.Render("failed")
		}

		fmt.Fprintf(out, "%s %s %s\n", counter, name, status)
	}
}
