package fail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
)

type UserFacingSolutionFormat string

const (
	UserFacingSolutionFormatMultiline  UserFacingSolutionFormat = "multiline"
	UserFacingSolutionFormatSingleline UserFacingSolutionFormat = "singleline"
)

type Troubleshooting struct {
	Format    UserFacingSolutionFormat
	Solutions []string
}

type UserFacingError struct {
	Cause           error
	UserMessage     string
	Troubleshooting Troubleshooting
	TechDetails     string
	HelpURLs        []string
	Time            time.Time
}

func (e *UserFacingError) Error() string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("%s\n\n", lipgloss.NewStyle().Bold(true).Render(e.UserMessage)))

	if len(e.Troubleshooting.Solutions) > 0 {
		msg.WriteString("Troubleshooting steps:\n")
		for i, solution := range e.Troubleshooting.Solutions {
			if e.Troubleshooting.Format == UserFacingSolutionFormatMultiline {
				// Split multi-line solutions and indent continuation lines properly
				lines := strings.Split(solution, "\n")
				msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, lines[0]))
				for j := 1; j < len(lines); j++ {
					if lines[j] != "" {
						msg.WriteString(fmt.Sprintf("     %s\n", lines[j]))
					} else {
						msg.WriteString("\n")
					}
				}
				msg.WriteString("\n")
			} else {
				msg.WriteString(fmt.Sprintf("  %d. %s\n", i+1, solution))
			}
		}
		msg.WriteString("\n")
	}

	if e.TechDetails != "" {
		msg.WriteString("Technical details:\n")
		msg.WriteString(e.TechDetails)
		msg.WriteString("\n")
	}

	if len(e.HelpURLs) > 0 {
		msg.WriteString("If the problem persists:\n")
		for _, url := range e.HelpURLs {
			msg.WriteString(fmt.Sprintf("%s %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Render(("→")), url))
		}
	}

	return msg.String()
}

func (e *UserFacingError) Unwrap() error {
	return e.Cause
}

func NewUserFacingError(userMessage string, cause error, troubleshooting Troubleshooting, techDetails string, helpURLs []string) *UserFacingError {
	return &UserFacingError{
		Cause:           cause,
		UserMessage:     userMessage,
		Troubleshooting: troubleshooting,
		TechDetails:     techDetails,
		HelpURLs:        helpURLs,
	}
}

const issuesURL = "https://github.com/furisto/codex-swarm/issues/new"

func NewPermissionError(path string, err error) *UserFacingError {
	return &UserFacingError{
		Cause:       err,
		UserMessage: fmt.Sprintf("Permission denied accessing %s", path),
		Troubleshooting: Troubleshooting{
			Format: UserFacingSolutionFormatSingleline,
			Solutions: []string{
				"Check file permissions and ownership",
				"Ensure you have write access to the directory",
				"Verify the path exists and is accessible",
			},
		},
		TechDetails: fmt.Sprintf("Failed to access %s: %v", path, err),
		HelpURLs:    []string{issuesURL},
	}
}

func NewConfigError(path string, err error) *UserFacingError {
	return &UserFacingError{
		Cause:       err,
		UserMessage: "Could not load the codex-swarm configuration",
		Troubleshooting: Troubleshooting{
			Format: UserFacingSolutionFormatMultiline,
			Solutions: []string{
				fmt.Sprintf("Check that %s is valid YAML", path),
				"Inspect the current settings:\ncodex-swarm config list",
				"Reset a broken key:\ncodex-swarm config unset <key>",
			},
		},
		TechDetails: fmt.Sprintf("Reading %s failed: %v", path, err),
		HelpURLs:    []string{issuesURL},
	}
}

func NewInvalidSettingError(key string, value string, err error) *UserFacingError {
	return &UserFacingError{
		Cause:       err,
		UserMessage: fmt.Sprintf("Invalid value %q for %s", value, key),
		Troubleshooting: Troubleshooting{
			Format: UserFacingSolutionFormatSingleline,
			Solutions: []string{
				fmt.Sprintf("See the allowed values: codex-swarm config describe %s", key),
				fmt.Sprintf("Remove the setting: codex-swarm config unset %s", key),
			},
		},
		TechDetails: err.Error(),
	}
}

func NewTerminalError(err error) *UserFacingError {
	return &UserFacingError{
		Cause:       err,
		UserMessage: "The interactive prompt stopped unexpectedly",
		Troubleshooting: Troubleshooting{
			Format: UserFacingSolutionFormatSingleline,
			Solutions: []string{
				"Make sure stdin is a terminal or a readable stream",
				"Fall back to plain prompts: codex-swarm config set ui.mode line",
			},
		},
		TechDetails: err.Error(),
		HelpURLs:    []string{issuesURL},
	}
}

func HandleError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}

	if cmd != nil {
		cmd.SilenceUsage = true
	}

	sentry.CaptureException(err)
	return TransformError(err)
}

func TransformError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*UserFacingError); ok {
		return err
	}

	errStr := err.Error()
	if strings.Contains(errStr, "no such file or directory") {
		return &UserFacingError{
			Cause:       err,
			UserMessage: "Required file or directory not found",
			Troubleshooting: Troubleshooting{
				Format: UserFacingSolutionFormatSingleline,
				Solutions: []string{
					"Verify the path exists and is accessible",
					"Check if the parent directory exists",
					"Check the templates.dir setting: codex-swarm config get templates.dir",
				},
			},
			TechDetails: errStr,
			HelpURLs:    []string{issuesURL},
		}
	}

	if strings.Contains(errStr, "operation not permitted") {
		return &UserFacingError{
			Cause:       err,
			UserMessage: "Operation not permitted - insufficient privileges",
			Troubleshooting: Troubleshooting{
				Format: UserFacingSolutionFormatSingleline,
				Solutions: []string{
					"Check if you have the necessary permissions",
					"Check the ownership of the codex-swarm config directory",
				},
			},
			TechDetails: errStr,
			HelpURLs:    []string{issuesURL},
		}
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
