package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/furisto/codex-swarm/frontend/cli/pkg/fail"
	"github.com/furisto/codex-swarm/shared/config"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

type globalOptions struct {
	Verbose bool
}

func NewRootCmd() *cobra.Command {
	options := globalOptions{}
	cmd := &cobra.Command{
		Use:   "codex-swarm",
		Short: "codex-swarm: run a batch of coding agent tasks in parallel.",
		Long:  figure.NewColorFigure("codex-swarm", "standard", "blue", true).String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfigStore(cmd); err != nil {
				return fail.HandleError(cmd, err)
			}

			if err := setupLogging(cmd, getConfigStore(cmd.Context()), options.Verbose); err != nil {
				// config and version keep working with a broken log setting
				if requiresValidSettings(cmd) {
					return fail.HandleError(cmd, err)
				}
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddGroup(
		&cobra.Group{
			ID:    "core",
			Title: "Core Commands",
		},
	)

	cmd.AddGroup(
		&cobra.Group{
			ID:    "system",
			Title: "System Commands",
		},
	)

	cmd.AddCommand(NewInteractiveCmd())

	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func Execute() {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
			fmt.Fprintf(os.Stderr, "Panic occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := sentry.Init(sentry.ClientOptions{
		Dsn:     os.Getenv("SENTRY_DSN"),
		Release: Version,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize sentry: %s\n", err)
	}

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	sentry.Flush(2 * time.Second)
}

func loadConfigStore(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if _, ok := ctx.Value(ContextKeyConfigStore).(*config.Store); ok {
		return nil
	}

	userInfo := getUserInfo(ctx)
	configDir, err := userInfo.ConfigDir()
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fail.NewPermissionError("the configuration directory", err)
		}
		return err
	}

	configStore, err := config.NewStore(getFileSystem(ctx), userInfo)
	if err != nil {
		return fail.NewConfigError(filepath.Join(configDir, config.SettingsFileName), err)
	}

	cmd.SetContext(setConfigStore(ctx, configStore))
	return nil
}

func requiresValidSettings(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" || c.Name() == "version" {
			return false
		}
	}
	return true
}

func setupLogging(cmd *cobra.Command, configStore *config.Store, verbose bool) error {
	var level slog.Level
	levelName := configStore.String(config.KeyLogLevel)
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fail.NewInvalidSettingError(config.KeyLogLevel, levelName, err)
	}
	if verbose {
		level = slog.LevelDebug
	}

	var out io.Writer = cmd.ErrOrStderr()
	if logFile := configStore.String(config.KeyLogFile); logFile != "" {
		out = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}

	handlerOptions := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format := configStore.String(config.KeyLogFormat); format {
	case "text":
		handler = slog.NewTextHandler(out, handlerOptions)
	case "json":
		handler = slog.NewJSONHandler(out, handlerOptions)
	default:
		return fail.NewInvalidSettingError(config.KeyLogFormat, format, fmt.Errorf("unknown log format %q, expected text or json", format))
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
