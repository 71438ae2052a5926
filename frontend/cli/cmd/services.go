package cmd

import (
	"context"

	"github.com/furisto/codex-swarm/shared"
	"github.com/furisto/codex-swarm/shared/config"
	"github.com/spf13/afero"
)

type ContextKey string

const (
	ContextKeyFileSystem     ContextKey = "filesystem"
	ContextKeyOutputRenderer ContextKey = "output_renderer"
	ContextKeyCommandRunner  ContextKey = "command_runner"
	ContextKeyRuntimeInfo    ContextKey = "runtime_info"
	ContextKeyUserInfo       ContextKey = "user_info"
	ContextKeyConfigStore    ContextKey = "config_store"
)

func getFileSystem(ctx context.Context) *afero.Afero {
	fs := ctx.Value(ContextKeyFileSystem)
	if fs != nil {
		return fs.(*afero.Afero)
	}

	return &afero.Afero{Fs: afero.NewOsFs()}
}

func getCommandRunner(ctx context.Context) shared.CommandRunner {
	runner := ctx.Value(ContextKeyCommandRunner)
	if runner != nil {
		return runner.(shared.CommandRunner)
	}

	return &shared.DefaultCommandRunner{}
}

func getRuntimeInfo(ctx context.Context) shared.RuntimeInfo {
	runtimeInfo := ctx.Value(ContextKeyRuntimeInfo)
	if runtimeInfo != nil {
		return runtimeInfo.(shared.RuntimeInfo)
	}

	return &shared.DefaultRuntimeInfo{}
}

func getUserInfo(ctx context.Context) shared.UserInfo {
	userInfo := ctx.Value(ContextKeyUserInfo)
	if userInfo != nil {
		return userInfo.(shared.UserInfo)
	}

	return shared.NewDefaultUserInfo(getFileSystem(ctx))
}

func getRenderer(ctx context.Context) OutputRenderer {
	printer := ctx.Value(ContextKeyOutputRenderer)
	if printer != nil {
		return printer.(OutputRenderer)
	}

	return &DefaultRenderer{}
}

func getConfigStore(ctx context.Context) *config.Store {
	if configStore := ctx.Value(ContextKeyConfigStore); configStore != nil {
		return configStore.(*config.Store)
	}

	// should never happen, indicates a programming error
	panic("config store not found")
}

func setConfigStore(ctx context.Context, configStore *config.Store) context.Context {
	return context.WithValue(ctx, ContextKeyConfigStore, configStore)
}
