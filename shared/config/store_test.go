package config

import (
	"testing"

	"github.com/furisto/codex-swarm/shared/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"go.uber.org/mock/gomock"
)

func newTestStore(t *testing.T, content string) (*Store, *afero.Afero) {
	t.Helper()

	ctrl := gomock.NewController(t)
	userInfo := mocks.NewMockUserInfo(ctrl)
	userInfo.EXPECT().ConfigDir().Return("/home/user/.config/codex-swarm", nil).AnyTimes()

	fs := &afero.Afero{Fs: afero.NewMemMapFs()}
	if content != "" {
		if err := fs.WriteFile("/home/user/.config/codex-swarm/config.yaml", []byte(content), 0600); err != nil {
			t.Fatalf("failed to seed config: %v", err)
		}
	}

	store, err := NewStore(fs, userInfo)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store, fs
}

func TestStoreDefaults(t *testing.T) {
	store, _ := newTestStore(t, "")

	actual := map[string]any{
		KeyAgentCommand:      store.String(KeyAgentCommand),
		KeyAgentArgs:         store.Strings(KeyAgentArgs),
		KeyExecutorMaxWorker: store.Int(KeyExecutorMaxWorker),
		KeyTemplatesDir:      store.String(KeyTemplatesDir),
		KeyUIMode:            store.String(KeyUIMode),
		KeyLogLevel:          store.String(KeyLogLevel),
		KeyLogFile:           store.String(KeyLogFile),
	}
	expected := map[string]any{
		KeyAgentCommand:      "codex",
		KeyAgentArgs:         []string(nil),
		KeyExecutorMaxWorker: 0,
		KeyTemplatesDir:      ".swarm",
		KeyUIMode:            "auto",
		KeyLogLevel:          "warn",
		KeyLogFile:           "",
	}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadsFile(t *testing.T) {
	store, _ := newTestStore(t, `
agent:
  command: /usr/local/bin/codex
  args: [exec, --full-auto]
executor:
  max-workers: 4
`)

	actual := []any{
		store.String(KeyAgentCommand),
		store.Strings(KeyAgentArgs),
		store.Int(KeyExecutorMaxWorker),
	}
	expected := []any{"/usr/local/bin/codex", []string{"exec", "--full-auto"}, 4}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("loaded values mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSetFlushDelete(t *testing.T) {
	store, fs := newTestStore(t, "")

	if err := store.Set(KeyExecutorMaxWorker, "2"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Set(KeyLogLevel, "debug"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := store.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}

	ctrl := gomock.NewController(t)
	userInfo := mocks.NewMockUserInfo(ctrl)
	userInfo.EXPECT().ConfigDir().Return("/home/user/.config/codex-swarm", nil).AnyTimes()
	reloaded, err := NewStore(fs, userInfo)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if diff := cmp.Diff(map[string]any{"executor.max-workers": "2", "log.level": "debug"}, reloaded.Settings()); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	if got := reloaded.Int(KeyExecutorMaxWorker); got != 2 {
		t.Errorf("expected max workers 2, got %d", got)
	}

	if err := reloaded.Delete(KeyLogLevel); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"executor.max-workers": "2"}, reloaded.Settings()); diff != "" {
		t.Errorf("settings after delete mismatch (-want +got):\n%s", diff)
	}
}

func TestIsSupportedKey(t *testing.T) {
	for key, expected := range map[string]bool{
		"agent":         true,
		"agent.command": true,
		"log.file":      true,
		"agent.model":   false,
		"ag":            false,
		"":              false,
	} {
		if got := IsSupportedKey(key); got != expected {
			t.Errorf("IsSupportedKey(%q) = %v, want %v", key, got, expected)
		}
	}
}
