package cmd

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/furisto/codex-swarm/shared/conv"
	"github.com/furisto/codex-swarm/shared/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"go.uber.org/mock/gomock"
)

const (
	testConfigDir  = "/home/user/.config/codex-swarm"
	testConfigFile = testConfigDir + "/config.yaml"
	testHomeDir    = "/home/user"
	testWorkDir    = "/work/project"
	testPath       = "/usr/local/bin:/usr/bin"
)

type MockFormatter struct {
	DisplayedObjects any
	DisplayFormat    *RenderOptions
}

func (m *MockFormatter) Render(out io.Writer, resources any, options *RenderOptions) error {
	m.DisplayedObjects = resources
	m.DisplayFormat = options
	return nil
}

var _ OutputRenderer = (*MockFormatter)(nil)

type TestRuntimeInfo struct {
	platform string
}

func (t *TestRuntimeInfo) GOOS() string {
	return t.platform
}

type TestSetup struct {
	CmpOptions []cmp.Option
}

type TestScenario struct {
	Name               string
	Command            []string
	Stdin              string
	SetupFileSystem    func(fs *afero.Afero)
	SetupEnv           map[string]string
	SetupCommandRunner func(commandRunner *mocks.MockCommandRunner)
	SetupUserInfo      func(userInfo *mocks.MockUserInfo)
	Platform           string
	UseRenderer        bool
	Expected           TestExpectation
	VerifyFileSystem   func(t *testing.T, fs *afero.Afero)
}

type TestExpectation struct {
	Stdout           *string
	Error            string
	DisplayedObjects any
	DisplayFormat    *RenderOptions
}

func (s *TestSetup) RunTests(t *testing.T, scenarios []TestScenario) {
	if len(scenarios) == 0 {
		t.Fatalf("no scenarios provided")
	}

	for _, scenario := range scenarios {
		t.Run(scenario.Name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			commandRunner := mocks.NewMockCommandRunner(ctrl)
			if scenario.SetupCommandRunner != nil {
				scenario.SetupCommandRunner(commandRunner)
			}

			// scenario expectations are registered first so they take precedence
			userInfo := mocks.NewMockUserInfo(ctrl)
			if scenario.SetupUserInfo != nil {
				scenario.SetupUserInfo(userInfo)
			}
			setupDefaultUserInfo(userInfo)

			fs := &afero.Afero{Fs: afero.NewMemMapFs()}
			if scenario.SetupFileSystem != nil {
				scenario.SetupFileSystem(fs)
			}

			for key, value := range scenario.SetupEnv {
				t.Setenv(key, value)
			}

			testCmd := NewRootCmd()
			testCmd.SetIn(bytes.NewBufferString(scenario.Stdin))

			var stdout bytes.Buffer
			testCmd.SetOut(&stdout)
			testCmd.SetErr(&stdout)

			mockFormatter := &MockFormatter{}
			ctx := context.Background()
			ctx = context.WithValue(ctx, ContextKeyFileSystem, fs)
			if !scenario.UseRenderer {
				ctx = context.WithValue(ctx, ContextKeyOutputRenderer, mockFormatter)
			}
			ctx = context.WithValue(ctx, ContextKeyCommandRunner, commandRunner)
			ctx = context.WithValue(ctx, ContextKeyUserInfo, userInfo)

			// Default to Linux platform, can be overridden
			platform := "linux"
			if scenario.Platform != "" {
				platform = scenario.Platform
			}
			runtimeInfo := &TestRuntimeInfo{platform: platform}
			ctx = context.WithValue(ctx, ContextKeyRuntimeInfo, runtimeInfo)

			testCmd.SetArgs(scenario.Command)

			var actual TestExpectation
			err := testCmd.ExecuteContext(ctx)
			if err != nil {
				actual.Error = err.Error()
			}

			actual.DisplayedObjects = mockFormatter.DisplayedObjects
			if scenario.Expected.DisplayFormat != nil {
				actual.DisplayFormat = mockFormatter.DisplayFormat
			}

			if scenario.Expected.Stdout != nil {
				actual.Stdout = conv.Ptr(stdout.String())
			}

			if diff := cmp.Diff(scenario.Expected, actual, s.CmpOptions...); diff != "" {
				t.Errorf("%s() mismatch (-want +got):\n%s", scenario.Name, diff)
			}

			if scenario.VerifyFileSystem != nil {
				scenario.VerifyFileSystem(t, fs)
			}
		})
	}
}

func setupDefaultUserInfo(userInfo *mocks.MockUserInfo) {
	userInfo.EXPECT().ConfigDir().Return(testConfigDir, nil).AnyTimes()
	userInfo.EXPECT().HomeDir().Return(testHomeDir, nil).AnyTimes()
	userInfo.EXPECT().Cwd().Return(testWorkDir, nil).AnyTimes()
	userInfo.EXPECT().Getenv("PATH").Return(testPath).AnyTimes()
}

func writeConfig(content string) func(fs *afero.Afero) {
	return writeFile(testConfigFile, content)
}

func writeFile(path string, content string) func(fs *afero.Afero) {
	return func(fs *afero.Afero) {
		if err := fs.WriteFile(path, []byte(content), 0600); err != nil {
			panic(err)
		}
	}
}
