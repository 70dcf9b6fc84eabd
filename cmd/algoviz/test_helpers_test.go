package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"algoviz/internal/config"
	"algoviz/internal/testsupport"
)

const bubbleSource = `for (int i = 0; i < n - 1; i++)
    for (int j = 0; j < n - i - 1; j++)
        if (arr[j] > arr[j + 1])
            swap(arr[j], arr[j + 1]);
`

const sortedReply = "FRAME|0|array|3,1,2|i=0 j=0|3|Compare 3 and 1\n" +
	"FRAME|1|array|1,3,2|i=0 j=0|4|Swap 3 and 1\n" +
	"FRAME|2|array|1,2,3|i=0 j=1|4|Swap 3 and 2"

type cliTestEnv struct {
	cfg        *config.Config
	model      *testsupport.ModelServer
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, replies []string, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	model := testsupport.NewModelServer(t, replies...)
	opts = append([]testsupport.ConfigOption{testsupport.WithModelURL(model.URL)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"

	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")
	testsupport.WriteConfig(t, cfg, configPath)

	return &cliTestEnv{
		cfg:        cfg,
		model:      model,
		configPath: configPath,
		baseDir:    base,
	}
}

func (e *cliTestEnv) writeSource(t *testing.T, name, code string) string {
	t.Helper()
	return testsupport.WriteSource(t, filepath.Join(e.baseDir, "src"), name, code)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
