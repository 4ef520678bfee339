package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/meta"
	"curator/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	contentDir string
	configPath string
}

// setupCLITestEnv writes a config file pointing at a fresh content root so
// commands run fully isolated from the host.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	contentDir := filepath.Join(base, "photography")
	testsupport.MkdirAll(t, contentDir)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
content_dir = %q
log_dir = %q

[site]
base_url = "https://example.com"
sitemap_path = %q
`, contentDir, filepath.Join(base, "logs"), filepath.Join(base, "sitemap.xml"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		baseDir:    base,
		contentDir: contentDir,
		configPath: configPath,
	}
}

func (env *cliTestEnv) writeProject(t *testing.T, name string, record *meta.Record, images ...string) {
	t.Helper()
	testsupport.WriteProject(t, env.contentDir, name, record, images...)
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
