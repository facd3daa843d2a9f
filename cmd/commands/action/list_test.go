package action

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/Advait-MD/Conductor/internal/config"
	"github.com/Advait-MD/Conductor/internal/database"
	"github.com/Advait-MD/Conductor/internal/domain"
)

// catalogFixture is a user layer merged over the embedded defaults by
// every test in this package.
const catalogFixture = `
[[actions]]
id = "test_greet"
label = "Greet"
kind = "raw"
command = ["echo", "hello"]

[[actions]]
id = "test_wipe"
label = "Wipe scratch"
kind = "executable"
command = ["scratch-wipe", "--force"]
fallback = "/opt/scratch/bin/scratch-wipe"
dangerous = true

[[actions]]
id = "test_docs"
label = "Open docs"
kind = "opener"
command = ["/tmp/conductor-docs.pdf"]
`

// setupActionTest points config and the pin store at temp files, writes
// the catalog fixture, and returns the fixture path.
func setupActionTest(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(dir, "conductor.db"))
	t.Cleanup(database.ResetPath)

	path := filepath.Join(dir, "catalog.toml")
	if err := os.WriteFile(path, []byte(catalogFixture), 0o644); err != nil {
		t.Fatalf("failed to write catalog fixture: %v", err)
	}
	return path
}

// execAction runs the action command under a parent carrying the
// persistent --catalog flag, the way the real root command does, and
// returns what was written to stdout and stderr.
func execAction(t *testing.T, catalogPath string, args ...string) (stdout, stderr string) {
	t.Helper()

	root := &cobra.Command{Use: "conductor", SilenceUsage: true}
	root.PersistentFlags().String("catalog", "", "Extra catalog file")
	root.AddCommand(NewCommand())

	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(append(append([]string{"action"}, args...), "--catalog="+catalogPath))
	root.Execute()
	return outBuf.String(), errBuf.String()
}

func TestList_MergesFixtureOverDefaults(t *testing.T) {
	path := setupActionTest(t)

	stdout, stderr := execAction(t, path, "list")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"test_greet", "Greet", "test_wipe", "Wipe scratch"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected listing to contain %q, got:\n%s", want, stdout)
		}
	}
	// The built-in defaults survive the merge.
	if !strings.Contains(stdout, "open_vscode") {
		t.Errorf("expected built-in actions in the listing, got:\n%s", stdout)
	}
}

func TestList_JSON(t *testing.T) {
	path := setupActionTest(t)

	stdout, stderr := execAction(t, path, "list", "-o", "json")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}

	var actions []domain.ActionSpec
	if err := json.Unmarshal([]byte(stdout), &actions); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	var wipe *domain.ActionSpec
	for i := range actions {
		if actions[i].ID == "test_wipe" {
			wipe = &actions[i]
			break
		}
	}
	if wipe == nil {
		t.Fatalf("test_wipe missing from JSON output:\n%s", stdout)
	}
	if !wipe.Dangerous {
		t.Error("test_wipe should be dangerous")
	}
	if wipe.Kind != domain.KindExecutable {
		t.Errorf("test_wipe kind = %q, want %q", wipe.Kind, domain.KindExecutable)
	}
	if wipe.Fallback != "/opt/scratch/bin/scratch-wipe" {
		t.Errorf("test_wipe fallback = %q", wipe.Fallback)
	}
}

func TestList_PinnedFilter(t *testing.T) {
	path := setupActionTest(t)

	stdout, stderr := execAction(t, path, "pin", "test_greet")
	if stderr != "" {
		t.Fatalf("pin failed: %s", stderr)
	}
	if !strings.Contains(stdout, "test_greet pinned") {
		t.Errorf("expected pin confirmation, got: %s", stdout)
	}

	stdout, _ = execAction(t, path, "list", "--pinned")
	if !strings.Contains(stdout, "test_greet") {
		t.Errorf("expected pinned listing to contain test_greet, got:\n%s", stdout)
	}
	if strings.Contains(stdout, "test_wipe") {
		t.Errorf("unpinned action leaked into the pinned listing:\n%s", stdout)
	}

	stdout, _ = execAction(t, path, "unpin", "test_greet")
	if !strings.Contains(stdout, "test_greet unpinned") {
		t.Errorf("expected unpin confirmation, got: %s", stdout)
	}

	stdout, _ = execAction(t, path, "list", "--pinned")
	if !strings.Contains(stdout, "No actions found.") {
		t.Errorf("expected empty pinned listing, got:\n%s", stdout)
	}
}

func TestList_ConfiguredDefaultFormat(t *testing.T) {
	path := setupActionTest(t)

	cfg := &config.Config{OutputFormat: "json"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execAction(t, path, "list")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	var actions []domain.ActionSpec
	if err := json.Unmarshal([]byte(stdout), &actions); err != nil {
		t.Fatalf("expected JSON output when the configured default is json, got:\n%s", stdout)
	}
}

func TestList_UnsupportedFormat(t *testing.T) {
	path := setupActionTest(t)

	_, stderr := execAction(t, path, "list", "-o", "xml")

	if !strings.Contains(stderr, `unsupported output format "xml"`) {
		t.Errorf("expected format error, got: %s", stderr)
	}
}

func TestPin_UnknownAction(t *testing.T) {
	path := setupActionTest(t)

	_, stderr := execAction(t, path, "pin", "missing_action")

	if !strings.Contains(stderr, "unknown action") {
		t.Errorf("expected 'unknown action' error, got: %s", stderr)
	}
}
