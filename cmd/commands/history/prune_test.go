package history

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Advait-MD/Conductor/internal/runstore"
)

func TestPrune_RemovesOldTerminalRuns(t *testing.T) {
	setupHistoryTest(t)
	repo := openStore(t)
	now := time.Now().UTC()

	saveRun(t, repo, runstore.RunRecord{
		ActionID:   "open_vscode",
		Status:     "success",
		StartedAt:  now.Add(-40 * 24 * time.Hour),
		FinishedAt: now.Add(-40 * 24 * time.Hour),
	})
	// Still-running entries are kept no matter how old.
	saveRun(t, repo, runstore.RunRecord{
		ActionID:  "open_spotify",
		Status:    "running",
		StartedAt: now.Add(-40 * 24 * time.Hour),
	})
	saveRun(t, repo, runstore.RunRecord{
		ActionID:   "wifi_off",
		Status:     "failed",
		StartedAt:  now.Add(-time.Hour),
		FinishedAt: now.Add(-time.Hour),
	})

	stdout, stderr := execHistory(t, "prune", "--older-than", "30d")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "Removed 1 run(s).") {
		t.Errorf("expected one removal, got: %s", stdout)
	}

	records, err := repo.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	var left []string
	for _, r := range records {
		left = append(left, r.ActionID)
	}
	want := []string{"wifi_off", "open_spotify"}
	if diff := cmp.Diff(want, left); diff != "" {
		t.Errorf("surviving runs mismatch (-want +got):\n%s", diff)
	}
}

func TestPrune_RequiresOlderThan(t *testing.T) {
	setupHistoryTest(t)

	_, stderr := execHistory(t, "prune")

	if !strings.Contains(stderr, "--older-than is required") {
		t.Errorf("expected missing-flag error, got: %s", stderr)
	}
}

func TestPrune_InvalidDuration(t *testing.T) {
	setupHistoryTest(t)

	_, stderr := execHistory(t, "prune", "--older-than", "soon")

	if !strings.Contains(stderr, "invalid duration") {
		t.Errorf("expected 'invalid duration' error, got: %s", stderr)
	}
}
