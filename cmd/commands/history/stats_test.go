package history

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStats_Summary(t *testing.T) {
	setupHistoryTest(t)
	seedRuns(t)

	stdout, stderr := execHistory(t, "stats")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{
		"Total runs: 3",
		"success: 1  failed: 1  cancelled: 0  dry-run: 1",
		"Most-run actions:",
		"open_vscode",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected stats to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestStats_Empty(t *testing.T) {
	setupHistoryTest(t)

	stdout, stderr := execHistory(t, "stats")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "No runs recorded.") {
		t.Errorf("expected empty-history message, got:\n%s", stdout)
	}
}

func TestStats_DaysValidation(t *testing.T) {
	setupHistoryTest(t)

	_, stderr := execHistory(t, "stats", "--days", "0")

	if !strings.Contains(stderr, "days must be greater than 0") {
		t.Errorf("expected days validation error, got: %s", stderr)
	}
}

func TestTopActions(t *testing.T) {
	counts := map[string]int{
		"open_vscode":    5,
		"wifi_off":       2,
		"open_spotify":   5,
		"open_downloads": 1,
	}

	got := topActions(counts, 3)

	want := []actionCount{
		{id: "open_spotify", count: 5},
		{id: "open_vscode", count: 5},
		{id: "wifi_off", count: 2},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(actionCount{})); diff != "" {
		t.Errorf("topActions mismatch (-want +got):\n%s", diff)
	}
}
