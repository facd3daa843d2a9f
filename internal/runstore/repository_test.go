package runstore

import (
	"path/filepath"
	"testing"
	"time"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conductor.db")
	r, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func intPtr(v int) *int { return &v }

func TestSave_Insert(t *testing.T) {
	r := tempRepo(t)

	record := &RunRecord{
		ActionID: "open_vscode",
		Label:    "Open VS Code",
		Kind:     "executable",
		Status:   "running",
	}

	if err := r.Save(record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if record.ID == 0 {
		t.Error("expected ID to be assigned after insert")
	}
	if record.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestSave_UpdateToTerminal(t *testing.T) {
	r := tempRepo(t)

	record := &RunRecord{ActionID: "open_vscode", Status: "running"}
	if err := r.Save(record); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	record.Status = "success"
	record.ExitCode = intPtr(0)
	record.LineCount = 12
	record.OutputTail = "done"
	record.FinishedAt = time.Now().UTC()
	if err := r.Save(record); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := r.Get(record.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != "success" {
		t.Errorf("status = %q, want success", got.Status)
	}
	if got.ExitCode == nil || *got.ExitCode != 0 {
		t.Errorf("exit code = %v, want 0", got.ExitCode)
	}
	if got.LineCount != 12 {
		t.Errorf("line count = %d, want 12", got.LineCount)
	}
	if got.FinishedAt.IsZero() {
		t.Error("expected FinishedAt to survive the round trip")
	}
}

func TestSave_UpdateNotFound(t *testing.T) {
	r := tempRepo(t)

	record := &RunRecord{ID: 999, ActionID: "x", Status: "success"}
	if err := r.Save(record); err == nil {
		t.Fatal("expected error updating non-existent record")
	}
}

func TestGet_NotFound(t *testing.T) {
	r := tempRepo(t)

	got, err := r.Get(999)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for non-existent record, got %+v", got)
	}
}

func TestExitCodeNullRoundTrip(t *testing.T) {
	r := tempRepo(t)

	// A cancelled run never spawned a process: exit code stays NULL.
	record := &RunRecord{ActionID: "wifi_off", Status: "cancelled"}
	if err := r.Save(record); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := r.Get(record.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ExitCode != nil {
		t.Errorf("exit code = %d, want nil", *got.ExitCode)
	}
}

func TestListRecent(t *testing.T) {
	r := tempRepo(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		record := &RunRecord{
			ActionID:  "a",
			Status:    "success",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := r.Save(record); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := r.ListRecent(3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].StartedAt.After(got[i-1].StartedAt) {
			t.Error("expected newest-first ordering")
		}
	}
}

func TestListByAction(t *testing.T) {
	r := tempRepo(t)

	for _, id := range []string{"a", "b", "a", "c", "a"} {
		if err := r.Save(&RunRecord{ActionID: id, Status: "success"}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	got, err := r.ListByAction("a", 10)
	if err != nil {
		t.Fatalf("ListByAction failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records for action a, got %d", len(got))
	}
	for _, record := range got {
		if record.ActionID != "a" {
			t.Errorf("unexpected action %q in filtered list", record.ActionID)
		}
	}
}

func TestDeleteOlderThan(t *testing.T) {
	r := tempRepo(t)

	old := &RunRecord{
		ActionID:  "old",
		Status:    "success",
		StartedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	fresh := &RunRecord{ActionID: "fresh", Status: "success"}
	stillRunning := &RunRecord{
		ActionID:  "running",
		Status:    "running",
		StartedAt: time.Now().UTC().Add(-48 * time.Hour),
	}
	for _, record := range []*RunRecord{old, fresh, stillRunning} {
		if err := r.Save(record); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	removed, err := r.DeleteOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	// Running records are never pruned, however old.
	got, err := r.Get(stillRunning.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Error("running record was pruned")
	}
}
