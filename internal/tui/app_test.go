package tui

import (
	"testing"

	"github.com/Advait-MD/Conductor/internal/domain"
)

func TestAnswerConfirm_DrainsQueueInOrder(t *testing.T) {
	first := confirmRequestMsg{label: "one", reply: make(chan bool, 1)}
	second := confirmRequestMsg{label: "two", reply: make(chan bool, 1)}

	m := appModel{}
	m.confirmReq = &first
	m.confirmQueue = []confirmRequestMsg{second}

	m.answerConfirm(true)
	if got := <-first.reply; !got {
		t.Error("expected first request approved")
	}
	if m.confirmReq == nil || m.confirmReq.label != "two" {
		t.Fatalf("expected second request to surface, got %+v", m.confirmReq)
	}

	m.answerConfirm(false)
	if got := <-second.reply; got {
		t.Error("expected second request declined")
	}
	if m.confirmReq != nil {
		t.Errorf("expected no pending request, got %+v", m.confirmReq)
	}
}

func TestAnswerConfirm_NoPendingIsNoop(t *testing.T) {
	m := appModel{}
	m.answerConfirm(true)

	if m.confirmReq != nil {
		t.Errorf("expected nil request, got %+v", m.confirmReq)
	}
}

func TestPaneWidths_FillWindow(t *testing.T) {
	for _, width := range []int{40, 60, 80, 120, 200} {
		m := appModel{width: width}
		listW, outputW := m.paneWidths()

		if listW+outputW+1 != width {
			t.Errorf("width %d: panes %d+%d+1 do not fill window", width, listW, outputW)
		}
		if listW < 10 {
			t.Errorf("width %d: list pane too narrow (%d)", width, listW)
		}
	}
}

func TestClampCursors(t *testing.T) {
	m := appModel{
		actions: []domain.ActionSpec{{ID: "a"}, {ID: "b"}},
		lineups: []domain.Lineup{{Name: "x"}},
	}
	m.cursors[tabActions] = 5
	m.cursors[tabLineups] = 3

	m.clampCursors()

	if m.cursors[tabActions] != 1 {
		t.Errorf("expected action cursor clamped to 1, got %d", m.cursors[tabActions])
	}
	if m.cursors[tabLineups] != 0 {
		t.Errorf("expected lineup cursor clamped to 0, got %d", m.cursors[tabLineups])
	}
}

func TestItemCount_FollowsTab(t *testing.T) {
	m := appModel{
		actions: []domain.ActionSpec{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		lineups: []domain.Lineup{{Name: "x"}},
	}

	m.tab = tabActions
	if got := m.itemCount(); got != 3 {
		t.Errorf("expected 3 actions, got %d", got)
	}

	m.tab = tabLineups
	if got := m.itemCount(); got != 1 {
		t.Errorf("expected 1 lineup, got %d", got)
	}
}
