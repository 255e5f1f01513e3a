package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

func seedReplays(t *testing.T, store *storage.Store, n int) {
	t.Helper()
	sim, err := pong.New(config.Default(), nil)
	if err != nil {
		t.Fatalf("pong.New() failed: %v", err)
	}
	for range n {
		rec := replay.NewRecorder()
		f := sim.Initial()
		for range 30 {
			f = sim.Advance(f, pong.Input{MoveRight: true}, 1.0/60)
			rec.Record(pong.Input{MoveRight: true}, f)
		}
		rep, err := rec.Build(sim.Config())
		if err != nil {
			t.Fatalf("Build() failed: %v", err)
		}
		if _, err := store.SaveReplay(rep); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID() = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID() = %q", got)
	}
}

func TestReplaysModelEmpty(t *testing.T) {
	m := NewReplaysModel(openStore(t), nil, 80, 24)

	if !strings.Contains(m.View(), "No replays recorded yet") {
		t.Error("empty store should show the empty message")
	}

	// Actions on an empty table are no-ops.
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ReplaysModel)
	if m.notice != "" {
		t.Errorf("notice = %q, expected none", m.notice)
	}
}

func TestReplaysModelVerifyAndDelete(t *testing.T) {
	store := openStore(t)
	seedReplays(t, store, 2)

	m := NewReplaysModel(store, nil, 80, 24)
	if !strings.Contains(m.View(), "REPLAYS (2)") {
		t.Error("title should count stored replays")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(ReplaysModel)
	if !strings.Contains(m.notice, "verified") {
		t.Errorf("notice = %q, expected a verified message", m.notice)
	}

	updated, _ = m.Update(runeKey('x'))
	m = updated.(ReplaysModel)
	if len(m.replays) != 1 {
		t.Errorf("expected 1 replay after delete, got %d", len(m.replays))
	}
	list, err := store.ListReplays(10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("store holds %d replays, expected 1", len(list))
	}
}

func TestReplaysModelQuit(t *testing.T) {
	m := NewReplaysModel(openStore(t), nil, 80, 24)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(ReplaysModel)
	if cmd == nil {
		t.Error("esc should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
