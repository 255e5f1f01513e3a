package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func newTestModel(t *testing.T, store *storage.Store) (Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	sim, err := pong.New(config.Default(), clock)
	if err != nil {
		t.Fatalf("pong.New() failed: %v", err)
	}
	m := NewModel(sim, Options{
		Store:         store,
		Clock:         clock,
		Width:         80,
		Height:        25,
		ScreenshotDir: t.TempDir(),
	})
	return m, clock
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// advance executes cmd, which must produce a frame, and feeds the result back.
func advance(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a step command")
	}
	msg, ok := cmd().(FrameMsg)
	if !ok {
		t.Fatal("step command should produce a FrameMsg")
	}
	updated, next := m.Update(msg)
	return updated.(Model), next
}

func TestHeldKeys(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var h heldKeys

	if in := h.input(t0); in.MoveLeft || in.MoveRight {
		t.Error("nothing should be held initially")
	}

	h.pressLeft(t0)
	if in := h.input(t0.Add(holdWindow / 2)); !in.MoveLeft || in.MoveRight {
		t.Errorf("left should be held, got %+v", in)
	}
	if in := h.input(t0.Add(holdWindow + time.Millisecond)); in.MoveLeft {
		t.Error("left should expire after the hold window")
	}

	h.pressRight(t0)
	if in := h.input(t0); in.MoveLeft || !in.MoveRight {
		t.Errorf("pressing right should release left, got %+v", in)
	}

	h.release()
	if in := h.input(t0); in.MoveLeft || in.MoveRight {
		t.Error("release should clear both directions")
	}
}

func TestModelSteps(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, next := advance(t, m, m.Init())
	if m.Frame().Tick != 1 {
		t.Errorf("tick = %d, expected 1", m.Frame().Tick)
	}
	if m.Frame().Delta != 0 {
		t.Errorf("first frame delta = %v, expected 0", m.Frame().Delta)
	}

	m, _ = advance(t, m, next)
	if m.Frame().Tick != 2 {
		t.Errorf("tick = %d, expected 2", m.Frame().Tick)
	}
	want := (time.Second / 60).Seconds()
	if m.Frame().Delta != want {
		t.Errorf("paced delta = %v, expected %v", m.Frame().Delta, want)
	}
}

func TestModelLeftKeyFeedsInput(t *testing.T) {
	m, _ := newTestModel(t, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = updated.(Model)

	msg := m.step()().(FrameMsg)
	if !msg.Input.MoveLeft || msg.Input.MoveRight {
		t.Errorf("input = %+v, expected left only", msg.Input)
	}
}

func TestModelIgnoresStaleFrames(t *testing.T) {
	m, _ := newTestModel(t, nil)
	before := m.Frame()

	stale := FrameMsg{Game: m.game + 1, Frame: pong.Frame{Tick: 99, Score: 7}}
	updated, cmd := m.Update(stale)
	m = updated.(Model)

	if m.Frame() != before {
		t.Error("a frame from another session should not be applied")
	}
	if cmd == nil {
		t.Error("the frame loop should continue after a stale frame")
	}
}

func TestModelQuitSavesReplay(t *testing.T) {
	store := openStore(t)
	m, _ := newTestModel(t, store)

	cmd := m.Init()
	for range 5 {
		m, cmd = advance(t, m, cmd)
	}

	updated, quit := m.Update(runeKey('q'))
	m = updated.(Model)
	if quit == nil {
		t.Fatal("q should return a quit command")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}

	ids := m.SavedReplays()
	if len(ids) != 1 {
		t.Fatalf("saved %d replays, expected 1", len(ids))
	}
	rep, err := store.Replay(ids[0])
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if len(rep.Frames) != 5 {
		t.Errorf("recorded %d frames, expected 5", len(rep.Frames))
	}

	res, err := replay.Verify(rep)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if !res.OK() {
		t.Errorf("session replay should verify: expected %x, got %x", res.Expected, res.Actual)
	}
}

func TestModelRestartAfterLoss(t *testing.T) {
	store := openStore(t)
	m, _ := newTestModel(t, store)

	// Restart is disabled while running.
	updated, _ := m.Update(runeKey('r'))
	m = updated.(Model)
	if m.game != 0 {
		t.Fatal("restart should be ignored while running")
	}

	lost := m.Frame()
	lost.Tick = 1
	lost.Status = pong.StatusLost
	updated, _ = m.Update(FrameMsg{Game: m.game, Frame: lost})
	m = updated.(Model)
	if !m.keys.Restart.Enabled() {
		t.Fatal("restart should be enabled once the game is lost")
	}

	updated, _ = m.Update(runeKey('r'))
	m = updated.(Model)
	if m.game != 1 {
		t.Errorf("game generation = %d, expected 1", m.game)
	}
	if m.Frame().Status != pong.StatusRunning || m.Frame().Tick != 0 {
		t.Errorf("restart should return to the initial frame, got %+v", m.Frame())
	}
	if len(m.SavedReplays()) != 1 {
		t.Errorf("the lost game should be saved on restart")
	}
	if m.keys.Restart.Enabled() {
		t.Error("restart should be disabled again")
	}
}

func TestModelScreenshot(t *testing.T) {
	m, _ := newTestModel(t, nil)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)

	entries, err := os.ReadDir(m.screenshotDir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 screenshot, got %d", len(entries))
	}
	data, err := os.ReadFile(filepath.Join(m.screenshotDir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "SCORE 0") {
		t.Error("screenshot should contain the score line")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t, nil)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)

	if m.screen.Width() != 100 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 100x39", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	m, _ := newTestModel(t, nil)

	view := m.View()
	if !strings.Contains(view, "SCORE 0") {
		t.Error("view should show the score")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view should show the help bar")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetColored(5, 2, '#', core.ColorCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("first line %q lost its text", lines[0])
	}
	if !strings.Contains(lines[2], "#") {
		t.Errorf("last line %q lost its cell", lines[2])
	}
}
