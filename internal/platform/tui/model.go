package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Options configures a game session.
type Options struct {
	Store         *storage.Store // Nil disables replay recording
	Logger        *log.Logger
	Clock         pong.Clock // Must be the clock the simulator paces with
	Width         int
	Height        int
	ScreenshotDir string // Defaults to ~/.pong/screenshots
}

// Model is the Bubble Tea model for a Pong session.
type Model struct {
	sim    *pong.Simulator
	clock  pong.Clock
	frame  pong.Frame
	game   int
	rec    *replay.Recorder
	store  *storage.Store
	logger *log.Logger

	screen        *core.Screen
	screenshotDir string
	keys          KeyMap
	help          help.Model
	held          heldKeys
	notice        string
	saved         []string
	quitting      bool
}

// NewModel creates a session model for sim.
func NewModel(sim *pong.Simulator, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = pong.SystemClock{}
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}

	h := help.New()
	h.Width = width

	return Model{
		sim:           sim,
		clock:         clock,
		frame:         sim.Initial(),
		rec:           replay.NewRecorder(),
		store:         opts.Store,
		logger:        logger,
		screen:        core.NewScreen(width, fieldHeight(height)),
		screenshotDir: opts.ScreenshotDir,
		keys:          DefaultKeyMap(),
		help:          h,
	}
}

// fieldHeight leaves the last terminal row for the help bar.
func fieldHeight(termHeight int) int {
	return max(termHeight-1, 0)
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.logger.Info("session started", "fps", m.sim.Config().Timing.FPS)
	return m.step()
}

func (m Model) step() tea.Cmd {
	return stepCmd(m.sim, m.game, m.frame, m.held.input(m.clock.Now()))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, fieldHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.saveReplay()
		m.logger.Info("session ended", "score", m.frame.Score, "status", m.frame.Status)
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()

	case key.Matches(msg, m.keys.Restart):
		m.restart()

	case key.Matches(msg, m.keys.Left):
		m.held.pressLeft(m.clock.Now())

	case key.Matches(msg, m.keys.Right):
		m.held.pressRight(m.clock.Now())
	}

	return m, nil
}

func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	// A step requested before a restart belongs to the old session.
	if msg.Game != m.game {
		return m, m.step()
	}

	prev := m.frame
	m.frame = msg.Frame
	m.rec.Record(msg.Input, msg.Frame)

	if prev.Status == pong.StatusRunning && m.frame.Status == pong.StatusLost {
		m.logger.Info("game lost", "score", m.frame.Score, "tick", m.frame.Tick)
		m.keys.Restart.SetEnabled(true)
		m.held.release()
	}

	return m, m.step()
}

// restart saves the finished session and starts a fresh one.
func (m *Model) restart() {
	m.saveReplay()
	m.game++
	m.frame = m.sim.Initial()
	m.rec = replay.NewRecorder()
	m.held.release()
	m.notice = ""
	m.keys.Restart.SetEnabled(false)
	m.logger.Info("new game")
}

// saveReplay stores the current recording, once.
func (m *Model) saveReplay() {
	if m.store == nil || m.rec.Len() == 0 {
		return
	}
	rep, err := m.rec.Build(m.sim.Config())
	if err != nil {
		m.logger.Error("could not build replay", "error", err)
		return
	}
	id, err := m.store.SaveReplay(rep)
	if err != nil {
		m.logger.Error("could not save replay", "error", err)
		return
	}
	m.saved = append(m.saved, id)
	m.rec = replay.NewRecorder()
	m.logger.Info("replay saved", "id", id, "frames", len(rep.Frames), "status", rep.FinalStatus)
}

// saveScreenshot writes the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.sim.Render(m.frame, m.screen)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot skipped", "error", err)
			return
		}
		dir = filepath.Join(home, ".pong", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("pong_%s_%d.txt", m.clock.Now().Format("20060102_150405"), m.frame.Tick)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.notice = "saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

// Frame returns the most recent simulation frame.
func (m Model) Frame() pong.Frame {
	return m.frame
}

// SavedReplays returns the IDs of replays stored during the session.
func (m Model) SavedReplays() []string {
	return m.saved
}

// View renders the current frame and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.sim.Render(m.frame, m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	if m.notice != "" {
		b.WriteString("  ")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	return b.String()
}

// Run starts the Bubble Tea program and returns the final model.
func Run(sim *pong.Simulator, opts Options) (Model, error) {
	p := tea.NewProgram(
		NewModel(sim, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("tui: unexpected model %T", final)
	}
	return m, nil
}
