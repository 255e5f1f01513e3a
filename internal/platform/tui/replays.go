package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/replay"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

const maxReplays = 100

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Verify, k.Delete, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "verify"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for browsing stored replays.
type ReplaysModel struct {
	store    *storage.Store
	logger   *log.Logger
	replays  []storage.ReplaySummary
	table    table.Model
	help     help.Model
	keys     ReplaysKeyMap
	notice   string
	width    int
	height   int
	quitting bool
}

// NewReplaysModel creates a replay browser over store.
func NewReplaysModel(store *storage.Store, logger *log.Logger, width, height int) ReplaysModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = width

	m := ReplaysModel{
		store:  store,
		logger: logger,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Frames", Width: 8},
		{Title: "Length", Width: 8},
		{Title: "Result", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *ReplaysModel) load() {
	list, err := m.store.ListReplays(maxReplays)
	if err != nil {
		m.logger.Error("could not list replays", "error", err)
		m.notice = "could not load replays"
		list = nil
	}
	m.replays = list
	m.updateRows()
}

func (m *ReplaysModel) updateRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = replayRow(r)
	}
	m.table.SetRows(rows)
}

func replayRow(r storage.ReplaySummary) table.Row {
	return table.Row{
		ShortID(r.ID),
		fmt.Sprintf("%d", r.FrameCount),
		fmt.Sprintf("%.1fs", r.Duration.Seconds()),
		r.FinalStatus,
		r.CreatedAt.Local().Format("Jan 02 15:04"),
	}
}

// ShortID trims a replay ID for display. Any unique prefix resolves.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (m ReplaysModel) selected() (storage.ReplaySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplaySummary{}, false
	}
	return m.replays[i], true
}

// Init initializes the browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ReplaysModel) verifySelected() {
	sel, ok := m.selected()
	if !ok {
		return
	}
	rep, err := m.store.Replay(sel.ID)
	if err != nil {
		m.notice = err.Error()
		return
	}
	res, err := replay.Verify(rep)
	if err != nil {
		m.notice = err.Error()
		return
	}
	if res.OK() {
		m.notice = fmt.Sprintf("%s verified: score %d after %d frames", ShortID(sel.ID), res.Final.Score, res.Frames)
	} else {
		m.notice = fmt.Sprintf("%s MISMATCH: expected %016x, got %016x", ShortID(sel.ID), res.Expected, res.Actual)
	}
	m.logger.Info("replay verified", "id", sel.ID, "ok", res.OK())
}

func (m *ReplaysModel) deleteSelected() {
	sel, ok := m.selected()
	if !ok {
		return
	}
	if err := m.store.DeleteReplay(sel.ID); err != nil && !errors.Is(err, storage.ErrReplayNotFound) {
		m.notice = err.Error()
		return
	}
	m.notice = "deleted " + ShortID(sel.ID)
	m.load()
}

// View renders the browser.
func (m ReplaysModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(fmt.Sprintf("REPLAYS (%d)", len(m.replays))))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No replays recorded yet.\nRun 'pong play' to record one.")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// RunReplays runs the replay browser.
func RunReplays(store *storage.Store, logger *log.Logger, width, height int) error {
	p := tea.NewProgram(
		NewReplaysModel(store, logger, width, height),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
