package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/highcard/internal/game"
	"github.com/lox/highcard/internal/pacing"
)

// historyLimit caps how many round lines are kept for the history pane
const historyLimit = 50

// screen is what the player is currently looking at. It combines the
// engine phase with the presentation state the engine knows nothing about.
type screen int

const (
	screenSetup    screen = iota
	screenReveal          // cards dealt face down
	screenResult          // round revealed, match undecided
	screenFlipping        // cards turning back before the next deal
	screenDeciding        // deciding round shown, modal pending
	screenModal           // match-end modal
)

// flipDoneMsg arrives when the flip delay has elapsed
type flipDoneMsg struct{ generation uint64 }

// matchEndMsg arrives when the match-end delay has elapsed
type matchEndMsg struct{ generation uint64 }

// Options configures a Model
type Options struct {
	Engine         *game.Engine
	Pacer          *pacing.Pacer
	Logger         *log.Logger
	OfferedTargets []int
	InitialTarget  int
	TestMode       bool
}

// Model is the Bubble Tea model for the high-card table. It holds no rule
// logic; every scoring decision is made by the engine.
type Model struct {
	engine    *game.Engine
	pacer     *pacing.Pacer
	logger    *log.Logger
	formatter *game.EventFormatter

	keys keyMap
	help help.Model

	targets  []int
	selected int

	// Presentation state
	flipping   bool
	showModal  bool
	generation uint64 // bumped whenever a match starts or is abandoned
	pending    *pacing.Pending
	history    []string

	// Dimensions
	width  int
	height int

	quitting bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// New creates a model over an engine. The model subscribes to the engine's
// events to build the round history.
func New(opts Options) *Model {
	if opts.Engine == nil {
		panic("engine is required for the TUI model")
	}
	if opts.Pacer == nil {
		opts.Pacer = pacing.New(nil, pacing.DefaultDelays())
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if len(opts.OfferedTargets) == 0 {
		opts.OfferedTargets = []int{3, 5, 10}
	}

	selected := 0
	for i, target := range opts.OfferedTargets {
		if target == opts.InitialTarget {
			selected = i
		}
	}

	m := &Model{
		engine:    opts.Engine,
		pacer:     opts.Pacer,
		logger:    opts.Logger.WithPrefix("tui"),
		formatter: game.NewEventFormatter(game.FormattingOptions{}),
		keys:      newKeyMap(opts.OfferedTargets),
		help:      help.New(),
		targets:   opts.OfferedTargets,
		selected:  selected,
		testMode:  opts.TestMode,
	}
	m.engine.Events().Subscribe(m)
	m.keys.setScreen(m.screen())
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// OnEvent records engine events in the round history
func (m *Model) OnEvent(event game.GameEvent) {
	if text := m.formatter.Format(event); text != "" {
		m.addHistory(text)
	}
}

func (m *Model) addHistory(entry string) {
	m.history = append(m.history, entry)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
	}
}

// screen derives the current screen from engine and presentation state
func (m *Model) screen() screen {
	snap := m.engine.Snapshot()
	switch snap.Phase {
	case game.PhasePlaying:
		switch {
		case m.flipping:
			return screenFlipping
		case snap.Round.Revealed:
			return screenResult
		default:
			return screenReveal
		}
	case game.PhaseEnded:
		if m.showModal {
			return screenModal
		}
		return screenDeciding
	default:
		return screenSetup
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case flipDoneMsg:
		cmd = m.handleFlipDone(msg)

	case matchEndMsg:
		m.handleMatchEnd(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}

	m.keys.setScreen(m.screen())
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancelPending()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Reset):
		m.resetToSetup()
		return nil
	}

	switch m.screen() {
	case screenSetup:
		return m.handleSetupKey(msg)
	case screenReveal:
		if key.Matches(msg, m.keys.Reveal, m.keys.Continue) {
			return m.reveal()
		}
	case screenResult:
		if key.Matches(msg, m.keys.Next, m.keys.Continue) {
			return m.beginFlip()
		}
	case screenModal:
		switch {
		case key.Matches(msg, m.keys.Menu):
			m.resetToSetup()
		case key.Matches(msg, m.keys.Again):
			return m.startMatch(m.engine.Snapshot().Match.TargetWins)
		}
	}
	// Flipping and deciding screens swallow input until their delay fires
	return nil
}

func (m *Model) handleSetupKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected < len(m.targets)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Start):
		return m.startMatch(m.targets[m.selected])
	default:
		for i, binding := range m.keys.Targets {
			if key.Matches(msg, binding) {
				m.selected = i
				return m.startMatch(m.targets[i])
			}
		}
	}
	return nil
}

func (m *Model) startMatch(target int) tea.Cmd {
	m.abandonPresentation()
	m.history = nil
	if err := m.engine.StartMatch(target); err != nil {
		m.logger.Error("Failed to start match", "target", target, "error", err)
		return nil
	}
	for i, t := range m.targets {
		if t == target {
			m.selected = i
		}
	}
	return nil
}

func (m *Model) resetToSetup() {
	m.abandonPresentation()
	m.engine.ResetToSetup()
}

// abandonPresentation cancels delays and invalidates any message already in
// flight, so a timer from an old match can never act on a new one.
func (m *Model) abandonPresentation() {
	m.cancelPending()
	m.generation++
	m.flipping = false
	m.showModal = false
}

func (m *Model) cancelPending() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}

func (m *Model) reveal() tea.Cmd {
	if _, err := m.engine.RevealRound(); err != nil {
		m.logger.Debug("Reveal ignored", "error", err)
		return nil
	}
	if m.engine.Phase() == game.PhaseEnded {
		return m.wait(pacing.MatchEnd, matchEndMsg{generation: m.generation})
	}
	return nil
}

func (m *Model) beginFlip() tea.Cmd {
	m.flipping = true
	return m.wait(pacing.Flip, flipDoneMsg{generation: m.generation})
}

func (m *Model) handleFlipDone(msg flipDoneMsg) tea.Cmd {
	if msg.generation != m.generation || !m.flipping {
		m.logger.Debug("Dropping stale flip", "generation", msg.generation, "current", m.generation)
		return nil
	}
	m.flipping = false
	m.pending = nil
	if err := m.engine.AdvanceRound(); err != nil {
		m.logger.Debug("Advance ignored", "error", err)
	}
	return nil
}

func (m *Model) handleMatchEnd(msg matchEndMsg) {
	if msg.generation != m.generation || m.engine.Phase() != game.PhaseEnded {
		m.logger.Debug("Dropping stale match end", "generation", msg.generation, "current", m.generation)
		return
	}
	m.pending = nil
	m.showModal = true
}

// wait schedules msg for delivery once the delay for kind has elapsed. A
// stopped delay still releases the command, and the stale generation makes
// the message a no-op.
func (m *Model) wait(kind pacing.Kind, msg tea.Msg) tea.Cmd {
	m.cancelPending()
	pe := m.pacer.After(kind)
	m.pending = pe
	return func() tea.Msg {
		<-pe.Done()
		return msg
	}
}

// Snapshot exposes the engine state, mainly for tests
func (m *Model) Snapshot() game.Snapshot {
	return m.engine.Snapshot()
}

// Selected returns the target currently highlighted on the setup screen
func (m *Model) Selected() int {
	return m.targets[m.selected]
}

// ModalVisible reports whether the match-end modal is showing
func (m *Model) ModalVisible() bool {
	return m.showModal
}

// Flipping reports whether cards are turning before the next deal
func (m *Model) Flipping() bool {
	return m.flipping
}

// History returns a copy of the round history
func (m *Model) History() []string {
	out := make([]string, len(m.history))
	copy(out, m.history)
	return out
}

// GetCapturedLog returns the captured history entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}
