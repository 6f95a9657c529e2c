package tui

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/audio"
	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
	"github.com/vovakirdan/skyflap/internal/registry"
	"github.com/vovakirdan/skyflap/internal/reward"
)

// PlayOptions configures one play screen.
type PlayOptions struct {
	Config    config.Config
	Seed      int64               // 0 picks a time-based seed
	Skin      string              // Skin ID, default registry.DefaultSkinID
	Account   string              // Reward account; empty plays without rewards
	SessionID string              // Ledger session ID; generated when empty
	Ledger    reward.Ledger       // Optional grant ledger
	Sound     *audio.SoundManager // Optional; nil plays silently
	Muted     bool
	Logger    *log.Logger
	Width     int // Initial terminal size
	Height    int
}

// Model is the Bubble Tea model for playing.
type Model struct {
	session *flappy.Session
	rewards *reward.Dispatcher
	sound   *audio.SoundManager
	logger  *log.Logger

	screen *core.Screen
	keys   KeyMap
	help   help.Model
	input  core.InputFrame

	skin     registry.Skin
	account  string
	soundOn  bool
	cellW    float64
	cellH    float64
	ground   float64
	tickRate int

	gen      int // Current tick chain
	paused   bool
	quitting bool
}

// NewModel creates a play model with an Idle session.
func NewModel(opts PlayOptions) Model {
	cfg := opts.Config
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.SessionID == "" {
		opts.SessionID = NewSessionID()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	skin, err := registry.Get(opts.Skin)
	if err != nil {
		skin = registry.Default()
	}

	dispatcher := reward.NewDispatcher(reward.Options{
		Account:   opts.Account,
		SessionID: opts.SessionID,
		Amount:    cfg.Rewards.Amount,
		QueueSize: cfg.Rewards.QueueSize,
		Ledger:    opts.Ledger,
		Logger:    opts.Logger.WithPrefix("reward"),
	})
	dispatcher.Start(context.Background())

	listeners := flappy.Listeners{
		flappy.ListenerFuncs{GameOver: func(g flappy.GameOver) {
			opts.Logger.Debug("game over", "score", g.Score, "high", g.HighScore, "cause", g.Cause)
		}},
	}
	soundOn := false
	if opts.Sound != nil {
		opts.Sound.SetEnabled(!opts.Muted)
		soundOn = !opts.Muted
		listeners = append(listeners, opts.Sound)
	}

	hookOpts := []flappy.Option{
		flappy.WithSeed(opts.Seed),
		flappy.WithListener(listeners),
		flappy.WithLogger(opts.Logger.WithPrefix("session")),
		flappy.WithAccount(opts.Account != ""),
	}
	if cfg.Rewards.Enabled {
		hookOpts = append(hookOpts, flappy.WithRewardHook(dispatcher))
	}

	m := Model{
		session:  flappy.NewSession(flappy.ParamsFromConfig(cfg), hookOpts...),
		rewards:  dispatcher,
		sound:    opts.Sound,
		logger:   opts.Logger,
		screen:   core.NewScreen(0, 0),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		skin:     skin,
		account:  opts.Account,
		soundOn:  soundOn,
		cellW:    cfg.Playfield.CellWidth,
		cellH:    cfg.Playfield.CellHeight,
		ground:   cfg.Playfield.GroundHeight,
		tickRate: cfg.Session.TickRate,
	}
	m.resize(opts.Width, opts.Height)
	return m
}

// NewSessionID returns a random identifier for ledger entries.
func NewSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.Action(msg))

	case tea.MouseMsg:
		return m.handleAction(MouseAction(msg))

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleAction applies presentation actions at once and queues
// simulation actions for the next tick.
func (m Model) handleAction(a core.Action) (tea.Model, tea.Cmd) {
	switch a {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionSound:
		if m.sound != nil {
			m.soundOn = m.sound.Toggle()
		}
	case core.ActionNextSkin, core.ActionPrevSkin:
		if m.session.State() == flappy.StateIdle {
			delta := 1
			if a == core.ActionPrevSkin {
				delta = -1
			}
			m.skin = registry.Cycle(m.skin.ID, delta)
		}
	case core.ActionPause:
		if m.session.State() != flappy.StateRunning {
			return m, nil
		}
		m.paused = !m.paused
		// A new chain on every toggle; ticks still in flight from the old one are dropped.
		m.gen++
		if !m.paused {
			return m, tickCmd(m.tickRate, m.gen)
		}
	case core.ActionActivate, core.ActionBack:
		m.input.Set(a)
	}
	return m, nil
}

// handleTick applies queued input and advances the simulation.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused {
		return m, nil
	}

	if m.input.Has(core.ActionBack) {
		m.session.Abort()
	}
	if m.input.Has(core.ActionActivate) {
		m.session.Activate()
	}
	m.input.Clear()

	m.session.Tick()
	return m, tickCmd(m.tickRate, m.gen)
}

// resize maps the terminal to a playfield. The last row holds the help bar.
func (m *Model) resize(width, height int) {
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	rows := max(height-1, 1)
	m.screen.Resize(width, rows)
	m.session.SetGeometry(flappy.GeometryForScreen(width, rows, m.cellW, m.cellH, m.ground))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen, flappy.View{
		Skin:    m.skin,
		CellW:   m.cellW,
		CellH:   m.cellH,
		Tokens:  m.rewards.Earned(),
		Account: m.account,
		SoundOn: m.soundOn,
	})
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ", core.ColorBrightYellow)
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session exposes the underlying session (read-only use).
func (m Model) Session() *flappy.Session {
	return m.session
}

// Skin returns the selected skin.
func (m Model) Skin() registry.Skin {
	return m.skin
}

// Paused reports whether the tick loop is frozen.
func (m Model) Paused() bool {
	return m.paused
}

// Close flushes pending reward grants.
func (m Model) Close() {
	m.rewards.Stop()
	if s := m.rewards.Stats(); s.Dropped > 0 || s.Failed > 0 {
		m.logger.Warn("some rewards were not recorded", "stats", s.String())
	}
}

// Run starts the Bubble Tea program for local play.
func Run(opts PlayOptions) error {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
