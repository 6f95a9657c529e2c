package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/config"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel(PlayOptions{
		Config: config.DefaultConfig(),
		Seed:   1,
		Logger: log.New(io.Discard),
		Width:  80,
		Height: 25,
	})
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestActivateAppliedOnTick(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, space)
	if m.Session().State() != flappy.StateIdle {
		t.Fatal("key press should only queue the activate input")
	}

	m, cmd := update(t, m, TickMsg{Gen: m.gen})
	if m.Session().State() != flappy.StateRunning {
		t.Errorf("state after tick = %v, expected running", m.Session().State())
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestMousePressActivates(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	if m.Session().State() != flappy.StateRunning {
		t.Errorf("state = %v, expected running after click", m.Session().State())
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, space)
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	pause := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}
	m, _ = update(t, m, pause)
	if !m.Paused() {
		t.Fatal("p should pause a running game")
	}

	ticks := m.Session().Ticks()
	m, cmd := update(t, m, TickMsg{Gen: m.gen})
	if cmd != nil || m.Session().Ticks() != ticks {
		t.Error("paused model should not tick")
	}

	m, cmd = update(t, m, pause)
	if cmd == nil {
		t.Fatal("resume should start a new tick chain")
	}
	m, cmd = update(t, m, TickMsg{Gen: 0})
	if cmd != nil || m.Session().Ticks() != ticks {
		t.Error("tick from the old chain should be dropped")
	}

	m, _ = update(t, m, TickMsg{Gen: m.gen})
	if m.Session().Ticks() != ticks+1 {
		t.Errorf("Ticks() = %d, expected %d", m.Session().Ticks(), ticks+1)
	}
}

func TestSkinCyclesOnlyWhenIdle(t *testing.T) {
	m := newTestModel(t)
	right := tea.KeyMsg{Type: tea.KeyRight}

	m, _ = update(t, m, right)
	if m.Skin().ID != "pigu" {
		t.Errorf("skin after right = %q, expected pigu", m.Skin().ID)
	}

	m, _ = update(t, m, space)
	m, _ = update(t, m, TickMsg{Gen: m.gen})
	m, _ = update(t, m, right)
	if m.Skin().ID != "pigu" {
		t.Errorf("skin changed while running: %q", m.Skin().ID)
	}
}

func TestBackReturnsToTitle(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, space)
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	if m.Session().State() != flappy.StateIdle {
		t.Errorf("state = %v, expected idle", m.Session().State())
	}
}

func TestResizeUpdatesGeometry(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 31})

	g := m.Session().Geometry()
	if g.Width != 1000 || g.Height != 750 {
		t.Errorf("geometry = %+v, expected 1000x750", g)
	}
}

func TestViewAndQuit(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, TickMsg{Gen: m.gen})

	if !strings.Contains(m.View(), "S K Y F L A P") {
		t.Error("title screen should be visible")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should return a quit command")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}
