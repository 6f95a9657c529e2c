package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/registry"
)

func TestRenderIdleShowsTitleAndSkin(t *testing.T) {
	s := newTestSession()
	s.Tick()
	screen := core.NewScreen(80, 24)
	skin, _ := registry.Get("pigu")

	s.Render(screen, View{Skin: skin, CellW: 10, CellH: 25, SoundOn: true})

	out := screen.String()
	if !strings.Contains(out, "S K Y F L A P") {
		t.Error("idle screen should show the title")
	}
	if !strings.Contains(out, "Pigu") {
		t.Error("idle screen should show the selected skin")
	}
}

func TestRenderRunningDrawsActor(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.Tick()
	screen := core.NewScreen(80, 24)
	skin := registry.Default()

	s.Render(screen, View{Skin: skin, CellW: 10, CellH: 25, SoundOn: true})

	// Actor at x=100, y=300.6 covers columns 10-13 starting at row 12.
	if got := screen.Get(10, 12); got != skin.Glyph {
		t.Errorf("cell (10,12) = %q, expected actor glyph %q", got, skin.Glyph)
	}
	if got := screen.Get(0, 23); got != GroundChar {
		t.Errorf("bottom row = %q, expected ground", got)
	}
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing from row 0: %q", screen.Row(0))
	}
}

func TestRenderGameOverShowsTokens(t *testing.T) {
	s := newTestSession()
	s.Start()
	s.score = 3
	s.end(CauseCollision)
	screen := core.NewScreen(80, 24)

	s.Render(screen, View{Skin: registry.Default(), Account: "alice", Tokens: 3, SoundOn: false})

	out := screen.String()
	for _, want := range []string{"GAME OVER", "Best: 3", "Tokens earned: 3", "[muted]"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over screen missing %q", want)
		}
	}
}
