package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/registry"
)

// Visual elements
const (
	ObstacleChar    = '█'
	ObstacleCapChar = '▀'
	ObstacleLipChar = '▄'
	GroundChar      = '▒'
	GroundTopChar   = '▔'
)

// View carries the presentation-only state drawn around the simulation.
type View struct {
	Skin    registry.Skin
	CellW   float64 // World units per terminal column
	CellH   float64 // World units per terminal row
	Tokens  int64   // Tokens earned this session
	Account string  // Empty when no account is connected
	SoundOn bool
}

// GeometryForScreen returns the playfield that fills a cols x rows terminal.
func GeometryForScreen(cols, rows int, cellW, cellH, ground float64) Geometry {
	return Geometry{
		Width:  float64(max(cols, 0)) * cellW,
		Height: float64(max(rows, 0)) * cellH,
		Ground: ground,
	}
}

// Render draws the session into dst. The screen is cleared first.
func (s *Session) Render(dst *core.Screen, v View) {
	dst.Clear()
	if v.CellW <= 0 {
		v.CellW = 10
	}
	if v.CellH <= 0 {
		v.CellH = 25
	}

	g := s.geometry
	floorRow := int(g.Floor() / v.CellH)

	obstacles := s.DemoObstacles()
	if s.state != StateIdle {
		obstacles = s.Obstacles()
	}
	for _, o := range obstacles {
		drawObstacle(dst, o, s.params.ObstacleWidth, floorRow, v)
	}

	dst.DrawHLine(0, floorRow, dst.Width(), GroundTopChar, core.ColorYellow)
	dst.FillRect(0, floorRow+1, dst.Width(), dst.Height(), GroundChar, core.ColorYellow)

	if s.state != StateIdle {
		drawActor(dst, s.actor, v)
	}

	s.drawHUD(dst, v)

	switch s.state {
	case StateIdle:
		drawMessage(dst, []string{
			"S K Y F L A P",
			"",
			fmt.Sprintf("<  %s  >", v.Skin.Name),
			"",
			"SPACE / click to start",
		}, core.ColorBrightCyan)
	case StateEnded:
		lines := []string{
			"GAME OVER",
			"",
			fmt.Sprintf("Score: %d   Best: %d", s.score, s.highScore),
		}
		if v.Account != "" {
			lines = append(lines, fmt.Sprintf("Tokens earned: %d", v.Tokens))
		}
		lines = append(lines, "", "SPACE restart  B menu")
		drawMessage(dst, lines, core.ColorRed)
	}
}

// cellSpan converts the world interval [a, b) into a half-open cell range.
func cellSpan(a, b, unit float64) (int, int) {
	lo := int(math.Floor(a / unit))
	hi := int(math.Ceil(b / unit))
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func drawObstacle(dst *core.Screen, o Obstacle, width float64, floorRow int, v View) {
	x0, x1 := cellSpan(o.X, o.X+width, v.CellW)
	topEnd := int(math.Floor(o.GapTopY / v.CellH))
	bottomStart := int(math.Ceil(o.GapBottomY / v.CellH))

	dst.FillRect(x0, 0, x1, topEnd, ObstacleChar, core.ColorGreen)
	if topEnd > 0 {
		dst.DrawHLine(x0, topEnd-1, x1-x0, ObstacleCapChar, core.ColorBrightGreen)
	}
	dst.FillRect(x0, bottomStart, x1, floorRow, ObstacleChar, core.ColorGreen)
	if bottomStart < floorRow {
		dst.DrawHLine(x0, bottomStart, x1-x0, ObstacleLipChar, core.ColorBrightGreen)
	}
}

func drawActor(dst *core.Screen, a Actor, v View) {
	glyph := v.Skin.Glyph
	if glyph == 0 {
		glyph = '●'
	}
	x0, x1 := cellSpan(a.X, a.X+a.Size, v.CellW)
	y0, y1 := cellSpan(a.Y, a.Y+a.Size, v.CellH)
	dst.FillRect(x0, y0, x1, y1, glyph, v.Skin.Color)
	// Eye on the leading edge
	dst.SetColored(x1-1, y0, 'o', core.ColorWhite)
}

func (s *Session) drawHUD(dst *core.Screen, v View) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d  Best: %d ", s.score, s.highScore), core.ColorBrightYellow)

	right := ""
	if v.Account != "" {
		right = fmt.Sprintf(" %s  Tokens: %d ", v.Account, v.Tokens)
	}
	if !v.SoundOn {
		right += " [muted] "
	}
	if right != "" {
		dst.DrawText(dst.Width()-len([]rune(right))-2, 0, right, core.ColorGray)
	}
}

func drawMessage(dst *core.Screen, lines []string, c core.Color) {
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 6
	boxH := len(lines) + 2
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawBox(boxX, boxY, boxW, boxH, c)
	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		dst.DrawText(x, boxY+1+i, l, c)
	}
}
