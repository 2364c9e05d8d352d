package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorBrown:        lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// A terminal cell is roughly twice as tall as it is wide, so one world unit
// spans two columns and one row.
const (
	cellsPerUnitX = 2.0
	cellsPerUnitZ = 1.0
)

// camera maps ground coordinates into a screen area centered on a point.
type camera struct {
	area   core.Rect
	cx, cz float64
}

func (c camera) toScreen(x, z float64) (int, int) {
	sx := c.area.X + c.area.W/2 + int(math.Floor((x-c.cx)*cellsPerUnitX))
	sy := c.area.Y + c.area.H/2 + int(math.Floor((z-c.cz)*cellsPerUnitZ))
	return sx, sy
}

func (c camera) set(s *core.Screen, x, z float64, r rune, col core.Color) {
	sx, sy := c.toScreen(x, z)
	if c.area.Contains(sx, sy) {
		s.Set(sx, sy, r, col)
	}
}

// fillBox paints every cell whose origin lies inside box.
func (c camera) fillBox(s *core.Screen, box core.AABB, r rune, col core.Color) {
	x0, y0 := c.toScreen(box.Min.X, box.Min.Z)
	x1, y1 := c.toScreen(box.Max.X, box.Max.Z)
	x0, y0 = max(x0, c.area.X), max(y0, c.area.Y)
	x1, y1 = min(x1, c.area.Right()-1), min(y1, c.area.Bottom()-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.Set(x, y, r, col)
		}
	}
}

var obstacleGlyphs = map[mapgen.ObstacleType]rune{
	mapgen.ObstacleCar:       'C',
	mapgen.ObstacleDebris:    ',',
	mapgen.ObstacleBarricade: '=',
	mapgen.ObstacleDumpster:  'U',
	mapgen.ObstacleBarrel:    'o',
}

var enemyGlyphs = map[string]struct {
	r rune
	c core.Color
}{
	sim.EnemyZombie.String(): {'Z', core.ColorGreen},
	sim.EnemyDemon.String():  {'&', core.ColorRed},
	sim.EnemyCrow.String():   {'v', core.ColorMagenta},
}

// drawWorld draws the map and every entity of snap into area, centered on
// the player.
func drawWorld(s *core.Screen, area core.Rect, m *mapgen.Map, worldSize float64, snap sim.Snapshot) {
	cam := camera{area: area, cx: snap.PlayerX, cz: snap.PlayerZ}

	half := worldSize / 2
	if worldSize > 0 {
		cam.fillBox(s, core.AABB{Min: core.V2(-half, -half), Max: core.V2(half, half)}, ' ', core.ColorDefault)
	}
	for _, st := range m.Streets {
		box := core.BoxAround(st.Position.Ground(), st.Size[0], st.Size[1])
		cam.fillBox(s, box, '·', core.ColorDarkGray)
	}
	for _, b := range m.Buildings {
		r, col := '█', core.ColorGray
		if b.Variant == mapgen.BuildingRuined {
			r, col = '▒', core.ColorDarkGray
		}
		cam.fillBox(s, b.Footprint(), r, col)
	}
	for _, l := range m.StreetLamps {
		col := core.ColorDarkGray
		if l.Working {
			col = core.ColorBrightYellow
		}
		cam.set(s, l.Position[0], l.Position[2], '!', col)
	}
	for _, t := range m.Trees {
		col := core.ColorBrown
		if t.Variant == mapgen.TreeBurnt {
			col = core.ColorDarkGray
		}
		cam.set(s, t.Position[0], t.Position[2], '♣', col)
	}
	for _, o := range m.Obstacles {
		cam.set(s, o.Position[0], o.Position[2], obstacleGlyphs[o.Type], core.ColorOrange)
	}

	for _, b := range snap.Bones {
		cam.set(s, b.X, b.Z, '%', core.ColorWhite)
	}
	for _, p := range snap.PowerUps {
		cam.set(s, p.X, p.Z, '+', core.ColorBrightRed)
	}
	for _, p := range snap.Projectiles {
		cam.set(s, p.X, p.Z, '*', core.ColorBrightYellow)
	}
	for _, e := range snap.Enemies {
		g, ok := enemyGlyphs[e.Type]
		if !ok {
			g.r, g.c = '?', core.ColorRed
		}
		cam.set(s, e.X, e.Z, g.r, g.c)
	}
	cam.set(s, snap.PlayerX, snap.PlayerZ, '@', core.ColorBrightWhite)
}

// drawAim marks the aim direction next to the player.
func drawAim(s *core.Screen, area core.Rect, snap sim.Snapshot, facing core.Vec2) {
	cam := camera{area: area, cx: snap.PlayerX, cz: snap.PlayerZ}
	p := core.V2(snap.PlayerX, snap.PlayerZ).Add(facing.Scale(1.5))
	sx, sy := cam.toScreen(p.X, p.Z)
	if area.Contains(sx, sy) && s.Get(sx, sy) != '@' {
		s.Set(sx, sy, '+', core.ColorCyan)
	}
}

// drawDialog draws a boxed block of lines centered in area.
func drawDialog(s *core.Screen, area core.Rect, title string, lines []string, col core.Color) {
	w := len([]rune(title)) + 4
	for _, l := range lines {
		w = max(w, len([]rune(l))+4)
	}
	h := len(lines) + 4
	box := core.NewRect(area.X+(area.W-w)/2, area.Y+(area.H-h)/2, w, h)

	s.DrawRect(box, ' ', core.ColorDefault)
	s.DrawBox(box, col)
	s.DrawText(box.X+(w-len([]rune(title)))/2, box.Y+1, title, col)
	for i, l := range lines {
		s.DrawText(box.X+2, box.Y+3+i, l, core.ColorWhite)
	}
}
