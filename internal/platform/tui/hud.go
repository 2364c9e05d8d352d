package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
)

// hudHeight is the number of rows the HUD takes above the world view.
const hudHeight = 2

// bar renders a fixed-width gauge like [#####-----].
func bar(cur, max float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if max > 0 {
		filled = int(float64(width) * core.ClampF(cur/max, 0, 1))
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// clock formats whole seconds as mm:ss.
func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func healthColor(health, maxHealth float64) core.Color {
	switch {
	case maxHealth <= 0 || health/maxHealth <= 0.25:
		return core.ColorBrightRed
	case health/maxHealth <= 0.5:
		return core.ColorYellow
	default:
		return core.ColorBrightGreen
	}
}

// drawHUD writes the two status rows.
func drawHUD(s *core.Screen, snap sim.Snapshot, mapTitle string) {
	x := 0
	put := func(y int, text string, c core.Color) {
		s.DrawText(x, y, text, c)
		x += len([]rune(text))
	}

	put(0, "HP ", core.ColorWhite)
	put(0, bar(snap.Health, snap.MaxHealth, 10), healthColor(snap.Health, snap.MaxHealth))
	put(0, fmt.Sprintf(" %.0f/%.0f  ", snap.Health, snap.MaxHealth), core.ColorWhite)

	ammo := fmt.Sprintf("AMMO %d/%d", snap.Ammo, snap.MaxAmmo)
	ammoColor := core.ColorWhite
	if snap.Reloading {
		ammo += " RELOADING"
		ammoColor = core.ColorYellow
	} else if snap.Ammo == 0 {
		ammoColor = core.ColorBrightRed
	}
	put(0, ammo+"  ", ammoColor)

	put(0, fmt.Sprintf("LV %d ", snap.Level), core.ColorCyan)
	put(0, bar(float64(snap.Exp), float64(snap.ExpRequired), 10), core.ColorCyan)
	put(0, fmt.Sprintf(" %d/%d", snap.Exp, snap.ExpRequired), core.ColorWhite)

	x = 0
	put(1, "$"+humanize.Comma(int64(snap.Money))+"  ", core.ColorBrightYellow)
	put(1, fmt.Sprintf("KILLS %d  ENEMIES %d  ", snap.Kills, len(snap.Enemies)), core.ColorWhite)
	put(1, clock(int(snap.ElapsedMS/1000))+"  ", core.ColorWhite)
	put(1, fmt.Sprintf("%s %s  ", snap.WeaponName, progression.Roman(snap.WeaponLevel)), core.ColorGray)
	put(1, mapTitle, core.ColorDarkGray)
}
