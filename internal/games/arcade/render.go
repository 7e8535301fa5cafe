package arcade

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/spark-arcade/internal/core"
	"github.com/vovakirdan/spark-arcade/internal/sim"
)

// Sprite is how one thing is drawn in the terminal.
type Sprite struct {
	Rune  rune
	Color core.Color
}

// Skin maps simulation objects to sprites.
type Skin struct {
	Actor    Sprite
	Ground   Sprite
	Particle Sprite
	Entities map[string]Sprite // by entity type name
	Hint     string            // controls line shown before a run
}

func (s Skin) entity(e sim.Entity) Sprite {
	if sp, ok := s.Entities[e.Type]; ok {
		return sp
	}
	switch e.Kind {
	case sim.KindCollectible:
		return Sprite{'●', core.ColorPickup}
	case sim.KindHazard:
		return Sprite{'✸', core.ColorHazard}
	default:
		return Sprite{'█', core.ColorObstacle}
	}
}

// Render draws the current game state to the screen.
func (c *Cabinet) Render(dst *core.Screen) {
	dst.Clear()
	if c.session == nil {
		return
	}
	snap := c.session.Snapshot()
	c.drawField(dst, snap)
	c.drawHUD(dst, snap)
	c.drawOverlay(dst, snap)
}

// cellRect covers every cell the box touches, at least one.
func (c *Cabinet) cellRect(b core.Box) core.Rect {
	cs := c.cells()
	x0 := int(math.Floor(b.X / cs.Width))
	y0 := int(math.Floor(b.Y / cs.Height))
	x1 := max(int(math.Ceil(b.Right()/cs.Width)), x0+1)
	y1 := max(int(math.Ceil(b.Bottom()/cs.Height)), y0+1)
	return core.NewRect(x0, y0+hudRows, x1-x0, y1-y0)
}

func (c *Cabinet) cellPoint(x, y float64) (int, int) {
	cs := c.cells()
	return int(math.Floor(x / cs.Width)), int(math.Floor(y/cs.Height)) + hudRows
}

func (c *Cabinet) drawField(dst *core.Screen, snap sim.Snapshot) {
	skin := c.opts.Skin

	if c.cfg.Rules.Actor.Mode != sim.ModeFree {
		row := int(math.Ceil(snap.Field.Floor/c.cells().Height)) + hudRows
		ground := skin.Ground
		if ground.Rune == 0 {
			ground = Sprite{'═', core.ColorGround}
		}
		dst.DrawHLine(0, row, dst.Width(), ground.Rune, ground.Color)
	}

	for _, e := range snap.Entities {
		if e.Resolved() && e.Consumable {
			continue
		}
		sp := skin.entity(e)
		dst.DrawRect(c.cellRect(e.Box), sp.Rune, sp.Color)
	}

	for _, pt := range snap.Particles {
		x, y := c.cellPoint(pt.X, pt.Y)
		if y < hudRows {
			continue
		}
		sp := skin.Particle
		if sp.Rune == 0 {
			sp = Sprite{'·', core.ColorParticle}
		}
		if pt.Remaining() < 0.4 {
			sp.Rune = '.'
		}
		dst.SetColored(x, y, sp.Rune, sp.Color)
	}

	// Blink while invulnerable.
	if snap.Vitals.Invulnerable > 0 && int(snap.Vitals.Invulnerable*10)%2 == 1 {
		return
	}
	actor := skin.Actor
	if actor.Rune == 0 {
		actor = Sprite{'█', core.ColorActor}
	}
	if snap.Vitals.Shield {
		actor.Color = core.ColorShield
	}
	dst.DrawRect(c.cellRect(snap.Actor.Box), actor.Rune, actor.Color)
}

func (c *Cabinet) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	left := fmt.Sprintf(" %s  Score %d  Best %d  %s", strings.ToUpper(c.Title()), snap.Score, snap.Best, lives(snap.Vitals.Lives))
	dst.DrawTextColored(0, 0, left, core.ColorHUD)

	var flags []string
	if c.cfg.Rules.Scoring.DistanceRate > 0 {
		flags = append(flags, fmt.Sprintf("%dm", int(snap.Distance)))
	}
	if start := c.cfg.Rules.World.StartSpeed; start > 0 && c.cfg.Rules.Actor.Mode != sim.ModeFree {
		flags = append(flags, fmt.Sprintf("x%.2f", snap.Speed/start))
	}
	if c.cfg.Rules.Vitals.StreakMax > 0 {
		flags = append(flags, fmt.Sprintf("streak %dx", snap.Vitals.Streak))
	}
	if snap.Vitals.Shield {
		flags = append(flags, "SHIELD")
	}
	if snap.Vitals.Slow > 0 {
		flags = append(flags, fmt.Sprintf("SLOW %.1fs", snap.Vitals.Slow))
	}
	if c.opts.DoubleJumpKey != "" {
		dj := "off"
		if snap.Actor.DoubleJump {
			dj = "on"
		}
		flags = append(flags, "2xJump "+dj)
	}

	right := strings.Join(flags, "  ") + " "
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right), 0, right, core.ColorHUD)
}

func (c *Cabinet) drawOverlay(dst *core.Screen, snap sim.Snapshot) {
	var lines []string
	color := core.ColorBrightWhite
	switch snap.State {
	case sim.StateIdle:
		lines = []string{c.Title(), "", "SPACE or ENTER to start"}
		if c.opts.Skin.Hint != "" {
			lines = append(lines, c.opts.Skin.Hint)
		}
	case sim.StatePaused:
		lines = []string{"PAUSED", "P or ENTER to resume"}
	case sim.StateEnded:
		color = core.ColorBrightRed
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d   Best %d", snap.Score, snap.Best)}
		if snap.NewBest {
			lines = append(lines, "NEW BEST!")
		}
		lines = append(lines, "", "R or ENTER to play again   B for menu")
	default:
		return
	}

	y := hudRows + (dst.Height()-hudRows-len(lines))/2
	for i, line := range lines {
		x := (dst.Width() - utf8.RuneCountInString(line)) / 2
		dst.DrawTextColored(x, y+i, line, color)
	}
}

func lives(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("♥", min(n, 8))
}
