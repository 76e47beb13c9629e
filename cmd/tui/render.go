package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/sim"
)

// hudRows are reserved above the field.
const hudRows = 3

var (
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBoss    = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleWarning = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleShot    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHostile = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	styleWave    = tcell.StyleDefault.Foreground(tcell.ColorTomato)
	styleBeam    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePickup  = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

type cell struct {
	r     rune
	style tcell.Style
}

// grid is a character-cell frame. The play field is scaled to fill every row
// below the HUD.
type grid struct {
	cols, rows int
	fieldW     float64
	fieldH     float64
	cells      []cell
}

func newGrid(cols, rows int, fieldW, fieldH float64) *grid {
	if cols < 1 {
		cols = 1
	}
	if rows < hudRows+1 {
		rows = hudRows + 1
	}
	g := &grid{cols: cols, rows: rows, fieldW: fieldW, fieldH: fieldH, cells: make([]cell, cols*rows)}
	g.reset()
	return g
}

func (g *grid) reset() {
	for i := range g.cells {
		g.cells[i] = cell{r: ' ', style: tcell.StyleDefault}
	}
}

// project maps a field position to a cell.
func (g *grid) project(p cp.Vector) (int, int, bool) {
	if g.fieldW <= 0 || g.fieldH <= 0 {
		return 0, 0, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= g.fieldW || p.Y >= g.fieldH {
		return 0, 0, false
	}
	x := int(p.X / g.fieldW * float64(g.cols))
	y := hudRows + int(p.Y/g.fieldH*float64(g.rows-hudRows))
	return x, y, true
}

func (g *grid) set(x, y int, r rune, st tcell.Style) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y*g.cols+x] = cell{r: r, style: st}
}

func (g *grid) at(x, y int) rune {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return 0
	}
	return g.cells[y*g.cols+x].r
}

func (g *grid) put(p cp.Vector, r rune, st tcell.Style) {
	if x, y, ok := g.project(p); ok {
		g.set(x, y, r, st)
	}
}

// disc fills every cell whose center lies within radius of p.
func (g *grid) disc(p cp.Vector, radius float64, r rune, st tcell.Style) {
	cw := g.fieldW / float64(g.cols)
	ch := g.fieldH / float64(g.rows-hudRows)
	for y := p.Y - radius; y <= p.Y+radius; y += ch {
		for x := p.X - radius; x <= p.X+radius; x += cw {
			q := cp.Vector{X: x, Y: y}
			if q.Distance(p) <= radius {
				g.put(q, r, st)
			}
		}
	}
	g.put(p, r, st)
}

func (g *grid) ring(p cp.Vector, radius float64, r rune, st tcell.Style) {
	if radius <= 0 {
		return
	}
	steps := int(math.Max(12, radius/4))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		g.put(p.Add(cp.ForAngle(a).Mult(radius)), r, st)
	}
}

func (g *grid) line(a, b cp.Vector, r rune, st tcell.Style) {
	steps := int(math.Max(1, a.Distance(b)/6))
	for i := 0; i <= steps; i++ {
		g.put(a.Lerp(b, float64(i)/float64(steps)), r, st)
	}
}

func (g *grid) text(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		g.set(x, y, r, st)
		x++
	}
}

func (g *grid) blit(screen tcell.Screen) {
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			c := g.cells[y*g.cols+x]
			screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
}

// drawWorld renders the simulation; later layers overwrite earlier ones.
func drawWorld(g *grid, s *sim.Simulation, frame int) {
	g.reset()
	w := s.World()

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, p *component.Pickup, body *component.Body) {
			if p.Powerup() {
				g.put(body.Pos, '+', stylePickup.Bold(true))
				return
			}
			g.put(body.Pos, '.', stylePickup)
		})

	ecs.ForEach2(w, component.ShockwaveComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, sw *component.Shockwave, body *component.Body) {
			if sw.Active() {
				g.ring(body.Pos, sw.Radius, '~', styleWave)
			}
		})

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, _ *component.Enemy, body *component.Body) {
			g.put(body.Pos, 'e', styleEnemy)
		})

	for _, e := range s.Bosses().Active(w) {
		boss, _ := ecs.Get(w, e, component.BossComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		if boss == nil || body == nil || col == nil {
			continue
		}
		if boss.Beam.Active {
			g.line(body.Pos, boss.Beam.End(body.Pos), '=', styleBeam)
		}
		for _, ws := range boss.Weapons {
			if ws.Aiming {
				g.line(body.Pos, ws.Target, '-', styleDim)
			}
		}
		st := styleBoss
		if boss.Warning > 0 && (frame/10)%2 == 0 {
			st = styleWarning
		}
		fill := '#'
		if boss.Shielded {
			fill = 'O'
		}
		g.disc(body.Pos, col.Radius, fill, st)
		g.put(body.Pos, bossGlyph(boss.Kind), st.Reverse(true))
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, p *component.Projectile, body *component.Body) {
			switch {
			case p.Faction == component.FactionPlayer && p.Missile:
				g.put(body.Pos, '!', styleShot)
			case p.Faction == component.FactionPlayer:
				g.put(body.Pos, '\'', styleShot)
			case p.Missile || p.Homing:
				g.put(body.Pos, 'o', styleHostile)
			default:
				g.put(body.Pos, '*', styleHostile)
			}
		})

	snap := s.Snapshot()
	if snap.Player.Alive {
		g.put(snap.Player.Pos, '@', stylePlayer)
	}
	drawHUD(g, snap)
}

func bossGlyph(kind component.BossKind) rune {
	// The last word keeps sniper and swarm_queen apart.
	name := kind.String()
	if i := strings.LastIndex(name, "_"); i >= 0 {
		name = name[i+1:]
	}
	if kind == component.BossNone || name == "" {
		return '?'
	}
	return []rune(strings.ToUpper(name))[0]
}

func drawHUD(g *grid, snap sim.Snapshot) {
	hp := fmt.Sprintf("HP %d/%d", snap.Player.HP, snap.Player.MaxHP)
	if snap.Player.Shield > 0 {
		hp += fmt.Sprintf(" +%d", snap.Player.Shield)
	}
	g.text(0, 0, fmt.Sprintf("%s  SCORE %d  LVL %d (%d/%d)  BOSSES %d  %02d:%02d",
		hp, snap.Score, snap.Level, snap.LevelXP, snap.ToNext, snap.BossesDefeated, int(snap.Clock/60000), int(snap.Clock/1000)%60), styleHUD)

	status := "stage " + snap.Stage
	if snap.Countdown > 0 {
		status += fmt.Sprintf(" (%.0fs)", snap.Countdown/1000)
	}
	if snap.Frozen {
		status += "  FROZEN"
	}
	if snap.Paused {
		status += "  PAUSED"
	}
	if !snap.Player.Alive {
		status += "  DEAD, r restarts"
	}
	g.text(0, 1, status, styleHUD)

	var bosses []string
	for _, b := range snap.Bosses {
		label := fmt.Sprintf("%s[%s] %d/%d", b.Name, b.Mode, b.HP, b.MaxHP)
		if b.Warning > 0 {
			label = "WARNING " + label
		}
		bosses = append(bosses, label)
	}
	g.text(0, 2, strings.Join(bosses, "  "), styleWarning)
}
