package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/sim"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

var (
	bannerFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

	colorBackground = color.RGBA{R: 0x0b, G: 0x0d, B: 0x17, A: 0xff}
	colorPlayer     = colornames.Deepskyblue
	colorShield     = colornames.Aquamarine
	colorEnemy      = colornames.Crimson
	colorPlayerShot = colornames.Gold
	colorHostile    = colornames.Orangered
	colorMissile    = colornames.Violet
	colorWave       = colornames.Tomato
	colorBeam       = colornames.Red
	colorWarning    = colornames.Yellow
)

var pickupColors = map[component.PickupKind]color.RGBA{
	component.PickupXP:      colornames.Limegreen,
	component.PickupHealth:  colornames.Hotpink,
	component.PickupTrishot: colornames.Orange,
	component.PickupMinigun: colornames.Khaki,
	component.PickupFreeze:  colornames.Lightblue,
	component.PickupNuke:    colornames.White,
	component.PickupMissile: colornames.Violet,
	component.PickupShield:  colornames.Aquamarine,
}

var bossColors = map[component.BossKind]color.RGBA{
	component.BossHunter:     colornames.Mediumpurple,
	component.BossDuelist:    colornames.Lightcoral,
	component.BossFortress:   colornames.Slategray,
	component.BossPhantom:    colornames.Lavender,
	component.BossSniper:     colornames.Darkseagreen,
	component.BossBerserker:  colornames.Firebrick,
	component.BossSwarmQueen: colornames.Goldenrod,
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	w := g.sim.World()
	if w.Arena().Frozen() {
		screen.Fill(color.RGBA{R: 0x0b, G: 0x16, B: 0x2a, A: 0xff})
	}

	drawPickups(screen, w, g.frames)
	drawExplosions(screen, w)
	drawShockwaves(screen, w)
	drawEnemies(screen, w)
	g.drawBosses(screen, w)
	drawProjectiles(screen, w)
	g.drawPlayer(screen, w)

	snap := g.sim.Snapshot()
	g.drawFlash(screen, snap)
	g.drawBanner(screen, snap)
	g.drawHUD(screen, snap)
}

func fillCircle(dst *ebiten.Image, pos cp.Vector, r float64, clr color.Color) {
	vector.FillCircle(dst, float32(pos.X), float32(pos.Y), float32(r), clr, true)
}

func strokeCircle(dst *ebiten.Image, pos cp.Vector, r, width float64, clr color.Color) {
	vector.StrokeCircle(dst, float32(pos.X), float32(pos.Y), float32(r), float32(width), clr, true)
}

func strokeLine(dst *ebiten.Image, a, b cp.Vector, width float64, clr color.Color) {
	vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), clr, true)
}

// fade scales a color's alpha by t in [0, 1].
func fade(c color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * t),
		G: uint8(float64(c.G) * t),
		B: uint8(float64(c.B) * t),
		A: uint8(float64(c.A) * t),
	}
}

func drawPickups(screen *ebiten.Image, w *ecs.World, frames int) {
	ecs.ForEach3(w, component.PickupComponent.Kind(), component.BodyComponent.Kind(), component.ColliderComponent.Kind(),
		func(e ecs.Entity, p *component.Pickup, body *component.Body, col *component.Collider) {
			if ttl, ok := ecs.Get(w, e, component.TTLComponent.Kind()); ok && ttl.Expiring() && (frames/6)%2 == 0 {
				return
			}
			clr, ok := pickupColors[p.Kind]
			if !ok {
				clr = colornames.White
			}
			if p.Powerup() {
				strokeCircle(screen, body.Pos, col.Radius, 2, clr)
				return
			}
			fillCircle(screen, body.Pos, col.Radius, clr)
		})
}

func drawExplosions(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.ExplosionComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, ex *component.Explosion, body *component.Body) {
			left := 1.0
			if ex.Duration > 0 {
				left = 1 - ex.Timer/ex.Duration
			}
			fillCircle(screen, body.Pos, ex.Radius(), fade(colornames.Orange, left*0.6))
		})
}

func drawShockwaves(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.ShockwaveComponent.Kind(), component.BodyComponent.Kind(),
		func(_ ecs.Entity, sw *component.Shockwave, body *component.Body) {
			if !sw.Active() {
				// Pending rings show where they will start.
				strokeCircle(screen, body.Pos, 6, 1, fade(colorWave, 0.5))
				return
			}
			strokeCircle(screen, body.Pos, sw.Radius, 4, colorWave)
		})
}

func drawEnemies(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.BodyComponent.Kind(), component.ColliderComponent.Kind(),
		func(_ ecs.Entity, en *component.Enemy, body *component.Body, col *component.Collider) {
			clr := colorEnemy
			if en.BerserkMs > 0 {
				clr = colornames.Red
			}
			fillCircle(screen, body.Pos, col.Radius, clr)
		})
}

func drawProjectiles(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach3(w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), component.ColliderComponent.Kind(),
		func(_ ecs.Entity, p *component.Projectile, body *component.Body, col *component.Collider) {
			switch {
			case p.Faction == component.FactionPlayer && p.Missile:
				fillCircle(screen, body.Pos, col.Radius, colorMissile)
			case p.Faction == component.FactionPlayer:
				fillCircle(screen, body.Pos, col.Radius, colorPlayerShot)
			case p.Missile || p.Homing:
				fillCircle(screen, body.Pos, col.Radius, colorMissile)
				strokeCircle(screen, body.Pos, col.Radius+2, 1, colorHostile)
			default:
				fillCircle(screen, body.Pos, col.Radius, colorHostile)
			}
		})
}

func (g *Game) drawBosses(screen *ebiten.Image, w *ecs.World) {
	bosses := g.sim.Bosses()
	for _, e := range bosses.Active(w) {
		boss, _ := ecs.Get(w, e, component.BossComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		if boss == nil || body == nil || col == nil {
			continue
		}

		for _, tp := range boss.Trail {
			left := 1.0
			if tp.Life > 0 {
				left = 1 - tp.Age/tp.Life
			}
			fillCircle(screen, tp.Pos, col.Radius, fade(colornames.Lightcoral, left*0.35))
		}

		for _, ws := range boss.Weapons {
			if ws.Aiming {
				strokeLine(screen, body.Pos, ws.Target, 1, fade(colorBeam, 0.7))
			}
		}
		if boss.Beam.Active {
			strokeLine(screen, body.Pos, boss.Beam.End(body.Pos), boss.Beam.Width*2, colorBeam)
		}

		clr, ok := bossColors[boss.Kind]
		if !ok {
			clr = colornames.White
		}
		alpha := 1.0
		if boss.Alpha > 0 {
			alpha = boss.Alpha
		}
		if boss.Warning > 0 {
			// Blink while the boss cannot be hurt yet.
			if (g.frames/8)%2 == 0 {
				alpha *= 0.35
			}
		}
		fillCircle(screen, body.Pos, col.Radius, fade(clr, alpha))
		if boss.Shielded {
			strokeCircle(screen, body.Pos, col.Radius+6, 3, colorShield)
		}
		if boss.Phase2 {
			strokeCircle(screen, body.Pos, col.Radius+2, 2, colornames.Red)
		}

		if hp, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && hp.Max > 0 {
			frac := float64(hp.Current) / float64(hp.Max)
			x := float32(body.Pos.X - col.Radius)
			y := float32(body.Pos.Y - col.Radius - 10)
			width := float32(col.Radius * 2)
			vector.FillRect(screen, x, y, width, 4, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}, false)
			vector.FillRect(screen, x, y, width*float32(frac), 4, colornames.Limegreen, false)
		}
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, w *ecs.World) {
	e := w.Arena().Player
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || !p.Alive {
		return
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	col, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
	if body == nil || col == nil {
		return
	}
	if p.IFrames > 0 && (g.frames/4)%2 == 0 {
		return
	}
	fillCircle(screen, body.Pos, col.Radius, colorPlayer)
	if p.Shield > 0 {
		strokeCircle(screen, body.Pos, col.Radius+4, 2, colorShield)
	}
	if in := g.sim.Input(); in != nil {
		dir := in.Aim.Sub(body.Pos)
		if dir.Length() > 1 {
			tip := body.Pos.Add(dir.Normalize().Mult(col.Radius + 8))
			strokeLine(screen, body.Pos, tip, 2, colorPlayer)
		}
	}
}

// drawFlash tints the screen while any boss shows its mode flip.
func (g *Game) drawFlash(screen *ebiten.Image, snap sim.Snapshot) {
	var flash float64
	w := g.sim.World()
	for _, b := range snap.Bosses {
		if boss, ok := ecs.Get(w, b.Entity, component.BossComponent.Kind()); ok {
			flash = math.Max(flash, boss.ModeFlash)
		}
	}
	if flash <= 0 {
		return
	}
	t := math.Min(flash/300, 1)
	vector.FillRect(screen, 0, 0, float32(snap.Width), float32(snap.Height), fade(colornames.White, t*0.25), false)
}

func (g *Game) drawBanner(screen *ebiten.Image, snap sim.Snapshot) {
	var lines []string
	for _, b := range snap.Bosses {
		if b.Warning > 0 {
			lines = append(lines, fmt.Sprintf("WARNING: %s", strings.ToUpper(b.Name)))
		}
	}
	if len(lines) == 0 && g.banner != "" && snap.Clock-g.bannerAt < bannerMs {
		lines = append(lines, strings.ToUpper(g.banner))
	}
	if !snap.Player.Alive {
		lines = append(lines, "YOU DIED", "press R to restart")
	}
	if len(lines) == 0 {
		return
	}

	op := &ebtext.DrawOptions{}
	op.GeoM.Scale(2, 2)
	op.GeoM.Translate(snap.Width/2, snap.Height/3)
	op.PrimaryAlign = ebtext.AlignCenter
	op.LineSpacing = 16
	op.ColorScale.ScaleWithColor(colorWarning)
	ebtext.Draw(screen, strings.Join(lines, "\n"), bannerFace, op)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	var b strings.Builder
	fmt.Fprintf(&b, "HP %d/%d", snap.Player.HP, snap.Player.MaxHP)
	if snap.Player.Shield > 0 {
		fmt.Fprintf(&b, " +%d", snap.Player.Shield)
	}
	fmt.Fprintf(&b, "   SCORE %d   LVL %d (%d/%d)   BOSSES %d   %02d:%02d\n",
		snap.Score, snap.Level, snap.LevelXP, snap.ToNext, snap.BossesDefeated, int(snap.Clock/60000), int(snap.Clock/1000)%60)
	fmt.Fprintf(&b, "stage %s", snap.Stage)
	if snap.Countdown > 0 {
		fmt.Fprintf(&b, " (%.0fs)", snap.Countdown/1000)
	}
	if snap.Frozen {
		b.WriteString("   FROZEN")
	}
	b.WriteString("\n")
	for _, boss := range snap.Bosses {
		fmt.Fprintf(&b, "%s [%s] %d/%d\n", boss.Name, boss.Mode, boss.HP, boss.MaxHP)
	}
	if g.debug {
		fmt.Fprintf(&b, "seed %d  FPS %.1f  enemies %d  hostile %d  shots %d  waves %d  pickups %d\n",
			snap.Seed, ebiten.ActualFPS(), snap.Enemies, snap.Hostiles, snap.PlayerShots, snap.Shockwaves, snap.Pickups)
	}
	if g.toast != "" && time.Since(g.toastAt) < 3*time.Second {
		b.WriteString(g.toast)
	}
	ebitenutil.DebugPrint(screen, b.String())
}
