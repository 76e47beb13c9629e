package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// phantomBehavior fades and blinks around the field in ghost mode, then
// plants itself to snipe. In phase 2 anchoring also sweeps a beam.
type phantomBehavior struct{}

func (p *phantomBehavior) weapons() []string { return []string{"teleport", "snipe"} }

func (p *phantomBehavior) spawn(c *bossCtx) {}

func (p *phantomBehavior) move(c *bossCtx) {
	if c.boss.Mode == "anchor" {
		c.hold()
		c.boss.Alpha = 1
		if c.boss.Beam.Active {
			c.boss.Beam.Angle += c.p("beam_sweep") * c.dt
		}
		return
	}
	c.brake(c.p("drift_brake"), 0.5)
	c.boss.Alpha = math.Max(c.p("min_alpha"), c.boss.Alpha-c.p("fade_rate")*c.sec)
}

func (p *phantomBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "teleport":
		c.body.Pos = p.teleportTarget(c)
		c.body.Vel = cp.Vector{}
		c.boss.Alpha = 1

		bullet := shot{
			speed:  c.p("ring_speed"),
			radius: c.p("ring_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		}
		c.volley(entity.Ring(c.pi("ring_count"), c.rand()*math.Pi), bullet)
		c.fire(c.angleTo(c.player.Pos), bullet)
		if c.boss.Phase2 {
			c.fire(c.angleTo(c.lead(bullet.speed)), bullet)
		}
	case "snipe":
		target := c.player.Pos
		if c.weapon != nil && c.weapon.Aiming {
			target = c.weapon.Target
		}
		c.fire(c.angleTo(target), shot{
			speed:  c.p("snipe_speed"),
			radius: c.p("snipe_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
			sniper: true,
		})
	}
}

// teleportTarget picks a random point inside the margin at least
// teleport_min_dist from the player, settling for the last draw.
func (p *phantomBehavior) teleportTarget(c *bossCtx) cp.Vector {
	margin := c.radius() + c.p("teleport_margin")
	minDist := c.p("teleport_min_dist")
	attempts := c.pi("teleport_attempts")
	if attempts < 1 {
		attempts = 1
	}
	var pos cp.Vector
	for i := 0; i < attempts; i++ {
		pos = cp.Vector{
			X: margin + c.rand()*(c.arena.Width-2*margin),
			Y: margin + c.rand()*(c.arena.Height-2*margin),
		}
		if pos.Distance(c.player.Pos) >= minDist {
			break
		}
	}
	return pos
}

func (p *phantomBehavior) enterMode(c *bossCtx, from, to string) {
	switch to {
	case "ghost":
		c.boss.Beam.Active = false
		c.boss.Alpha = c.p("min_alpha")
	case "anchor":
		c.body.Vel = cp.Vector{}
		c.boss.Alpha = 1
		if c.boss.Phase2 {
			c.boss.Beam = p.beam(c)
		}
	}
}

func (p *phantomBehavior) enterPhase2(c *bossCtx) {
	c.boss.Beam.Angle = c.angleTo(c.player.Pos)
}

func (p *phantomBehavior) beam(c *bossCtx) component.Beam {
	return component.Beam{
		Active: true,
		Angle:  c.angleTo(c.player.Pos),
		Length: c.p("beam_length"),
		Width:  c.p("beam_width"),
	}
}
