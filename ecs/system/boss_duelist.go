package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// duelistBehavior alternates between orbiting the player with homing
// missiles and sidestep dodges, and pressing in with spreads and ram dashes.
type duelistBehavior struct {
	orbitAngle    float64
	dodgeCooldown float64
}

func (d *duelistBehavior) weapons() []string { return []string{"missile", "spread", "ramdash"} }

func (d *duelistBehavior) spawn(c *bossCtx) {
	d.orbitAngle = c.angleFromPlayer()
}

func (d *duelistBehavior) move(c *bossCtx) {
	if c.boss.Mode == "attack" {
		c.chase(c.player.Pos)
		return
	}

	d.dodgeCooldown = math.Max(0, d.dodgeCooldown-c.dt)
	if d.dodgeCooldown <= 0 && d.tryDodge(c) {
		return
	}
	d.orbitAngle += c.p("orbit_rate") * c.moveSec
	c.chase(c.player.Pos.Add(common.Heading(d.orbitAngle, c.p("orbit_radius"))))
}

// tryDodge sidesteps the first player bullet closing inside the threat
// radius. Missiles are ignored.
func (d *duelistBehavior) tryDodge(c *bossCtx) bool {
	threat := c.p("threat_radius")
	minDot := c.p("threat_dot")
	var incoming cp.Vector
	found := false
	ecs.ForEach2(c.w, component.ProjectileComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, p *component.Projectile, body *component.Body) {
		if found || p.Faction != component.FactionPlayer || p.Missile {
			return
		}
		rel := c.body.Pos.Sub(body.Pos)
		dist := rel.Length()
		speed := body.Vel.Length()
		if dist > threat || dist < common.MinDistance || speed == 0 {
			return
		}
		if body.Vel.Dot(rel)/(speed*dist) > minDot {
			incoming = body.Vel.Mult(1 / speed)
			found = true
		}
	})
	if !found {
		return false
	}

	speed := c.p("dodge_speed")
	endScale := 0.0
	if speed > 0 {
		endScale = c.p("dodge_end_speed") / speed
	}
	c.startAction(component.BossAction{
		Name:      "dodge",
		Remaining: c.p("dodge_ms"),
		Vel:       incoming.Perp().Mult(speed * common.Sign(c.arena)),
		EndScale:  endScale,
		Trail:     true,
		TrailMs:   c.p("trail_ms"),
	})
	d.dodgeCooldown = c.p("dodge_cooldown_ms")
	return true
}

func (d *duelistBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "missile":
		c.fire(c.angleTo(c.player.Pos), shot{
			speed:  c.p("missile_speed"),
			radius: c.p("missile_radius"),
			pad:    c.p("missile_pad"),
			muzzle: c.p("muzzle"),
			homing: true,
			turn:   c.p("missile_turn"),
		})
	case "spread":
		angles := entity.Spread(c.angleTo(c.player.Pos), deg(c.p("spread_deg")), c.pi("spread_count"))
		c.volley(angles, shot{
			speed:  c.p("spread_speed"),
			radius: c.p("spread_radius"),
			pad:    c.p("spread_pad"),
			muzzle: c.p("muzzle"),
		})
	case "ramdash":
		c.startAction(component.BossAction{
			Name:      "ramdash",
			Remaining: c.p("dash_ms"),
			Vel:       c.dirTo(c.player.Pos).Mult(c.p("dash_speed")),
			EndScale:  c.p("dash_end_scale"),
			Ram:       true,
			Trail:     true,
			TrailMs:   c.p("trail_ms"),
		})
	}
}

// paused holds the ram cooldown while any action is in flight.
func (d *duelistBehavior) paused(c *bossCtx, weapon string) bool {
	return weapon == "ramdash" && c.boss.Action != nil
}

func (d *duelistBehavior) enterMode(c *bossCtx, from, to string) {
	if from == "defend" {
		c.trackOwned(false)
	}
	if to == "defend" {
		d.orbitAngle = c.angleFromPlayer()
	}
}
