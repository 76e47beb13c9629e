package system

import (
	"math"

	"github.com/milk9111/bossrush/ecs/entity"
)

// fortressBehavior holds position behind a shield firing rotating rings and
// calling minions, then lumbers after the player dropping shockwaves.
type fortressBehavior struct {
	ringAngle float64
}

func (f *fortressBehavior) weapons() []string { return []string{"ring", "minions", "shockwave"} }

func (f *fortressBehavior) spawn(c *bossCtx) {}

func (f *fortressBehavior) move(c *bossCtx) {
	if c.boss.Mode == "siege" {
		c.chase(c.player.Pos)
		return
	}
	c.brake(c.p("fortify_brake"), 0.5)
}

func (f *fortressBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "ring":
		c.volley(entity.Ring(c.pi("ring_count"), f.ringAngle), shot{
			speed:  c.p("ring_speed"),
			radius: c.p("ring_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		})
		f.ringAngle += c.p("ring_step")
	case "minions":
		n := c.pi("minion_count")
		for i := 0; i < n; i++ {
			angle := c.rand() * 2 * math.Pi
			c.minion(angle, 2*c.radius()+c.rand()*c.p("minion_spread"))
		}
	case "shockwave":
		entity.SpawnShockwave(c.w, c.e, c.body.Pos, c.p("shock_radius"), c.p("shock_ms"), 0)
		if !c.boss.Phase2 {
			return
		}
		entity.SpawnShockwave(c.w, c.e, c.body.Pos, c.p("shock_radius"), c.p("shock_ms"), c.p("shock_stagger_ms"))
		angles := entity.Spread(c.angleTo(c.player.Pos), deg(c.p("siege_spread_deg")), c.pi("siege_spread_count"))
		c.volley(angles, shot{
			speed:  c.p("siege_spread_speed"),
			radius: c.p("siege_spread_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		})
	}
}
