package system

import (
	"math"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// berserkerBehavior brawls with spreads, then taunts behind a shield until
// it lets loose a burst. Phase 2 swaps in frenzy and rampage.
type berserkerBehavior struct{}

func (b *berserkerBehavior) weapons() []string { return []string{"spread", "spray", "burst"} }

func (b *berserkerBehavior) spawn(c *bossCtx) {}

func (b *berserkerBehavior) move(c *bossCtx) {
	switch c.boss.Mode {
	case "brawl":
		c.chase(c.player.Pos)
	case "frenzy":
		c.steerTo(c.player.Pos)
		c.bounce(&c.body.Vel, c.p("frenzy_bounce"))
	default:
		c.brake(c.p("taunt_brake"), 0.5)
	}
}

func (b *berserkerBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "spread":
		angles := entity.Spread(c.angleTo(c.player.Pos), deg(c.p("spread_deg")), c.pi("spread_count"))
		c.volley(angles, shot{
			speed:  c.p("spread_speed"),
			radius: c.p("spread_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		})
	case "spray":
		c.volley(entity.Ring(c.pi("spray_count"), c.rand()*2*math.Pi), shot{
			speed:  c.p("spray_speed"),
			radius: c.p("spray_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		})
	case "burst":
		c.boss.Shielded = false
		n := c.pi("burst_count")
		jitter := c.p("burst_jitter")
		bullet := shot{
			speed:  c.p("burst_speed"),
			radius: c.p("burst_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		}
		for i := 0; i < n; i++ {
			c.fire(float64(i)/float64(n)*2*math.Pi+c.rand()*jitter, bullet)
		}
		if c.boss.Phase2 {
			c.startAction(component.BossAction{
				Name:      "ram",
				Remaining: c.p("ram_ms"),
				Vel:       c.dirTo(c.player.Pos).Mult(c.p("ram_speed")),
				Bounce:    c.p("ram_bounce"),
				EndScale:  c.p("ram_end_scale"),
				Ram:       true,
				Trail:     true,
				TrailMs:   c.p("trail_ms"),
			})
		}
	}
}

func (b *berserkerBehavior) enterPhase2(c *bossCtx) {
	if v := c.p("max_speed_p2"); v > 0 {
		c.body.MaxSpeed = v
	}
	c.boss.Action = nil
}
