package system

import (
	"math"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// sniperBehavior keeps its distance firing telegraphed rounds, then holds
// ground with a shotgun for close players and snap shots for far ones.
type sniperBehavior struct{}

func (s *sniperBehavior) weapons() []string {
	return []string{"snipe", "shotgun", "suppress_snipe"}
}

func (s *sniperBehavior) spawn(c *bossCtx) {}

func (s *sniperBehavior) move(c *bossCtx) {
	if c.boss.Mode == "suppress" {
		c.brake(c.p("suppress_brake"), 0.5)
		return
	}
	c.flee(c.player.Pos)
}

func (s *sniperBehavior) inRange(c *bossCtx) bool {
	return c.body.Pos.Distance(c.player.Pos) < c.p("shotgun_range")
}

// paused runs the shotgun countdown only while the player is close and the
// snap-shot countdown only while they are not.
func (s *sniperBehavior) paused(c *bossCtx, weapon string) bool {
	switch weapon {
	case "shotgun":
		return !s.inRange(c)
	case "suppress_snipe":
		return s.inRange(c)
	}
	return false
}

func (s *sniperBehavior) round(c *bossCtx) shot {
	return shot{
		speed:  c.p("snipe_speed"),
		radius: c.p("snipe_radius"),
		pad:    c.p("pad"),
		muzzle: c.p("muzzle"),
		life:   component.Immortal,
		sniper: true,
	}
}

func (s *sniperBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "snipe":
		target := c.player.Pos
		if c.weapon != nil && c.weapon.Aiming {
			target = c.weapon.Target
		}
		round := s.round(c)
		c.fire(c.angleTo(target), round)
		if c.boss.Phase2 {
			t := c.body.Pos.Distance(target) / round.speed
			c.fire(c.angleTo(c.player.Pos.Add(c.player.Vel.Mult(t))), round)
		}
	case "suppress_snipe":
		c.fire(c.angleTo(c.player.Pos), s.round(c))
	case "shotgun":
		base := c.angleTo(c.player.Pos)
		n := c.pi("shotgun_count")
		step := 0.0
		if n > 1 {
			step = deg(c.p("shotgun_arc_deg")) / float64(n-1)
		}
		c.volley(entity.Spread(base, step, n), shot{
			speed:  c.p("shotgun_speed"),
			radius: c.p("shotgun_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		})
		if !c.boss.Phase2 {
			return
		}
		ln := c.pi("linger_count")
		lstep := 0.0
		if ln > 1 {
			lstep = deg(c.p("linger_arc_deg")) / float64(ln-1)
		}
		c.volley(entity.Spread(base, lstep, ln), shot{
			speed:  c.p("linger_speed"),
			radius: c.p("linger_radius"),
			pad:    c.p("pad"),
			center: true,
			life:   math.Max(1, c.p("linger_ms")),
			linger: true,
		})
	}
}
