package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
)

// queenBehavior nests in a corner behind a shield breeding minions and
// spinning spirals, then hunts with splitting missiles. Her death either
// kills or enrages every regular enemy on the field.
type queenBehavior struct {
	corner      cp.Vector
	spiralAngle float64
}

func (q *queenBehavior) weapons() []string { return []string{"minions", "spiral", "missile"} }

func (q *queenBehavior) spawn(c *bossCtx) {
	q.corner = nearestCorner(c.body.Pos, c.arena.Width, c.arena.Height, c.p("corner_margin"))
}

func (q *queenBehavior) move(c *bossCtx) {
	if c.boss.Mode == "nest" {
		c.chase(q.corner)
		return
	}
	c.chase(c.player.Pos)
}

func (q *queenBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "minions":
		n := c.pi("minion_count")
		for i := 0; i < n; i++ {
			angle := (float64(i)/float64(n))*2*math.Pi + c.rand()*c.p("minion_jitter")
			c.minion(angle, 2*c.radius()+c.rand()*c.p("minion_spread"))
		}
	case "spiral":
		bullet := shot{
			speed:  c.p("spiral_speed"),
			radius: c.p("spiral_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("muzzle"),
		}
		arms := c.pi("spiral_arms")
		if arms < 1 {
			arms = 1
		}
		for arm := 0; arm < arms; arm++ {
			offset := float64(arm) / float64(arms) * 2 * math.Pi
			c.volley(entity.Ring(c.pi("spiral_count"), q.spiralAngle+offset), bullet)
		}
		q.spiralAngle += c.p("spiral_step")
	case "missile":
		c.fire(c.angleTo(c.player.Pos), shot{
			speed:  c.p("missile_speed"),
			radius: c.p("missile_radius"),
			pad:    c.p("pad"),
			muzzle: c.p("missile_muzzle"),
			homing: true,
			turn:   c.p("missile_turn"),
			split:  c.pi("split"),
		})
	}
}

func (q *queenBehavior) enterMode(c *bossCtx, from, to string) {
	if to == "nest" {
		q.corner = nearestCorner(c.body.Pos, c.arena.Width, c.arena.Height, c.p("corner_margin"))
	}
}

// died kills each regular enemy or sends it berserk, a coin flip apiece.
func (q *queenBehavior) died(c *bossCtx) {
	chance := c.p("kill_chance")
	ms := c.p("berserk_ms")
	scale := c.arena.Enemies.BerserkScale
	for _, e := range entity.Enemies(c.w) {
		if c.rand() < chance {
			// Cleared minions leave an orb but no score.
			if body, ok := ecs.Get(c.w, e, component.BodyComponent.Kind()); ok {
				pos := body.Pos
				if entity.KillEnemy(c.w, e, false) {
					entity.DropOrb(c.w, pos)
				}
			}
			continue
		}
		enemy, ok := ecs.Get(c.w, e, component.EnemyComponent.Kind())
		if !ok {
			continue
		}
		enemy.BerserkMs = ms
		if body, ok := ecs.Get(c.w, e, component.BodyComponent.Kind()); ok && scale > 0 {
			body.MaxSpeed = enemy.NormalMaxSpeed * scale
		}
	}
}

func nearestCorner(pos cp.Vector, w, h, margin float64) cp.Vector {
	corners := [4]cp.Vector{
		{X: margin, Y: margin},
		{X: w - margin, Y: margin},
		{X: margin, Y: h - margin},
		{X: w - margin, Y: h - margin},
	}
	best := corners[0]
	bestDist := pos.DistanceSq(best)
	for _, corner := range corners[1:] {
		if d := pos.DistanceSq(corner); d < bestDist {
			best, bestDist = corner, d
		}
	}
	return best
}
