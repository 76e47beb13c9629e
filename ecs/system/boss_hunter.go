package system

import "github.com/milk9111/bossrush/ecs/component"

// hunterBehavior chases, fires leading shots and periodically winds up a
// bouncing dash.
type hunterBehavior struct{}

func (h *hunterBehavior) weapons() []string { return []string{"shot", "charge"} }

func (h *hunterBehavior) spawn(c *bossCtx) {}

func (h *hunterBehavior) move(c *bossCtx) {
	switch c.boss.Mode {
	case "windup":
		c.brake(c.p("windup_brake"), c.p("windup_deadband"))
	case "dash":
		// The dash action drives movement; landing here means it never started.
		c.switchMode("hunt")
	default:
		c.chase(c.player.Pos)
	}
}

func (h *hunterBehavior) fire(c *bossCtx, weapon string) {
	switch weapon {
	case "shot":
		speed := c.p("shot_speed")
		c.fire(c.angleTo(c.lead(speed)), shot{
			speed:  speed,
			radius: c.p("shot_radius"),
			pad:    c.p("shot_pad"),
			muzzle: c.p("muzzle"),
		})
	case "charge":
		c.switchMode("windup")
	}
}

func (h *hunterBehavior) enterMode(c *bossCtx, from, to string) {
	switch to {
	case "windup":
		c.boss.Trail = nil
	case "dash":
		c.startAction(component.BossAction{
			Name:      "dash",
			Remaining: c.p("dash_ms"),
			Vel:       c.dirTo(c.player.Pos).Mult(c.p("dash_speed")),
			Bounce:    c.p("dash_bounce"),
			EndScale:  c.p("dash_end_scale"),
			Ram:       true,
			Trail:     true,
			TrailMs:   c.p("trail_ms"),
		})
	}
}

func (h *hunterBehavior) actionEnded(c *bossCtx, action string) {
	if action == "dash" {
		c.switchMode("hunt")
	}
}
