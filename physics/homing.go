package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
)

// TurnToward rotates vel toward the bearing from pos to target by at most
// turnRate*sec radians, keeping its speed.
func TurnToward(vel, pos, target cp.Vector, turnRate, sec float64) cp.Vector {
	speed := vel.Length()
	if speed == 0 {
		return vel
	}
	cur := math.Atan2(vel.Y, vel.X)
	want := math.Atan2(target.Y-pos.Y, target.X-pos.X)
	diff := common.WrapAngle(want - cur)
	limit := turnRate * sec
	diff = common.Clamp(diff, -limit, limit)
	return cp.ForAngle(cur + diff).Mult(speed)
}

// Lead returns where a target moving at targetVel will be after a shot at
// speed covers the current distance from shooter.
func Lead(shooter, targetPos, targetVel cp.Vector, speed float64) cp.Vector {
	if speed <= 0 {
		return targetPos
	}
	t := shooter.Distance(targetPos) / speed
	return targetPos.Add(targetVel.Mult(t))
}
