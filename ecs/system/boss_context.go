package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/common"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/ecs/entity"
	"github.com/milk9111/bossrush/physics"
)

// bossBehavior is what makes a boss kind different. The engine owns timers,
// mode flips, actions and payout; a behavior only moves and fires.
type bossBehavior interface {
	weapons() []string
	spawn(c *bossCtx)
	move(c *bossCtx)
	fire(c *bossCtx, weapon string)
}

// Optional hooks.
type (
	modeEnterer interface {
		enterMode(c *bossCtx, from, to string)
	}
	phase2Enterer interface {
		enterPhase2(c *bossCtx)
	}
	weaponAimer interface {
		aim(c *bossCtx, weapon string)
	}
	// weaponPauser stops a weapon's countdown while paused returns true.
	weaponPauser interface {
		paused(c *bossCtx, weapon string) bool
	}
	actionEnder interface {
		actionEnded(c *bossCtx, action string)
	}
	deathHook interface {
		died(c *bossCtx)
	}
)

type bossFactory func() bossBehavior

var bossBehaviors = map[component.BossKind]bossFactory{
	component.BossHunter:     func() bossBehavior { return &hunterBehavior{} },
	component.BossDuelist:    func() bossBehavior { return &duelistBehavior{} },
	component.BossFortress:   func() bossBehavior { return &fortressBehavior{} },
	component.BossPhantom:    func() bossBehavior { return &phantomBehavior{} },
	component.BossSniper:     func() bossBehavior { return &sniperBehavior{} },
	component.BossBerserker:  func() bossBehavior { return &berserkerBehavior{} },
	component.BossSwarmQueen: func() bossBehavior { return &queenBehavior{} },
}

type bossRuntime struct {
	desc     *BossDescriptor
	behavior bossBehavior
}

// bossCtx is everything one boss tick can see.
type bossCtx struct {
	w       *ecs.World
	arena   *ecs.Arena
	e       ecs.Entity
	rt      *bossRuntime
	desc    *BossDescriptor
	boss    *component.Boss
	body    *component.Body
	health  *component.Health
	player  entity.PlayerView
	weapon  *component.WeaponState
	dt      float64
	sec     float64
	moveDt  float64
	moveSec float64
}

func newBossCtx(w *ecs.World, e ecs.Entity, rt *bossRuntime, boss *component.Boss, body *component.Body, hp *component.Health) *bossCtx {
	a := w.Arena()
	dt := a.Dt
	moveDt := dt * a.MoveScale()
	return &bossCtx{
		w:       w,
		arena:   a,
		e:       e,
		rt:      rt,
		desc:    rt.desc,
		boss:    boss,
		body:    body,
		health:  hp,
		player:  entity.Player(w),
		dt:      dt,
		sec:     dt / 1000,
		moveDt:  moveDt,
		moveSec: moveDt / 1000,
	}
}

func (c *bossCtx) p(name string) float64 {
	return c.desc.Param(name, c.boss.Phase2)
}

func (c *bossCtx) pi(name string) int {
	return int(math.Round(c.p(name)))
}

func (c *bossCtx) rand() float64 {
	return c.arena.Float64()
}

func (c *bossCtx) radius() float64 {
	return c.desc.Radius
}

// switchMode flips to the named mode, resetting its timer, shield and any
// weapons that re-arm on entry.
func (c *bossCtx) switchMode(name string) {
	spec, ok := c.desc.Mode(name, c.boss.Phase2)
	if !ok {
		return
	}
	from := c.boss.Mode
	c.boss.Mode = spec.Name
	c.boss.ModeTimer = spec.DurationMs
	c.boss.ModeFlash = spec.FlashMs
	c.boss.Shielded = spec.Shielded

	for i, w := range c.desc.Weapons {
		if w.ResetOnEnter && weaponActiveIn(w, spec.Name) {
			c.boss.Weapons[i] = component.WeaponState{Timer: c.desc.Interval(i, c.boss.Phase2), Armed: true}
		}
	}

	if h, ok := c.rt.behavior.(modeEnterer); ok {
		h.enterMode(c, from, spec.Name)
	}
	c.w.Events().Push(ecs.Event{Type: ecs.EventModeChanged, Data: c.event()})
}

func (c *bossCtx) event() ecs.BossEvent {
	return ecs.BossEvent{
		Entity: c.e,
		Kind:   c.boss.Kind,
		Mode:   c.boss.Mode,
		X:      c.body.Pos.X,
		Y:      c.body.Pos.Y,
	}
}

func (c *bossCtx) startAction(act component.BossAction) {
	c.boss.Action = &act
}

func (c *bossCtx) clamp() {
	physics.ClampToBounds(c.body, c.radius(), c.radius(), c.arena.Width, c.arena.Height)
}

// bounce reflects off the field edges, scaling the reflected axis of vel.
func (c *bossCtx) bounce(vel *cp.Vector, restitution float64) bool {
	return physics.Bounce(&c.body.Pos, vel, c.radius(), c.arena.Width, c.arena.Height, restitution)
}

// steerTo steers and integrates without any field clamp.
func (c *bossCtx) steerTo(target cp.Vector) {
	physics.SteerArrive(c.body, target, c.moveDt)
	physics.Integrate(c.body, c.moveDt)
}

func (c *bossCtx) chase(target cp.Vector) {
	c.steerTo(target)
	c.clamp()
}

func (c *bossCtx) flee(from cp.Vector) {
	physics.SteerFlee(c.body, from, c.moveDt)
	physics.Integrate(c.body, c.moveDt)
	c.clamp()
}

// brake decays velocity on the real clock and drifts on the movement clock.
func (c *bossCtx) brake(factor, dead float64) {
	physics.Brake(c.body, factor, dead, c.sec)
	physics.Move(c.body, c.moveSec)
	c.clamp()
}

func (c *bossCtx) hold() {
	c.body.Vel = cp.Vector{}
	c.clamp()
}

func (c *bossCtx) angleTo(target cp.Vector) float64 {
	d := target.Sub(c.body.Pos)
	return math.Atan2(d.Y, d.X)
}

// angleFromPlayer is the bearing of the boss as seen from the player.
func (c *bossCtx) angleFromPlayer() float64 {
	d := c.body.Pos.Sub(c.player.Pos)
	return math.Atan2(d.Y, d.X)
}

func (c *bossCtx) dirTo(target cp.Vector) cp.Vector {
	dir, _ := common.SafeDir(c.body.Pos, target)
	return dir
}

// lead is the predicted player position for a shot at speed.
func (c *bossCtx) lead(speed float64) cp.Vector {
	return physics.Lead(c.body.Pos, c.player.Pos, c.player.Vel, speed)
}

// shot is one hostile projectile template.
type shot struct {
	speed  float64
	radius float64
	pad    float64
	// muzzle is added to the boss radius to get the spawn offset.
	muzzle float64
	// center spawns at the boss center instead of the muzzle.
	center bool
	life   float64
	homing bool
	turn   float64
	split  int
	sniper bool
	linger bool
}

func (c *bossCtx) fire(angle float64, s shot) ecs.Entity {
	pos := c.body.Pos
	if !s.center {
		pos = pos.Add(common.Heading(angle, c.radius()+s.muzzle))
	}
	return entity.SpawnHazard(c.w, entity.HazardSpec{
		Owner:    c.e,
		Pos:      pos,
		Vel:      common.Heading(angle, s.speed),
		Radius:   s.radius,
		CullPad:  s.pad,
		Life:     s.life,
		Homing:   s.homing,
		TurnRate: s.turn,
		Split:    s.split,
		Sniper:   s.sniper,
		Linger:   s.linger,
	})
}

func (c *bossCtx) volley(angles []float64, s shot) {
	for _, a := range angles {
		c.fire(a, s)
	}
}

// minion places a regular enemy at angle around the boss.
func (c *bossCtx) minion(angle, dist float64) ecs.Entity {
	return entity.SpawnEnemy(c.w, c.body.Pos.Add(common.Heading(angle, dist)))
}

// trackOwned sets or clears homing on every live missile this boss owns.
func (c *bossCtx) trackOwned(on bool) {
	for _, e := range entity.Owned(c.w, c.e) {
		if p, ok := ecs.Get(c.w, e, component.ProjectileComponent.Kind()); ok && p.Homing {
			p.Tracking = on
		}
	}
}
