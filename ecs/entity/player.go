package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
)

type PlayerConfig struct {
	HP       int
	Radius   float64
	MaxSpeed float64
	Accel    float64
	Drag     float64
}

var DefaultPlayerConfig = PlayerConfig{HP: 3, Radius: 12, MaxSpeed: 350, Accel: 800, Drag: 0.97}

// NewPlayer creates the player at pos and registers it with the arena.
func NewPlayer(w *ecs.World, cfg PlayerConfig, pos cp.Vector) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("player: nil world")
	}
	e := ecs.CreateEntity(w)

	body := component.NewBody(pos)
	body.MaxSpeed = cfg.MaxSpeed
	body.Drag = cfg.Drag
	body.MaxForce = cfg.Accel
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), body); err != nil {
		return 0, fmt.Errorf("player: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{Radius: cfg.Radius}); err != nil {
		return 0, fmt.Errorf("player: add collider: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		HP:    cfg.HP,
		MaxHP: cfg.HP,
		Alive: true,
		Accel: cfg.Accel,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerInputComponent.Kind(), &component.PlayerInput{Aim: pos}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerWeaponComponent.Kind(), &component.PlayerWeapon{}); err != nil {
		return 0, fmt.Errorf("player: add weapon: %w", err)
	}
	if err := ecs.Add(w, e, component.ProgressComponent.Kind(), component.NewProgress()); err != nil {
		return 0, fmt.Errorf("player: add progress: %w", err)
	}

	w.Arena().Player = e
	return e, nil
}

// PlayerView is the read-only slice of player state bosses and enemies use.
type PlayerView struct {
	Entity ecs.Entity
	Pos    cp.Vector
	Vel    cp.Vector
	Radius float64
	Alive  bool
}

// Player returns the current player view. Without a player it reports a
// dead player at the field center.
func Player(w *ecs.World) PlayerView {
	a := w.Arena()
	view := PlayerView{Pos: a.Center()}
	if a == nil {
		return view
	}
	e := a.Player
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return view
	}
	view.Entity = e
	view.Pos = body.Pos
	view.Vel = body.Vel
	if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		view.Radius = col.Radius
	}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		view.Alive = p.Alive
	}
	return view
}
