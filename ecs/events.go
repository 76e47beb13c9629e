package ecs

import "github.com/milk9111/bossrush/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventBossSpawned  = "boss_spawned"
	EventBossDefeated = "boss_defeated"
	EventModeChanged  = "mode_changed"
	EventPhase2       = "phase2"
	EventExplosion    = "explosion"
	EventPlayerHit    = "player_hit"
	EventPlayerDied   = "player_died"
	EventPickup       = "pickup"
	EventLevelUp      = "level_up"
)

// EventQueue is a simple FIFO queue. Nothing flushes it implicitly; the owner
// of the tick loop drains it once all systems have run.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// BossEvent is the payload of boss lifecycle events.
type BossEvent struct {
	Entity Entity
	Kind   component.BossKind
	Mode   string
	X, Y   float64
}

// LevelEvent is the payload of level_up: the new level and the upgrade taken.
type LevelEvent struct {
	Level   int
	Upgrade component.Upgrade
}

// PlayerEvent is the payload of player damage events.
type PlayerEvent struct {
	HP       int
	Absorbed bool
}
