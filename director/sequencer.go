package director

import (
	"fmt"

	"github.com/milk9111/bossrush/ecs/component"
)

// Sequencer picks the boss that follows the dual fight and each queue boss.
// defeated lists the queue bosses beaten so far, oldest first. ok is false
// once the queue is exhausted.
type Sequencer interface {
	Next(defeated []string, clockMs float64) (kind component.BossKind, delayMs float64, ok bool)
}

// QueueSequencer walks a fixed list of bosses with a constant countdown.
type QueueSequencer struct {
	queue   []component.BossKind
	delayMs float64
	repeat  bool
}

func NewQueueSequencer(names []string, delayMs float64, repeat bool) (*QueueSequencer, error) {
	kinds, err := parseQueue(names)
	if err != nil {
		return nil, err
	}
	return &QueueSequencer{queue: kinds, delayMs: delayMs, repeat: repeat}, nil
}

func (q *QueueSequencer) Next(defeated []string, _ float64) (component.BossKind, float64, bool) {
	if q == nil || len(q.queue) == 0 {
		return component.BossNone, 0, false
	}
	i := len(defeated)
	if q.repeat {
		i %= len(q.queue)
	}
	if i >= len(q.queue) {
		return component.BossNone, 0, false
	}
	return q.queue[i], q.delayMs, true
}

// Remaining returns the names still to come after len(defeated) kills.
// With repeat the list wraps around to a full cycle.
func (q *QueueSequencer) Remaining(defeated int) []string {
	if q == nil || len(q.queue) == 0 {
		return nil
	}
	start := defeated
	if q.repeat {
		start %= len(q.queue)
	}
	if start >= len(q.queue) {
		return nil
	}
	out := make([]string, 0, len(q.queue))
	for _, k := range q.queue[start:] {
		out = append(out, k.String())
	}
	if q.repeat {
		for _, k := range q.queue[:start] {
			out = append(out, k.String())
		}
	}
	return out
}

func parseQueue(names []string) ([]component.BossKind, error) {
	kinds := make([]component.BossKind, 0, len(names))
	for _, name := range names {
		k, ok := component.ParseBossKind(name)
		if !ok {
			return nil, fmt.Errorf("director: unknown boss %q in queue", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
