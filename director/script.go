package director

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/prefabs"
)

// ScriptSequencer asks a tengo script for the next boss. The script sees
// queue (names still to come), defeated and clock_ms, and sets next and
// delay_ms. An empty next ends the queue.
type ScriptSequencer struct {
	name     string
	compiled *tengo.Compiled
	queue    *QueueSequencer
}

// NewScriptSequencer compiles the named script from prefabs/scripts. The
// queue supplies the script's queue input and the default delay.
func NewScriptSequencer(name string, queue *QueueSequencer) (*ScriptSequencer, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("director: load script %s: %w", name, err)
	}
	return CompileScript(name, src, queue)
}

// CompileScript is NewScriptSequencer for source already in memory.
func CompileScript(name string, src []byte, queue *QueueSequencer) (*ScriptSequencer, error) {
	script := tengo.NewScript(src)
	_ = script.Add("queue", []interface{}{})
	_ = script.Add("defeated", []interface{}{})
	_ = script.Add("clock_ms", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("director: compile script %s: %w", name, err)
	}
	return &ScriptSequencer{name: name, compiled: compiled, queue: queue}, nil
}

func (s *ScriptSequencer) Next(defeated []string, clockMs float64) (component.BossKind, float64, bool) {
	if s == nil || s.compiled == nil {
		return component.BossNone, 0, false
	}
	kind, delay, err := s.run(defeated, clockMs)
	if err != nil {
		fmt.Printf("director: script %s: %v\n", s.name, err)
		return component.BossNone, 0, false
	}
	return kind, delay, kind != component.BossNone
}

func (s *ScriptSequencer) run(defeated []string, clockMs float64) (component.BossKind, float64, error) {
	if err := s.compiled.Set("queue", toArray(s.queue.Remaining(len(defeated)))); err != nil {
		return component.BossNone, 0, err
	}
	if err := s.compiled.Set("defeated", toArray(defeated)); err != nil {
		return component.BossNone, 0, err
	}
	if err := s.compiled.Set("clock_ms", int64(clockMs)); err != nil {
		return component.BossNone, 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return component.BossNone, 0, err
	}

	if !s.compiled.IsDefined("next") {
		return component.BossNone, 0, fmt.Errorf("script does not set next")
	}
	next := strings.TrimSpace(s.compiled.Get("next").String())
	if next == "" {
		return component.BossNone, 0, nil
	}
	kind, ok := component.ParseBossKind(next)
	if !ok {
		return component.BossNone, 0, fmt.Errorf("unknown boss %q", next)
	}

	delay := 0.0
	if s.queue != nil {
		delay = s.queue.delayMs
	}
	if s.compiled.IsDefined("delay_ms") {
		delay = float64(s.compiled.Get("delay_ms").Int())
	}
	return kind, delay, nil
}

func toArray(names []string) []interface{} {
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}
