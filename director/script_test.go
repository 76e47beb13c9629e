package director

import (
	"testing"

	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/prefabs"
)

func embeddedScript(t *testing.T) *ScriptSequencer {
	t.Helper()
	q, err := NewQueueSequencer(DefaultDirector.Queue, DefaultDirector.QueueDelayMs, false)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	src, err := prefabs.LoadScript("director.tengo")
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	s, err := CompileScript("director.tengo", src, q)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return s
}

func TestScriptSequencer(t *testing.T) {
	cases := []struct {
		name     string
		defeated []string
		want     component.BossKind
		delay    float64
		ok       bool
	}{
		{"first", nil, component.BossFortress, 20000, true},
		{"after_one", []string{"fortress"}, component.BossPhantom, 20000, true},
		{"breather", []string{"fortress", "phantom"}, component.BossSniper, 25000, true},
		{"queen_extra", []string{"fortress", "phantom", "sniper", "berserker"}, component.BossSwarmQueen, 30000, true},
		{"done", []string{"fortress", "phantom", "sniper", "berserker", "swarm_queen"}, component.BossNone, 0, false},
	}

	s := embeddedScript(t)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			kind, delay, ok := s.Next(c.defeated, 120000)
			if kind != c.want || ok != c.ok {
				t.Fatalf("got %s ok=%v, want %s ok=%v", kind, ok, c.want, c.ok)
			}
			if ok && delay != c.delay {
				t.Fatalf("delay = %v, want %v", delay, c.delay)
			}
		})
	}
}

func TestScriptSequencerErrors(t *testing.T) {
	if _, err := CompileScript("broken", []byte("next := ("), nil); err == nil {
		t.Fatalf("syntax error should fail to compile")
	}

	s, err := CompileScript("unknown", []byte(`next := "dragon"`), nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, _, ok := s.Next(nil, 0); ok {
		t.Fatalf("unknown boss name should end the queue")
	}
}

func TestScriptUsesClock(t *testing.T) {
	src := []byte(`
next := "fortress"
delay_ms := clock_ms > 100000 ? 1000 : 9000
`)
	s, err := CompileScript("clock", src, nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, delay, _ := s.Next(nil, 50000); delay != 9000 {
		t.Fatalf("early delay = %v", delay)
	}
	if _, delay, _ := s.Next(nil, 150000); delay != 1000 {
		t.Fatalf("late delay = %v", delay)
	}
}
