package main

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/ecs/component"
	"github.com/milk9111/bossrush/sim"
)

func TestProject(t *testing.T) {
	g := newGrid(96, 75, 960, 720)
	cases := []struct {
		name string
		pos  cp.Vector
		x, y int
		ok   bool
	}{
		{"origin", cp.Vector{}, 0, hudRows, true},
		{"center", cp.Vector{X: 480, Y: 360}, 48, hudRows + 36, true},
		{"last_cell", cp.Vector{X: 959, Y: 719}, 95, 74, true},
		{"off_left", cp.Vector{X: -1, Y: 10}, 0, 0, false},
		{"off_bottom", cp.Vector{X: 10, Y: 720}, 0, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y, ok := g.project(c.pos)
			if ok != c.ok || (ok && (x != c.x || y != c.y)) {
				t.Fatalf("project(%v) = %d,%d,%v want %d,%d,%v", c.pos, x, y, ok, c.x, c.y, c.ok)
			}
		})
	}
}

func TestGridClipsWrites(t *testing.T) {
	g := newGrid(4, hudRows+2, 40, 20)
	g.text(2, 0, "abcdef", styleHUD)
	if g.at(2, 0) != 'a' || g.at(3, 0) != 'b' {
		t.Fatalf("text not written")
	}
	if g.at(4, 0) != 0 {
		t.Fatalf("out of range reads should be zero")
	}
}

func TestDrawWorld(t *testing.T) {
	s, err := sim.New(sim.Options{Seed: 5, Logger: log.New(io.Discard, "", 0)})
	if err != nil {
		t.Fatalf("sim: %v", err)
	}
	w := s.World()
	e := s.Bosses().SpawnBoss(w, component.BossFortress)
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	// Bosses enter from above the field.
	body.Pos = cp.Vector{X: 200, Y: 200}

	g := newGrid(96, 75, s.Arena().Width, s.Arena().Height)
	drawWorld(g, s, 0)

	px, py, _ := g.project(s.Snapshot().Player.Pos)
	if g.at(px, py) != '@' {
		t.Fatalf("player glyph = %q", g.at(px, py))
	}
	bx, by, ok := g.project(body.Pos)
	if !ok || g.at(bx, by) != 'F' {
		t.Fatalf("boss glyph = %q", g.at(bx, by))
	}
	if g.at(0, 0) != 'H' {
		t.Fatalf("hud missing, got %q", g.at(0, 0))
	}
}

func TestCueStreamerLength(t *testing.T) {
	seq := cueStreamer(cueTones[ecs.EventBossSpawned])
	if seq == nil {
		t.Fatalf("spawn cue missing")
	}
	want := 2*sampleRate.N(140*time.Millisecond) + sampleRate.N(60*time.Millisecond)

	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := seq.Stream(buf)
		total += n
		if !ok {
			break
		}
	}
	if total != want {
		t.Fatalf("samples = %d, want %d", total, want)
	}
	if cueStreamer(nil) != nil {
		t.Fatalf("no tones should mean no streamer")
	}
}

func TestBossGlyph(t *testing.T) {
	cases := map[component.BossKind]rune{
		component.BossHunter:     'H',
		component.BossSniper:     'S',
		component.BossSwarmQueen: 'Q',
		component.BossNone:       '?',
	}
	for kind, want := range cases {
		if got := bossGlyph(kind); got != want {
			t.Fatalf("bossGlyph(%s) = %q, want %q", kind, got, want)
		}
	}
}
