package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/bossrush/ecs"
)

const sampleRate = beep.SampleRate(44100)

// tone is one step of a cue; a zero freq is a rest.
type tone struct {
	freq float64
	ms   int
}

var cueTones = map[string][]tone{
	ecs.EventBossSpawned:  {{440, 140}, {0, 60}, {440, 140}},
	ecs.EventModeChanged:  {{660, 90}},
	ecs.EventPhase2:       {{330, 200}},
	ecs.EventBossDefeated: {{440, 150}, {660, 150}, {880, 220}},
	ecs.EventPlayerHit:    {{220, 80}},
	ecs.EventLevelUp:      {{523, 90}, {784, 160}},
}

type sound struct {
	ok    bool
	muted bool
}

// newSound opens the speaker. Audio is optional; without it cues are dropped.
func newSound(logger *log.Logger) *sound {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		logger.Printf("tui: audio disabled: %v", err)
		return &sound{}
	}
	return &sound{ok: true}
}

func (s *sound) cue(eventType string) {
	if s == nil || !s.ok || s.muted {
		return
	}
	seq := cueStreamer(cueTones[eventType])
	if seq == nil {
		return
	}
	speaker.Play(&effects.Volume{Streamer: seq, Base: 2, Volume: -2})
}

// cueStreamer chains a cue's tones into one streamer.
func cueStreamer(tones []tone) beep.Streamer {
	var parts []beep.Streamer
	for _, t := range tones {
		n := sampleRate.N(time.Duration(t.ms) * time.Millisecond)
		if t.freq <= 0 {
			parts = append(parts, beep.Silence(n))
			continue
		}
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(n, sine))
	}
	if len(parts) == 0 {
		return nil
	}
	return beep.Seq(parts...)
}

func (s *sound) close() {
	if s != nil && s.ok {
		speaker.Close()
	}
}
