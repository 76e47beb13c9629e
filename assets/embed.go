package assets

import (
	"bytes"
	"embed"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

//go:embed cues/*.wav
var assetsFS embed.FS

const SampleRate = 44100

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

// Cue names a short embedded sound under cues/.
type Cue string

const (
	CuePhase   Cue = "phase"
	CueWarning Cue = "warning"
	CueFlash   Cue = "flash"
	CueDefeat  Cue = "defeat"
	CueHit     Cue = "hit"
)

var AllCues = []Cue{CuePhase, CueWarning, CueFlash, CueDefeat, CueHit}

func (c Cue) Path() string { return "cues/" + string(c) + ".wav" }

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// audioCtx returns the shared audio context, creating it on first use. Ebiten
// allows a single context per process.
func audioCtx() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadAudioPlayer loads an embedded audio asset and creates an audio player.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	ctx := audioCtx()
	clean := strings.ToLower(cleanAssetPath(path))
	if strings.HasSuffix(clean, ".wav") {
		stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
		}
		return ctx.NewPlayer(stream)
	}

	// Fallback for already-decoded PCM assets in Ebiten's native format.
	return ctx.NewPlayerFromBytes(b), nil
}

// Cues plays the viewer's sound cues. A cue that failed to load stays
// silent; Cues never fails the caller.
type Cues struct {
	players map[Cue]*audio.Player
	Muted   bool
}

func NewCues() *Cues {
	c := &Cues{players: make(map[Cue]*audio.Player, len(AllCues))}
	for _, cue := range AllCues {
		p, err := LoadAudioPlayer(cue.Path())
		if err != nil {
			log.Printf("assets: cue %s: %v", cue, err)
			continue
		}
		c.players[cue] = p
	}
	return c
}

func (c *Cues) Play(cue Cue) {
	if c == nil || c.Muted {
		return
	}
	p := c.players[cue]
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		return
	}
	p.Play()
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	return strings.TrimPrefix(s, "assets/")
}
