package assets

import (
	"bytes"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

func TestCuesAreEmbedded(t *testing.T) {
	for _, cue := range AllCues {
		t.Run(string(cue), func(t *testing.T) {
			b, err := LoadFile(cue.Path())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if stream.Length() <= 0 {
				t.Fatalf("empty cue")
			}
		})
	}
}

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"cues/hit.wav", "cues/hit.wav"},
		{"assets/cues/hit.wav", "cues/hit.wav"},
		{"/home/dev/bossrush/assets/cues/hit.wav", "cues/hit.wav"},
		{"/tmp/hit.wav", "hit.wav"},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
