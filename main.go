package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/bossrush/prefabs"
	"github.com/milk9111/bossrush/sim"
)

func main() {
	seed := flag.Uint64("seed", 0, "rng seed (0 picks one from the clock)")
	debug := flag.Bool("debug", false, "enable debug overlay and event logging")
	watch := flag.Bool("watch", false, "reload boss descriptors when prefabs/*.yaml changes")
	script := flag.String("script", "", "tengo boss-queue script in prefabs/scripts (basename)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Printf("bossrush: seed %d", *seed)

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("bossrush: watch disabled: %v", err)
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("bossrush")

	game, err := NewGame(sim.Options{Seed: *seed, Script: *script}, *debug, watcher)
	if err != nil {
		log.Fatal(err)
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
