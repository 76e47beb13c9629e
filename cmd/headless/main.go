// Command headless plays a run at a fixed dt with no window, flying the
// player with the autopilot, and prints a report at the end. The same seed,
// dt and script always produce the same run.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/sim"
)

func main() {
	duration := flag.Float64("duration", 600000, "simulated run length in ms")
	dt := flag.Float64("dt", 1000.0/60, "fixed step in ms")
	seed := flag.Uint64("seed", 1, "rng seed")
	script := flag.String("script", "", "tengo boss-queue script in prefabs/scripts (basename)")
	quiet := flag.Bool("quiet", false, "only print the final report")
	verbose := flag.Bool("v", false, "also log pickups and explosions, store sizes and per-system time")
	untilDeath := flag.Bool("until-death", true, "stop early when the player dies")
	flag.Parse()

	if *dt <= 0 || *duration <= 0 {
		log.Fatalf("headless: -dt and -duration must be positive")
	}

	logger := log.New(os.Stderr, "", 0)
	if *quiet {
		logger.SetOutput(io.Discard)
	}
	var s *sim.Simulation
	sink := func(evt ecs.Event) {
		if !*verbose && noisy(evt.Type) {
			return
		}
		logger.Printf("%9.0fms %s", s.Arena().Clock, describe(s, evt))
	}

	ap := sim.NewAutopilot()
	var err error
	s, err = sim.New(sim.Options{
		Seed:          *seed,
		Script:        *script,
		Logger:        logger,
		Sink:          sink,
		ChooseUpgrade: ap.ChooseUpgrade,
	})
	if err != nil {
		log.Fatal(err)
	}

	s.Profile(*verbose)
	start := time.Now()
	steps := 0
	for elapsed := 0.0; elapsed < *duration; elapsed += *dt {
		ap.Drive(s)
		s.Tick(*dt)
		steps++
		if *untilDeath && !s.Snapshot().Player.Alive {
			break
		}
	}

	snap := s.Snapshot()
	fmt.Println(snap.Report())
	fmt.Printf("steps=%d dt=%.3fms wall=%s\n", steps, *dt, time.Since(start).Round(time.Millisecond))
	if *verbose {
		printStores(s.World())
		for _, t := range s.Timings() {
			fmt.Printf("  %-22s %s\n", t.Name, t.Spent.Round(time.Microsecond))
		}
	}
}

func printStores(w *ecs.World) {
	sizes := ecs.StoreSizes(w)
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %d\n", name, sizes[name])
	}
}

func noisy(typ string) bool {
	return typ == ecs.EventPickup || typ == ecs.EventExplosion
}

func describe(s *sim.Simulation, evt ecs.Event) string {
	switch data := evt.Data.(type) {
	case ecs.BossEvent:
		name := data.Kind.String()
		if d, ok := s.Bosses().Descriptor(data.Kind); ok && d.Name != "" {
			name = d.Name
		}
		if data.Mode != "" {
			return fmt.Sprintf("%s %s mode=%s at (%.0f, %.0f)", evt.Type, name, data.Mode, data.X, data.Y)
		}
		return fmt.Sprintf("%s %s at (%.0f, %.0f)", evt.Type, name, data.X, data.Y)
	case ecs.LevelEvent:
		return fmt.Sprintf("%s level=%d took %s", evt.Type, data.Level, data.Upgrade.Label())
	case ecs.PlayerEvent:
		if data.Absorbed {
			return fmt.Sprintf("%s shield absorbed, hp=%d", evt.Type, data.HP)
		}
		return fmt.Sprintf("%s hp=%d", evt.Type, data.HP)
	case nil:
		return evt.Type
	default:
		return fmt.Sprintf("%s %v", evt.Type, data)
	}
}
