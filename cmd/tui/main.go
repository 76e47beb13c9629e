// Command tui plays a run in the terminal. The autopilot flies by default;
// WASD or the arrow keys take over steering while aiming stays automatic.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/sim"
)

// nudgeMs is how long one key press keeps thrusting. Terminals do not report
// key releases.
const nudgeMs = 180

type app struct {
	screen tcell.Screen
	sound  *sound
	logger *log.Logger

	opts  sim.Options
	sim   *sim.Simulation
	pilot *sim.Autopilot
	grid  *grid

	frame  int
	events []ecs.Event

	manual     bool
	thrust     cp.Vector
	thrustTill time.Time
}

func newApp(opts sim.Options, logger *log.Logger) (*app, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	a := &app{
		screen: screen,
		logger: logger,
		opts:   opts,
		pilot:  sim.NewAutopilot(),
	}
	if err := a.restart(); err != nil {
		screen.Fini()
		return nil, err
	}
	a.sound = newSound(logger)
	return a, nil
}

func (a *app) restart() error {
	opts := a.opts
	opts.Logger = a.logger
	opts.ChooseUpgrade = a.pilot.ChooseUpgrade
	opts.Sink = func(evt ecs.Event) { a.events = append(a.events, evt) }
	s, err := sim.New(opts)
	if err != nil {
		return err
	}
	a.sim = s
	a.events = nil
	a.resize()
	return nil
}

func (a *app) resize() {
	cols, rows := a.screen.Size()
	arena := a.sim.Arena()
	a.grid = newGrid(cols, rows, arena.Width, arena.Height)
	a.screen.Clear()
}

func nowMs() float64 {
	return float64(time.Now().UnixMilli())
}

// handle returns false when the app should exit.
func (a *app) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			a.nudge(cp.Vector{Y: -1})
		case tcell.KeyDown:
			a.nudge(cp.Vector{Y: 1})
		case tcell.KeyLeft:
			a.nudge(cp.Vector{X: -1})
		case tcell.KeyRight:
			a.nudge(cp.Vector{X: 1})
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		a.resize()
	}
	return true
}

func (a *app) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'w':
		a.nudge(cp.Vector{Y: -1})
	case 's':
		a.nudge(cp.Vector{Y: 1})
	case 'a':
		a.nudge(cp.Vector{X: -1})
	case 'd':
		a.nudge(cp.Vector{X: 1})
	case ' ':
		a.manual = !a.manual
	case 'm':
		a.sound.muted = !a.sound.muted
	case 'p':
		if a.sim.Paused() {
			a.sim.Resume(nowMs())
		} else {
			a.sim.Pause()
		}
	case 'r':
		if !a.sim.Snapshot().Player.Alive {
			if err := a.restart(); err != nil {
				a.logger.Printf("tui: restart: %v", err)
			}
		}
	}
	return true
}

func (a *app) nudge(dir cp.Vector) {
	a.manual = true
	now := time.Now()
	if now.After(a.thrustTill) {
		a.thrust = cp.Vector{}
	}
	a.thrust = a.thrust.Add(dir)
	a.thrustTill = now.Add(nudgeMs * time.Millisecond)
}

func (a *app) step() {
	a.frame++
	a.pilot.Drive(a.sim)
	if a.manual {
		if in := a.sim.Input(); in != nil {
			in.Thrust = cp.Vector{}
			if time.Now().Before(a.thrustTill) {
				in.Thrust = a.thrust
			}
		}
	}
	a.sim.Frame(nowMs())

	for _, evt := range a.events {
		a.sound.cue(evt.Type)
	}
	a.events = a.events[:0]

	drawWorld(a.grid, a.sim, a.frame)
	if a.manual {
		a.grid.text(a.grid.cols-len("manual"), 1, "manual", styleDim)
	}
	a.grid.blit(a.screen)
	a.screen.Show()
}

func (a *app) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !a.handle(ev) {
				return
			}
		case <-ticker.C:
			a.step()
		}
	}
}

func (a *app) close() {
	a.sound.close()
	a.screen.Fini()
}

func main() {
	seed := flag.Uint64("seed", 0, "rng seed (0 picks one from the clock)")
	script := flag.String("script", "", "tengo boss-queue script in prefabs/scripts (basename)")
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	// The terminal is the display, so logs go to a file or nowhere.
	logger := log.New(io.Discard, "", log.Ltime)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	a, err := newApp(sim.Options{Seed: *seed, Script: *script}, logger)
	if err != nil {
		log.Fatal(err)
	}
	a.run()
	report := a.sim.Snapshot().Report()
	a.close()
	logger.Print(report)
	os.Stdout.WriteString(report + "\n")
}
