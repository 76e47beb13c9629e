package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossrush/assets"
	"github.com/milk9111/bossrush/ecs"
	"github.com/milk9111/bossrush/prefabs"
	"github.com/milk9111/bossrush/sim"
	"golang.design/x/clipboard"
)

const (
	baseWidth  = ecs.DefaultFieldWidth
	baseHeight = ecs.DefaultFieldHeight

	// bannerMs is how long the boss name banner stays up after a spawn.
	bannerMs = 2500
)

type Game struct {
	frames int
	debug  bool
	quit   bool

	opts  sim.Options
	sim   *sim.Simulation
	cues  *assets.Cues
	watch *prefabs.Watcher

	paused  bool
	pauseUI *ebitenui.UI

	events []ecs.Event
	banner string
	// bannerAt is the sim clock the banner went up.
	bannerAt float64
	toast    string
	toastAt  time.Time

	clipboardOK bool
}

func NewGame(opts sim.Options, debug bool, watch *prefabs.Watcher) (*Game, error) {
	g := &Game{
		debug: debug,
		opts:  opts,
		cues:  assets.NewCues(),
		watch: watch,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		g.clipboardOK = true
	}
	return g, nil
}

func (g *Game) restart() error {
	opts := g.opts
	opts.Sink = func(evt ecs.Event) { g.events = append(g.events, evt) }
	s, err := sim.New(opts)
	if err != nil {
		return err
	}
	g.sim = s
	g.events = nil
	g.banner = ""
	return nil
}

func nowMs() float64 {
	return float64(time.Now().UnixMilli())
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.cues.Muted = !g.cues.Muted
	}

	g.pollWatcher()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	snap := g.sim.Snapshot()
	if !snap.Player.Alive && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}

	g.readInput()
	g.sim.Frame(nowMs())
	g.handleEvents()
	return nil
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.sim.Pause()
		return
	}
	g.sim.Resume(nowMs())
}

func (g *Game) readInput() {
	in := g.sim.Input()
	if in == nil {
		return
	}

	var thrust cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		thrust.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		thrust.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		thrust.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		thrust.X++
	}
	in.Thrust = thrust

	mx, my := ebiten.CursorPosition()
	in.Aim = cp.Vector{X: float64(mx), Y: float64(my)}
	// The ship fires on its own; holding space holds fire.
	in.Fire = !ebiten.IsKeyPressed(ebiten.KeySpace)
}

func (g *Game) handleEvents() {
	for _, evt := range g.events {
		switch evt.Type {
		case ecs.EventBossSpawned:
			g.cues.Play(assets.CueWarning)
			if be, ok := evt.Data.(ecs.BossEvent); ok {
				g.banner = g.bossName(be)
				g.bannerAt = g.sim.Arena().Clock
			}
		case ecs.EventModeChanged:
			g.cues.Play(assets.CueFlash)
		case ecs.EventBossDefeated:
			g.cues.Play(assets.CueDefeat)
		case ecs.EventPlayerHit:
			g.cues.Play(assets.CueHit)
		case ecs.EventPhase2:
			g.cues.Play(assets.CuePhase)
		case ecs.EventLevelUp:
			g.cues.Play(assets.CuePhase)
			if le, ok := evt.Data.(ecs.LevelEvent); ok {
				g.notify(fmt.Sprintf("LEVEL %d: %s", le.Level, le.Upgrade.Label()))
			}
		}
		if g.debug {
			fmt.Printf("game: %s %+v\n", evt.Type, evt.Data)
		}
	}
	g.events = g.events[:0]
}

func (g *Game) bossName(be ecs.BossEvent) string {
	if d, ok := g.sim.Bosses().Descriptor(be.Kind); ok && d.Name != "" {
		return d.Name
	}
	return be.Kind.String()
}

// pollWatcher applies prefab edits without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watch == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watch.Events:
			if !ok {
				g.watch = nil
				return
			}
			if !change.Bosses() {
				continue
			}
			specs, err := prefabs.LoadBossSpecs()
			if err != nil {
				g.notify(fmt.Sprintf("reload failed: %v", err))
				continue
			}
			if err := g.sim.ReloadBosses(specs); err != nil {
				g.notify(err.Error())
				continue
			}
			g.notify("bosses reloaded")
		case err, ok := <-g.watch.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) notify(msg string) {
	log.Print(msg)
	g.toast = msg
	g.toastAt = time.Now()
}

func (g *Game) copyReport() {
	report := g.sim.Snapshot().Report()
	if !g.clipboardOK {
		g.notify("clipboard unavailable")
		fmt.Println(report)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(report))
	g.notify("report copied")
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	a := g.sim.Arena()
	return a.Width, a.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
