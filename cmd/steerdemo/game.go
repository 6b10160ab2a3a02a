package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/1siamBot/steer-engine/engine/collision"
	"github.com/1siamBot/steer-engine/engine/config"
	"github.com/1siamBot/steer-engine/engine/core"
	"github.com/1siamBot/steer-engine/engine/input"
	"github.com/1siamBot/steer-engine/engine/record"
	"github.com/1siamBot/steer-engine/engine/render"
	"github.com/1siamBot/steer-engine/engine/scene"
	"github.com/1siamBot/steer-engine/engine/systems"
)

// flushTicks is how often recorded frames are written
const flushTicks = 120

// Game implements ebiten.Game
type Game struct {
	cfg      config.Config
	log      zerolog.Logger
	loop     *core.GameLoop
	renderer *render.Renderer
	input    *input.InputState

	order core.OrderKind
	avoid bool
}

// NewGame builds the world, systems and scene. rec may be nil.
func NewGame(cfg config.Config, log zerolog.Logger, rec *record.Recorder) (*Game, error) {
	metrics, err := systems.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	loop := core.NewGameLoop(cfg.TickRate)
	steer := systems.NewSteeringSystem(cfg.Steering(), collision.NewSweepDetector(), loop.Events)
	steer.Metrics = metrics
	steer.Log = log.With().Str("system", "steering").Logger()
	loop.World.AddSystem(steer)
	loop.World.AddSystem(&systems.MovementSystem{})
	if rec != nil {
		loop.World.AddSystem(&record.System{
			Recorder:   rec,
			FlushEvery: flushTicks,
			Log:        log.With().Str("system", "record").Logger(),
		})
	}

	g := &Game{
		cfg:      cfg,
		log:      log,
		loop:     loop,
		renderer: render.NewRenderer(render.NewCamera(cfg.Demo.Width, cfg.Demo.Height)),
		input:    input.NewInputState(),
		order:    core.OrderArrive,
		avoid:    true,
	}
	g.subscribe()

	vehicles := scene.Populate(loop.World, loop.Events, cfg)
	loop.Events.Dispatch()
	log.Info().
		Int("vehicles", len(vehicles)).
		Int("obstacles", len(loop.World.Query(core.CompObstacle))).
		Int64("seed", cfg.Demo.Seed).
		Msg("scene ready")

	loop.Play()
	return g, nil
}

func (g *Game) subscribe() {
	bus := g.loop.Events
	bus.On(core.EvtVehicleSpawned, func(e core.Event) {
		g.log.Debug().Uint64("entity", uint64(e.Entity)).Msg("vehicle spawned")
	})
	bus.On(core.EvtOrderIssued, func(e core.Event) {
		g.log.Info().Uint64("entity", uint64(e.Entity)).Stringer("order", e.Payload.(core.OrderKind)).Msg("order issued")
	})
	bus.On(core.EvtArrived, func(e core.Event) {
		g.log.Info().Uint64("entity", uint64(e.Entity)).Uint64("tick", e.Tick).Msg("arrived")
	})
	bus.On(core.EvtPotentialCollision, func(e core.Event) {
		p := e.Payload.(core.CollisionPayload)
		g.log.Trace().Uint64("entity", uint64(e.Entity)).Uint64("obstacle", uint64(p.Obstacle)).Msg("potential collision")
	})
	bus.On(core.EvtCommandInvalid, func(e core.Event) {
		g.log.Warn().Uint64("entity", uint64(e.Entity)).Msg("vehicle coasting on invalid command")
	})
}

func (g *Game) Update() error {
	g.input.Update()
	g.handleCamera()

	for _, a := range g.input.Actions {
		switch a {
		case input.ActionOrderSeek:
			g.order = core.OrderSeek
		case input.ActionOrderArrive:
			g.order = core.OrderArrive
		case input.ActionOrderPursue:
			g.order = core.OrderPursue
		case input.ActionOrderEvade:
			g.order = core.OrderEvade
		case input.ActionOrderIntercept:
			g.order = core.OrderIntercept
		case input.ActionOrderFlee:
			g.order = core.OrderFlee
		case input.ActionNextVehicle:
			scene.SelectNext(g.loop.World)
		case input.ActionToggleAvoid:
			g.avoid = !g.avoid
			scene.SetAvoidance(g.loop.World, g.avoid)
			g.log.Info().Bool("avoidance", g.avoid).Msg("toggled obstacle avoidance")
		case input.ActionTogglePause:
			g.loop.TogglePause()
		case input.ActionToggleDebug:
			g.renderer.ShowDebug = !g.renderer.ShowDebug
		case input.ActionQuit:
			return ebiten.Termination
		}
	}

	at := g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
	if selected := scene.Selected(g.loop.World); selected != 0 {
		switch {
		case g.input.Clicked():
			scene.IssueOrder(g.loop.World, g.loop.Events, selected, g.order, at)
		case g.input.RightJustPressed:
			scene.IssueOrder(g.loop.World, g.loop.Events, selected, core.OrderSeek, at)
		}
	}

	g.loop.Update()
	g.loop.Events.Dispatch()
	return nil
}

func (g *Game) handleCamera() {
	cam := g.renderer.Camera
	speed := cam.Speed / float64(ebiten.TPS())

	dx, dy := g.input.PanDelta()
	if dx != 0 || dy != 0 {
		cam.Pan(dx*speed, dy*speed)
	}
	if g.input.ScrollY != 0 {
		cam.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
	}
	// Middle mouse drag to pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cam.Pan(float64(-g.input.MouseDX), float64(-g.input.MouseDY))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.loop.World
	g.renderer.Draw(screen, w)
	render.HUD{
		Paused:   g.loop.State != core.StateRunning,
		Avoid:    g.avoid,
		Order:    g.order,
		Selected: scene.Selected(w),
		Tick:     g.loop.CurrentTick(),
		TPS:      ebiten.ActualTPS(),
	}.Draw(screen, w)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.renderer.Camera.ScreenW = outsideWidth
	g.renderer.Camera.ScreenH = outsideHeight
	return outsideWidth, outsideHeight
}
