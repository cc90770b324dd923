// game.go
package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/harbdog/raycaster-go/geom"
)

type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StateVictory
	StateGameOver
)

const (
	tickRate      = 60
	tickDt        = 1.0 / tickRate
	goalReach     = 0.9
	ambientRange  = 20.0
	ambientWeight = 0.4
)

// Game wires the simulation to ebiten: Update advances one fixed tick,
// Draw paints the current state. The simulation itself lives in tick,
// which only mutates game state and reports side effects as events;
// Update dispatches those to the audio and UI collaborators afterward.
type Game struct {
	cfg  *Config
	maze *Maze

	player  *Player
	effects *Effects
	pills   []*Pill
	sprites []*Sprite

	fb        *Framebuffer
	renderer  *Renderer
	spriteRen *SpriteRenderer
	ui        *UI
	minimap   *Minimap
	audio     Audio
	input     *InputPoller

	state      GameState
	overReason string
	debug      bool
}

func NewGame(cfg *Config, m *Maze, audio Audio) (*Game, error) {
	tm, err := NewTextureManager(cfg.AssetDir)
	if err != nil {
		return nil, fmt.Errorf("loading textures: %w", err)
	}
	ui, err := NewUI(cfg)
	if err != nil {
		return nil, fmt.Errorf("building ui: %w", err)
	}

	g := &Game{
		cfg:       cfg,
		maze:      m,
		effects:   NewEffects(),
		fb:        NewFramebuffer(cfg.renderWidth(), cfg.renderHeight()),
		renderer:  NewRenderer(cfg, tm),
		spriteRen: NewSpriteRenderer(cfg, tm),
		ui:        ui,
		minimap:   NewMinimap(m, cfg),
		audio:     audio,
		input:     NewInputPoller(playerRotateSpeed),
		state:     StateMenu,
		debug:     cfg.Debug,
	}
	g.resetSession()
	return g, nil
}

// resetSession rebuilds all per-session state from the maze. Called on
// every transition into Playing so no stale timers or collected pills
// leak between runs.
func (g *Game) resetSession() {
	g.player = NewPlayer(g.maze.StartPos())
	g.effects.Reset()
	g.ui.ClearFloating()

	g.pills = g.pills[:0]
	g.sprites = g.sprites[:0]
	for _, spawn := range g.maze.PillSpawns() {
		pl := NewPill(spawn.Pos, spawn.Kind)
		g.pills = append(g.pills, pl)
		g.sprites = append(g.sprites, NewPillSprite(pl))
	}
	g.placeLights()
}

// placeLights scatters ceiling lights on a fixed lattice over floor
// tiles. Deterministic for a given maze.
func (g *Game) placeLights() {
	for y := 0; y < g.maze.Height(); y++ {
		for x := 0; x < g.maze.Width(); x++ {
			if x%3 == 1 && y%3 == 1 && !g.maze.TileAt(x, y).Solid() {
				pos := geom.Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				g.sprites = append(g.sprites, NewLightSprite(pos))
			}
		}
	}
}

func (g *Game) Update() error {
	g.step(g.input.Poll(tickDt))
	return nil
}

// step runs the state machine for one tick of input. Split from Update
// so the whole flow can be driven without a window behind it.
func (g *Game) step(in InputState) {
	if in.DebugToggle {
		g.debug = !g.debug
	}

	switch g.state {
	case StateMenu:
		if in.Confirm {
			g.startSession()
		}
	case StatePlaying:
		if in.Cancel {
			g.leavePlaying(StateMenu)
			return
		}
		g.dispatch(g.tick(in, tickDt))
	case StateVictory, StateGameOver:
		if in.Confirm {
			g.state = StateMenu
		}
	}
}

func (g *Game) startSession() {
	g.resetSession()
	g.state = StatePlaying
	g.input.Capture()
	g.dispatch([]GameEvent{{Kind: EventSessionStarted}})
}

func (g *Game) leavePlaying(next GameState) {
	g.state = next
	g.input.Release()
	g.audio.StopLoop()
}

// tick advances the Playing simulation by dt and returns the side
// effects for the driver to dispatch. It touches no audio or UI
// directly, which is what lets the tests drive it headless.
func (g *Game) tick(in InputState, dt float64) []GameEvent {
	var events []GameEvent

	g.player.Rotate(in.TurnDelta)

	moved := 0.0
	if in.Forward {
		moved += g.player.MoveForward(g.maze, g.player.MoveSpeed, dt)
	}
	if in.Backward {
		moved += g.player.MoveForward(g.maze, -g.player.MoveSpeed, dt)
	}
	if in.StrafeLeft {
		moved += g.player.Strafe(g.maze, -g.player.StrafeSpeed, dt)
	}
	if in.StrafeRight {
		moved += g.player.Strafe(g.maze, g.player.StrafeSpeed, dt)
	}
	g.player.SnapOutOfWalls(g.maze)

	for _, pl := range g.pills {
		pl.Update(dt)
	}
	for _, s := range g.sprites {
		s.Update(dt)
	}

	events = append(events, g.resolvePickups()...)

	if g.effects.TickFootsteps(in.Moving(), dt) {
		events = append(events, GameEvent{Kind: EventFootstep})
	}

	if g.effects.TickIdle(moved, dt) {
		g.player.TakeDamage(idleDamage)
		g.effects.TriggerDamage()
		g.effects.TriggerAnxiety()
		events = append(events,
			GameEvent{Kind: EventDamageTaken},
			GameEvent{Kind: EventHeartbeat},
			floatingTextEvent(fmt.Sprintf("-%d HP  KEEP MOVING", idleDamage)),
		)
	}

	g.effects.Update(dt)

	events = append(events, GameEvent{Kind: EventAmbientVolume, Volume: g.ambientVolume()})

	pos := g.player.Position
	switch {
	case g.maze.IsGoal(pos.X, pos.Y, goalReach):
		g.leavePlaying(StateVictory)
		events = append(events, GameEvent{Kind: EventVictory})
	case g.effects.TimerRemaining <= 0:
		g.overReason = "TIME'S UP"
		g.leavePlaying(StateGameOver)
		events = append(events, GameEvent{Kind: EventTimeExpired})
	case !g.player.IsAlive():
		g.overReason = "YOU COLLAPSED"
		g.leavePlaying(StateGameOver)
		events = append(events, GameEvent{Kind: EventPlayerDied})
	}

	return events
}

// resolvePickups applies each touched pill exactly once; the Collected
// flag guards re-entry.
func (g *Game) resolvePickups() []GameEvent {
	var events []GameEvent
	pos := g.player.Position
	for _, pl := range g.pills {
		if !pl.CanCollect(pos.X, pos.Y) {
			continue
		}
		pl.Collected = true
		events = append(events, GameEvent{Kind: EventPillCollected, Pill: pl.Kind})
		switch pl.Kind {
		case PillRed:
			g.player.TakeDamage(pillRedDamage)
			g.effects.TriggerDamage()
			g.effects.TriggerAnxiety()
			events = append(events, floatingTextEvent(fmt.Sprintf("-%d HP", pillRedDamage)))
		case PillBlue:
			g.player.Heal(pillBlueHeal)
			g.effects.ReduceTimer(pillBlueTimeCost)
			events = append(events, floatingTextEvent(fmt.Sprintf("+%d HP  -%.0fs", pillBlueHeal, pillBlueTimeCost)))
		}
	}
	return events
}

// ambientVolume rises as the exit nears, clamped to [0, 1].
func (g *Game) ambientVolume() float64 {
	goal := g.maze.GoalPos()
	dist := geom.Distance(g.player.Position.X, g.player.Position.Y, goal.X, goal.Y)
	intensity := 1 - math.Min(dist/ambientRange, 1)
	return geom.Clamp(g.cfg.MusicVolume+ambientWeight*intensity, 0, 1)
}

func (g *Game) dispatch(events []GameEvent) {
	for _, ev := range events {
		switch ev.Kind {
		case EventSessionStarted:
			g.audio.PlayStart()
			g.audio.StartLoop()
		case EventFootstep:
			g.audio.PlayFootstep()
		case EventDamageTaken:
			g.audio.PlayDamage()
		case EventHeartbeat:
			g.audio.PlayHeartbeat()
		case EventPillCollected:
			g.audio.PlayPickup(ev.Pill)
		case EventFloatingText:
			g.ui.PushFloating(ev.Text)
		case EventAmbientVolume:
			g.audio.SetAmbientVolume(ev.Volume)
		case EventVictory:
			g.audio.PlayVictory()
		case EventTimeExpired, EventPlayerDied:
			g.audio.PlayGameOver()
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.state {
	case StateMenu:
		g.ui.DrawMenu(screen)
	case StatePlaying:
		g.drawWorld(screen)
	case StateVictory:
		g.drawWorld(screen)
		g.ui.DrawVictory(screen, g.effects.TimerRemaining)
	case StateGameOver:
		g.drawWorld(screen)
		g.ui.DrawGameOver(screen, g.overReason)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	g.renderer.RenderWorld(g.fb, g.maze, g.player)
	g.spriteRen.Render(g.fb, g.sprites, g.player, g.renderer.ZBuffer())
	g.renderer.Composite(g.fb, g.effects)

	dx, dy := g.effects.ShakeOffset()
	g.fb.Blit(screen, 1/g.cfg.RenderScale, dx, dy)

	if g.state == StatePlaying {
		g.minimap.Draw(screen, g.player)
		g.ui.DrawHUD(screen, HUDSnapshot{
			Health:         g.player.Health,
			MaxHealth:      g.player.MaxHealth,
			TimerRemaining: g.effects.TimerRemaining,
			FPS:            ebiten.ActualFPS(),
			Debug:          g.debug,
			PlayerX:        g.player.Position.X,
			PlayerY:        g.player.Position.Y,
			PlayerAngle:    g.player.Angle,
		}, tickDt)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.ScreenWidth, g.cfg.ScreenHeight
}
