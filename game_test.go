package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingAudio logs every cue for assertions.
type recordingAudio struct {
	calls   []string
	volumes []float64
}

func (r *recordingAudio) PlayStart()     { r.calls = append(r.calls, "start") }
func (r *recordingAudio) PlayFootstep()  { r.calls = append(r.calls, "footstep") }
func (r *recordingAudio) PlayVictory()   { r.calls = append(r.calls, "victory") }
func (r *recordingAudio) PlayDamage()    { r.calls = append(r.calls, "damage") }
func (r *recordingAudio) PlayHeartbeat() { r.calls = append(r.calls, "heartbeat") }
func (r *recordingAudio) PlayGameOver()  { r.calls = append(r.calls, "gameover") }
func (r *recordingAudio) PlayPickup(kind PillKind) {
	if kind == PillRed {
		r.calls = append(r.calls, "pickup-red")
	} else {
		r.calls = append(r.calls, "pickup-blue")
	}
}
func (r *recordingAudio) SetAmbientVolume(v float64) { r.volumes = append(r.volumes, v) }
func (r *recordingAudio) StartLoop()                 { r.calls = append(r.calls, "loop-start") }
func (r *recordingAudio) StopLoop()                  { r.calls = append(r.calls, "loop-stop") }

func (r *recordingAudio) heard(cue string) bool {
	for _, c := range r.calls {
		if c == cue {
			return true
		}
	}
	return false
}

func testConfig() *Config {
	return &Config{
		ScreenWidth:  960,
		ScreenHeight: 600,
		RenderScale:  0.5,
		NumRays:      defaultNumRays,
		FOV:          defaultFOV,
		MaxDepth:     defaultMaxDepth,
		FogDistance:  15,
		MusicVolume:  0.4,
	}
}

// newTestGame builds a headless game: simulation plus collaborators,
// no framebuffer or renderer.
func newTestGame(t *testing.T, mazeText string) (*Game, *recordingAudio) {
	t.Helper()
	m, err := ParseMaze(strings.NewReader(mazeText))
	require.NoError(t, err)

	cfg := testConfig()
	ui, err := NewUI(cfg)
	require.NoError(t, err)

	audio := &recordingAudio{}
	g := &Game{
		cfg:     cfg,
		maze:    m,
		effects: NewEffects(),
		ui:      ui,
		audio:   audio,
		input:   NewInputPoller(playerRotateSpeed),
		state:   StateMenu,
	}
	g.resetSession()
	return g, audio
}

const corridorMaze = `##########
#S......G#
##########`

func TestMenuToPlayingToVictory(t *testing.T) {
	g, audio := newTestGame(t, corridorMaze)

	g.step(InputState{Confirm: true})
	require.Equal(t, StatePlaying, g.state)
	assert.True(t, audio.heard("start"))
	assert.True(t, audio.heard("loop-start"))

	// walk straight at the exit; victory has to arrive well before
	// the clock runs out
	forward := InputState{Forward: true}
	for i := 0; i < 600 && g.state == StatePlaying; i++ {
		g.step(forward)
	}

	assert.Equal(t, StateVictory, g.state)
	assert.Greater(t, g.effects.TimerRemaining, 0.0)
	assert.Equal(t, playerMaxHealth, g.player.Health)
	assert.True(t, audio.heard("victory"))
	assert.True(t, audio.heard("loop-stop"))

	g.step(InputState{Confirm: true})
	assert.Equal(t, StateMenu, g.state)
}

func TestFootstepsWhileWalking(t *testing.T) {
	g, audio := newTestGame(t, corridorMaze)
	g.step(InputState{Confirm: true})

	for i := 0; i < 40; i++ {
		g.step(InputState{Forward: true})
	}
	assert.True(t, audio.heard("footstep"))
}

func TestEscapeReturnsToMenu(t *testing.T) {
	g, audio := newTestGame(t, corridorMaze)
	g.step(InputState{Confirm: true})
	g.step(InputState{Cancel: true})

	assert.Equal(t, StateMenu, g.state)
	assert.True(t, audio.heard("loop-stop"))
}

const pillMaze = `#########
#S r b G#
#########`

func TestRedPillAppliedExactlyOnce(t *testing.T) {
	g, _ := newTestGame(t, pillMaze)
	g.state = StatePlaying

	red := g.pills[0]
	require.Equal(t, PillRed, red.Kind)

	timerBefore := g.effects.TimerRemaining
	g.player.Position = red.Position
	events := g.resolvePickups()

	assert.Equal(t, playerMaxHealth-pillRedDamage, g.player.Health)
	assert.Equal(t, timerBefore, g.effects.TimerRemaining, "red pill must not touch the clock")
	assert.True(t, red.Collected)
	assert.Greater(t, g.effects.AnxietyIntensity(), 0.0)

	var kinds []GameEventKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Contains(t, kinds, EventPillCollected)
	assert.Contains(t, kinds, EventFloatingText)

	// standing on the same spot again applies nothing further
	events = g.resolvePickups()
	assert.Empty(t, events)
	assert.Equal(t, playerMaxHealth-pillRedDamage, g.player.Health)
}

func TestBluePillEffects(t *testing.T) {
	t.Run("heals and costs time", func(t *testing.T) {
		g, _ := newTestGame(t, pillMaze)
		g.state = StatePlaying
		blue := g.pills[1]
		require.Equal(t, PillBlue, blue.Kind)

		g.player.Health = 50
		timerBefore := g.effects.TimerRemaining
		g.player.Position = blue.Position
		g.resolvePickups()

		assert.Equal(t, 60, g.player.Health)
		assert.Equal(t, timerBefore-pillBlueTimeCost, g.effects.TimerRemaining)
	})

	t.Run("heal caps at max health", func(t *testing.T) {
		g, _ := newTestGame(t, pillMaze)
		g.state = StatePlaying
		blue := g.pills[1]

		g.player.Health = 95
		g.player.Position = blue.Position
		g.resolvePickups()

		assert.Equal(t, playerMaxHealth, g.player.Health)
	})

	t.Run("time cost floors at zero without losing", func(t *testing.T) {
		g, _ := newTestGame(t, pillMaze)
		g.state = StatePlaying
		blue := g.pills[1]

		g.effects.TimerRemaining = 12
		g.player.Position = blue.Position
		g.resolvePickups()

		assert.Equal(t, 0.0, g.effects.TimerRemaining)
		// still Playing; only the tick decrement may end the session
		assert.Equal(t, StatePlaying, g.state)
	})
}

func TestIdlePenalty(t *testing.T) {
	g, audio := newTestGame(t, corridorMaze)
	g.step(InputState{Confirm: true})

	for i := 0; i < 60*5+2; i++ {
		g.step(InputState{})
	}

	assert.Equal(t, playerMaxHealth-idleDamage, g.player.Health)
	assert.True(t, audio.heard("damage"))
	assert.True(t, audio.heard("heartbeat"))
	assert.Greater(t, g.effects.AnxietyIntensity(), 0.0)
}

func TestTimerExpiryEndsSession(t *testing.T) {
	g, audio := newTestGame(t, corridorMaze)
	g.step(InputState{Confirm: true})

	g.effects.TimerRemaining = 0.05
	for i := 0; i < 10 && g.state == StatePlaying; i++ {
		g.step(InputState{})
	}

	assert.Equal(t, StateGameOver, g.state)
	assert.True(t, audio.heard("gameover"))
	assert.True(t, audio.heard("loop-stop"))

	g.step(InputState{Confirm: true})
	assert.Equal(t, StateMenu, g.state)
}

func TestHealthZeroEndsSession(t *testing.T) {
	g, audio := newTestGame(t, corridorMaze)
	g.step(InputState{Confirm: true})

	g.player.Health = 0
	events := g.tick(InputState{}, tickDt)
	g.dispatch(events)

	assert.Equal(t, StateGameOver, g.state)
	assert.Equal(t, "YOU COLLAPSED", g.overReason)
	assert.True(t, audio.heard("gameover"))

	// death carries its own event kind so listeners can tell the loss
	// causes apart
	var kinds []GameEventKind
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Contains(t, kinds, EventPlayerDied)
	assert.NotContains(t, kinds, EventTimeExpired)
}

func TestAmbientVolumeRisesTowardGoal(t *testing.T) {
	g, _ := newTestGame(t, corridorMaze)

	g.player.Position.X = 1.5
	far := g.ambientVolume()
	g.player.Position.X = 7.5
	near := g.ambientVolume()

	assert.Greater(t, near, far)
	assert.LessOrEqual(t, near, 1.0)
	assert.GreaterOrEqual(t, far, 0.0)
}

func TestSessionResetClearsState(t *testing.T) {
	g, _ := newTestGame(t, pillMaze)
	g.step(InputState{Confirm: true})

	g.player.Position = g.pills[0].Position
	g.resolvePickups()
	require.True(t, g.pills[0].Collected)
	require.Less(t, g.player.Health, playerMaxHealth)

	// back to menu and in again: fresh pills, full health, full clock
	g.step(InputState{Cancel: true})
	g.step(InputState{Confirm: true})

	assert.False(t, g.pills[0].Collected)
	assert.Equal(t, playerMaxHealth, g.player.Health)
	assert.Equal(t, sessionDuration, g.effects.TimerRemaining)
	assert.Equal(t, g.maze.StartPos(), g.player.Position)
}
