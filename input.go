// input.go
package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const mouseSensitivity = 0.003

// InputState is the per-tick snapshot the simulation consumes. It is a
// plain value so the game tick can be driven from tests without any
// window or device behind it.
type InputState struct {
	Forward     bool
	Backward    bool
	StrafeLeft  bool
	StrafeRight bool
	// TurnDelta is the look rotation for this tick, radians, positive
	// clockwise. Combines mouse delta and the turn keys.
	TurnDelta float64

	Confirm     bool
	Cancel      bool
	DebugToggle bool
}

// Moving reports whether any movement input is held, driving the
// footstep cadence.
func (in InputState) Moving() bool {
	return in.Forward || in.Backward || in.StrafeLeft || in.StrafeRight
}

// InputPoller reads the keyboard and mouse through ebiten and folds
// them into InputState snapshots. It owns the cursor-capture state and
// the previous cursor position for delta computation.
type InputPoller struct {
	wantCapture bool
	captured    bool
	lastCursorX int
	haveCursor  bool

	keyTurnSpeed float64
}

func NewInputPoller(rotSpeed float64) *InputPoller {
	return &InputPoller{keyTurnSpeed: rotSpeed}
}

// Poll reads the devices once. dt scales the key-turn contribution.
func (ip *InputPoller) Poll(dt float64) InputState {
	ip.applyCursorMode()
	in := InputState{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyD),
		Confirm:     inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Cancel:      inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		DebugToggle: inpututil.IsKeyJustPressed(ebiten.KeyF3),
	}

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.TurnDelta -= ip.keyTurnSpeed * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.TurnDelta += ip.keyTurnSpeed * dt
	}
	in.TurnDelta += ip.mouseDelta()

	return in
}

// Capture requests a hidden, locked cursor for mouse look; Release
// undoes it when the game leaves the Playing state. The mode change is
// deferred to the next Poll so it only ever runs under a live window.
func (ip *InputPoller) Capture() { ip.wantCapture = true }

func (ip *InputPoller) Release() { ip.wantCapture = false }

func (ip *InputPoller) applyCursorMode() {
	if ip.wantCapture == ip.captured {
		return
	}
	if ip.wantCapture {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		ip.haveCursor = false
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	ip.captured = ip.wantCapture
}

func (ip *InputPoller) mouseDelta() float64 {
	if !ip.captured {
		return 0
	}
	x, _ := ebiten.CursorPosition()
	if !ip.haveCursor {
		ip.lastCursorX = x
		ip.haveCursor = true
		return 0
	}
	dx := x - ip.lastCursorX
	ip.lastCursorX = x
	return float64(dx) * mouseSensitivity
}
