// ui.go
package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// HUDSnapshot is the read-only game state the HUD draws from.
type HUDSnapshot struct {
	Health         int
	MaxHealth      int
	TimerRemaining float64
	FPS            float64
	Debug          bool
	PlayerX        float64
	PlayerY        float64
	PlayerAngle    float64
}

// UI draws every piece of on-screen text and chrome: the menu and end
// screens, the in-game HUD, and the floating pickup captions.
type UI struct {
	screenW int
	screenH int

	titleFace font.Face
	face      font.Face
	smallFace font.Face

	floating []*FloatingText
	clock    float64
}

func NewUI(cfg *Config) (*UI, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	opts := opentype.FaceOptions{DPI: 72, Hinting: font.HintingFull}

	opts.Size = 42
	titleFace, err := opentype.NewFace(tt, &opts)
	if err != nil {
		return nil, err
	}
	opts.Size = 20
	face, err := opentype.NewFace(tt, &opts)
	if err != nil {
		return nil, err
	}
	opts.Size = 14
	smallFace, err := opentype.NewFace(tt, &opts)
	if err != nil {
		return nil, err
	}

	return &UI{
		screenW:   cfg.ScreenWidth,
		screenH:   cfg.ScreenHeight,
		titleFace: titleFace,
		face:      face,
		smallFace: smallFace,
	}, nil
}

// PushFloating queues a pickup caption.
func (u *UI) PushFloating(msg string) {
	u.floating = append(u.floating, &FloatingText{Text: msg})
}

// ClearFloating drops queued captions on session reset.
func (u *UI) ClearFloating() {
	u.floating = u.floating[:0]
}

var (
	uiYellow = color.RGBA{224, 205, 120, 255}
	uiDim    = color.RGBA{150, 140, 100, 255}
	uiRed    = color.RGBA{220, 60, 60, 255}
	uiGreen  = color.RGBA{90, 200, 90, 255}
	uiWhite  = color.RGBA{235, 235, 230, 255}
)

func (u *UI) DrawMenu(screen *ebiten.Image) {
	u.clock += 1.0 / tickRate
	screen.Fill(color.RGBA{18, 16, 10, 255})

	u.drawCentered(screen, u.titleFace, "THE BACKROOMS", u.screenH/3, uiYellow)
	u.drawCentered(screen, u.face, "Find the exit before the clock runs out.", u.screenH/3+50, uiDim)
	u.drawCentered(screen, u.smallFace, "WASD move   mouse look   ESC quit to menu", u.screenH/3+80, uiDim)
	u.drawCentered(screen, u.smallFace, "Red pills hurt. Blue pills help, at a price.", u.screenH/3+102, uiDim)

	u.drawPrompt(screen, "Press ENTER to descend", u.screenH*3/4)
}

func (u *UI) DrawVictory(screen *ebiten.Image, timeLeft float64) {
	u.clock += 1.0 / tickRate
	u.dimWorld(screen)
	u.drawCentered(screen, u.titleFace, "YOU ESCAPED", u.screenH/3, uiGreen)
	u.drawCentered(screen, u.face,
		fmt.Sprintf("with %s to spare", formatTimer(timeLeft)), u.screenH/3+50, uiWhite)
	u.drawPrompt(screen, "Press ENTER for the menu", u.screenH*3/4)
}

func (u *UI) DrawGameOver(screen *ebiten.Image, reason string) {
	u.clock += 1.0 / tickRate
	u.dimWorld(screen)
	if reason == "" {
		reason = "TIME'S UP"
	}
	u.drawCentered(screen, u.titleFace, reason, u.screenH/3, uiRed)
	u.drawCentered(screen, u.face, "The backrooms keep you.", u.screenH/3+50, uiDim)
	u.drawPrompt(screen, "Press ENTER for the menu", u.screenH*3/4)
}

// DrawHUD paints the in-game overlay and advances the floating texts.
func (u *UI) DrawHUD(screen *ebiten.Image, snap HUDSnapshot, dt float64) {
	u.drawHealthBar(screen, snap)
	u.drawTimer(screen, snap.TimerRemaining)
	u.drawCrosshair(screen)
	u.drawFloating(screen, dt)

	if snap.Debug {
		msg := fmt.Sprintf("fps %.0f  pos %.2f,%.2f  angle %.2f",
			snap.FPS, snap.PlayerX, snap.PlayerY, snap.PlayerAngle)
		text.Draw(screen, msg, u.smallFace, 10, u.screenH-12, uiWhite)
	}
}

func (u *UI) drawHealthBar(screen *ebiten.Image, snap HUDSnapshot) {
	const barW, barH = 180, 16
	x, y := float32(16), float32(16)

	frac := float32(0)
	if snap.MaxHealth > 0 {
		frac = float32(snap.Health) / float32(snap.MaxHealth)
	}
	fill := uiGreen
	switch {
	case frac < 0.25:
		fill = uiRed
	case frac < 0.5:
		fill = uiYellow
	}

	vector.DrawFilledRect(screen, x-2, y-2, barW+4, barH+4, color.RGBA{0, 0, 0, 160}, false)
	vector.DrawFilledRect(screen, x, y, barW*frac, barH, fill, false)
	text.Draw(screen, fmt.Sprintf("%d", snap.Health), u.smallFace, int(x)+barW+10, int(y)+13, uiWhite)
}

func (u *UI) drawTimer(screen *ebiten.Image, remaining float64) {
	col := uiWhite
	if remaining < 30 {
		col = uiRed
	} else if remaining < 60 {
		col = uiYellow
	}
	msg := formatTimer(remaining)
	w := font.MeasureString(u.face, msg).Ceil()
	text.Draw(screen, msg, u.face, u.screenW-w-16, 32, col)
}

func (u *UI) drawCrosshair(screen *ebiten.Image) {
	cx, cy := float32(u.screenW)/2, float32(u.screenH)/2
	c := color.RGBA{230, 230, 230, 140}
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, c, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, c, false)
}

func (u *UI) drawFloating(screen *ebiten.Image, dt float64) {
	kept := u.floating[:0]
	for i, ft := range u.floating {
		ft.Update(dt)
		if ft.Expired() {
			continue
		}
		kept = append(kept, ft)

		a := uint8(255 * ft.Alpha())
		col := color.RGBA{230, 220, 160, a}
		y := u.screenH/2 - 40 - int(ft.RiseOffset()) - i*22
		u.drawCentered(screen, u.face, ft.Text, y, col)
	}
	u.floating = kept
}

// drawPrompt pulses so the call to action reads as interactive.
func (u *UI) drawPrompt(screen *ebiten.Image, msg string, y int) {
	pulse := 0.6 + 0.4*math.Sin(u.clock*3)
	col := color.RGBA{224, 205, 120, uint8(255 * pulse)}
	u.drawCentered(screen, u.face, msg, y, col)
}

func (u *UI) drawCentered(screen *ebiten.Image, face font.Face, msg string, y int, col color.Color) {
	w := font.MeasureString(face, msg).Ceil()
	text.Draw(screen, msg, face, (u.screenW-w)/2, y, col)
}

// dimWorld darkens the frozen world frame behind an end screen.
func (u *UI) dimWorld(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(u.screenW), float32(u.screenH),
		color.RGBA{0, 0, 0, 150}, false)
}

func formatTimer(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(math.Ceil(seconds))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
