// player.go
package main

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	playerMoveSpeed       = 3.0
	playerStrafeSpeed     = 2.5
	playerRotateSpeed     = 2.5
	playerCollisionRadius = 0.3
	playerMaxHealth       = 100
)

type Player struct {
	Position        geom.Vector2
	Angle           float64
	Health          int
	MaxHealth       int
	MoveSpeed       float64
	StrafeSpeed     float64
	RotSpeed        float64
	CollisionRadius float64
}

func NewPlayer(pos geom.Vector2) *Player {
	return &Player{
		Position:        pos,
		Angle:           0,
		Health:          playerMaxHealth,
		MaxHealth:       playerMaxHealth,
		MoveSpeed:       playerMoveSpeed,
		StrafeSpeed:     playerStrafeSpeed,
		RotSpeed:        playerRotateSpeed,
		CollisionRadius: playerCollisionRadius,
	}
}

// Move applies a world-space displacement with axis-separated collision
// resolution: each axis is tested independently against the maze so the
// player slides along walls instead of sticking to them. Returns the
// distance actually moved.
func (p *Player) Move(m *Maze, dx, dy float64) float64 {
	oldX, oldY := p.Position.X, p.Position.Y

	newX := oldX + dx
	if p.collides(m, newX, oldY) {
		newX = oldX
	}
	newY := oldY + dy
	if p.collides(m, newX, newY) {
		newY = oldY
	}

	p.Position.X = newX
	p.Position.Y = newY
	return geom.Distance(oldX, oldY, newX, newY)
}

// MoveForward moves along the facing angle; negative speed moves backward.
func (p *Player) MoveForward(m *Maze, speed, dt float64) float64 {
	return p.Move(m, math.Cos(p.Angle)*speed*dt, math.Sin(p.Angle)*speed*dt)
}

// Strafe moves perpendicular to the facing angle; negative speed is left.
func (p *Player) Strafe(m *Maze, speed, dt float64) float64 {
	a := p.Angle + geom.HalfPi
	return p.Move(m, math.Cos(a)*speed*dt, math.Sin(a)*speed*dt)
}

// Rotate turns the view and wraps the angle to [0, 2π).
func (p *Player) Rotate(delta float64) {
	p.Angle = math.Mod(p.Angle+delta, geom.Pi2)
	if p.Angle < 0 {
		p.Angle += geom.Pi2
	}
}

// collides probes the four cardinal offsets of the collision circle.
func (p *Player) collides(m *Maze, x, y float64) bool {
	r := p.CollisionRadius
	return m.IsWall(x+r, y) || m.IsWall(x-r, y) || m.IsWall(x, y+r) || m.IsWall(x, y-r)
}

// SnapOutOfWalls nudges the player back to the current tile center when
// something left it overlapping a wall. A frame must always complete, so
// this corrects instead of failing.
func (p *Player) SnapOutOfWalls(m *Maze) {
	if !p.collides(m, p.Position.X, p.Position.Y) {
		return
	}
	p.Position.X = math.Floor(p.Position.X) + 0.5
	p.Position.Y = math.Floor(p.Position.Y) + 0.5
}

// TakeDamage lowers health, clamped at zero.
func (p *Player) TakeDamage(amount int) {
	p.Health = geom.ClampInt(p.Health-amount, 0, p.MaxHealth)
}

// Heal raises health, clamped at MaxHealth.
func (p *Player) Heal(amount int) {
	p.Health = geom.ClampInt(p.Health+amount, 0, p.MaxHealth)
}

func (p *Player) IsAlive() bool {
	return p.Health > 0
}
