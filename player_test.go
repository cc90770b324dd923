package main

import (
	"math"
	"testing"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerMoveBlockedByWall(t *testing.T) {
	m := parseTestMaze(t, `#####
#S  #
#G  #
#####`)
	p := NewPlayer(m.StartPos())

	// ram the west wall; x stays clear of it by the collision radius
	moved := p.Move(m, -5, 0)
	assert.InDelta(t, 0, moved, 1e-9)
	assert.Equal(t, 1.5, p.Position.X)
}

func TestPlayerSlidesAlongWall(t *testing.T) {
	m := parseTestMaze(t, `#####
#S  #
#  G#
#####`)
	p := NewPlayer(m.StartPos())

	// push diagonally into the north wall: y is blocked, x still moves
	moved := p.Move(m, 0.5, -0.5)
	assert.Greater(t, moved, 0.0)
	assert.InDelta(t, 2.0, p.Position.X, 1e-9)
	assert.Equal(t, 1.5, p.Position.Y)
}

func TestPlayerProbesNeverInWall(t *testing.T) {
	m := parseTestMaze(t, closedMaze)
	p := NewPlayer(m.StartPos())

	// drunken walk hammering the collision response from many angles
	for i := 0; i < 500; i++ {
		a := float64(i) * 0.37
		p.Move(m, math.Cos(a)*0.2, math.Sin(a)*0.2)

		r := p.CollisionRadius
		x, y := p.Position.X, p.Position.Y
		require.False(t, m.IsWall(x+r, y), "step %d east probe in wall at %v,%v", i, x, y)
		require.False(t, m.IsWall(x-r, y), "step %d west probe in wall at %v,%v", i, x, y)
		require.False(t, m.IsWall(x, y+r), "step %d south probe in wall at %v,%v", i, x, y)
		require.False(t, m.IsWall(x, y-r), "step %d north probe in wall at %v,%v", i, x, y)
	}
}

func TestPlayerRotateWraps(t *testing.T) {
	p := NewPlayer(geom.Vector2{X: 1.5, Y: 1.5})

	p.Rotate(-1)
	assert.InDelta(t, geom.Pi2-1, p.Angle, 1e-9)

	p.Rotate(geom.Pi2 + 1.5)
	assert.InDelta(t, 0.5, p.Angle, 1e-9)
	assert.GreaterOrEqual(t, p.Angle, 0.0)
	assert.Less(t, p.Angle, geom.Pi2)
}

func TestPlayerHealthClamping(t *testing.T) {
	p := NewPlayer(geom.Vector2{X: 1.5, Y: 1.5})

	p.TakeDamage(40)
	assert.Equal(t, 60, p.Health)

	p.TakeDamage(1000)
	assert.Equal(t, 0, p.Health)
	assert.False(t, p.IsAlive())

	p.Heal(25)
	assert.Equal(t, 25, p.Health)

	p.Heal(1000)
	assert.Equal(t, playerMaxHealth, p.Health)
}

func TestSnapOutOfWalls(t *testing.T) {
	m := parseTestMaze(t, `#####
#S G#
#####`)
	p := NewPlayer(m.StartPos())

	// force an illegal overlap with the west wall
	p.Position = geom.Vector2{X: 1.1, Y: 1.5}
	p.SnapOutOfWalls(m)
	assert.Equal(t, 1.5, p.Position.X)
	assert.Equal(t, 1.5, p.Position.Y)

	// a legal pose is untouched
	p.Position = geom.Vector2{X: 1.7, Y: 1.5}
	p.SnapOutOfWalls(m)
	assert.Equal(t, 1.7, p.Position.X)
}
