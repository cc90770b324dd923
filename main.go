// main.go
package main

import (
	_ "embed"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed assets/maze.txt
var defaultMaze string

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	maze, err := loadMaze(cfg)
	if err != nil {
		log.Fatalf("maze: %v", err)
	}

	var audio Audio = NopAudio{}
	if cfg.SoundOn {
		synth, err := NewSynthAudio(cfg.MusicVolume)
		if err != nil {
			// no sound device is not fatal, the game just runs silent
			log.Printf("audio disabled: %v", err)
		} else {
			audio = synth
		}
	}

	game, err := NewGame(cfg, maze, audio)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	ebiten.SetWindowTitle("The Backrooms")
	ebiten.SetWindowSize(cfg.ScreenWidth, cfg.ScreenHeight)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Vsync)
	ebiten.SetTPS(tickRate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func loadMaze(cfg *Config) (*Maze, error) {
	if cfg.MazePath == "" {
		return ParseMaze(strings.NewReader(defaultMaze))
	}
	f, err := os.Open(cfg.MazePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseMaze(f)
}
