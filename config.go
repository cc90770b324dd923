// config.go
package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/viper"
)

// Config collects every tunable the engine reads at startup. Values
// come from config.yml in the working directory when present,
// otherwise from the defaults below.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	RenderScale  float64

	NumRays  int
	FOV      float64
	MaxDepth float64

	FogDistance    float64
	Flashlight     bool
	FlashlightGain float64

	// AssetDir overrides the built-in procedural textures; when set,
	// every required texture must exist there.
	AssetDir string
	// MazePath overrides the embedded maze.
	MazePath string

	MusicVolume float64
	SoundOn     bool

	Fullscreen bool
	Vsync      bool
	Debug      bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("screen.width", 960)
	v.SetDefault("screen.height", 600)
	v.SetDefault("screen.renderScale", 0.5)
	v.SetDefault("screen.fullscreen", false)
	v.SetDefault("screen.vsync", true)

	v.SetDefault("raycaster.numRays", 80)
	v.SetDefault("raycaster.fovDegrees", 60.0)
	v.SetDefault("raycaster.maxDepth", 20.0)

	v.SetDefault("render.fogDistance", 15.0)
	v.SetDefault("render.flashlight", true)
	v.SetDefault("render.flashlightGain", 0.35)

	v.SetDefault("assets.dir", "")
	v.SetDefault("assets.maze", "")

	v.SetDefault("audio.musicVolume", 0.4)
	v.SetDefault("audio.enabled", true)

	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		ScreenWidth:    v.GetInt("screen.width"),
		ScreenHeight:   v.GetInt("screen.height"),
		RenderScale:    v.GetFloat64("screen.renderScale"),
		Fullscreen:     v.GetBool("screen.fullscreen"),
		Vsync:          v.GetBool("screen.vsync"),
		NumRays:        v.GetInt("raycaster.numRays"),
		FOV:            v.GetFloat64("raycaster.fovDegrees") * math.Pi / 180,
		MaxDepth:       v.GetFloat64("raycaster.maxDepth"),
		FogDistance:    v.GetFloat64("render.fogDistance"),
		Flashlight:     v.GetBool("render.flashlight"),
		FlashlightGain: v.GetFloat64("render.flashlightGain"),
		AssetDir:       v.GetString("assets.dir"),
		MazePath:       v.GetString("assets.maze"),
		MusicVolume:    v.GetFloat64("audio.musicVolume"),
		SoundOn:        v.GetBool("audio.enabled"),
		Debug:          v.GetBool("debug"),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("invalid screen size %dx%d", c.ScreenWidth, c.ScreenHeight)
	}
	if c.NumRays <= 0 {
		return fmt.Errorf("numRays must be positive, got %d", c.NumRays)
	}
	// the wall pass paints fixed-width slices, so the internal render
	// width must divide evenly by the ray count
	if c.renderWidth()%c.NumRays != 0 {
		return fmt.Errorf("render width %d not divisible by numRays %d", c.renderWidth(), c.NumRays)
	}
	if c.FOV <= 0 || c.FOV >= math.Pi {
		return fmt.Errorf("fov must be in (0, 180) degrees")
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("maxDepth must be positive")
	}
	if c.MusicVolume < 0 || c.MusicVolume > 1 {
		return fmt.Errorf("musicVolume must be in [0, 1], got %v", c.MusicVolume)
	}
	return nil
}

func (c *Config) renderWidth() int {
	return int(float64(c.ScreenWidth) * c.RenderScale)
}

func (c *Config) renderHeight() int {
	return int(float64(c.ScreenHeight) * c.RenderScale)
}
