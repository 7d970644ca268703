// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	World    WorldConfig    `yaml:"world"`
	Player   PlayerConfig   `yaml:"player"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	ShowFPS    bool    `yaml:"show_fps"`
}

// WorldConfig holds terrain and streaming settings.
type WorldConfig struct {
	RenderDistance int    `yaml:"render_distance"` // in chunks
	AtlasPath      string `yaml:"atlas_path"`
}

// PlayerConfig holds movement and interaction settings.
type PlayerConfig struct {
	Reach       float32 `yaml:"reach"` // block interaction range
	Speed       float32 `yaml:"speed"` // fly speed, blocks per second
	Sensitivity float32 `yaml:"sensitivity"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        70,
			ShowFPS:    false,
		},
		World: WorldConfig{
			RenderDistance: 8,
			AtlasPath:      "assets/atlas.png",
		},
		Player: PlayerConfig{
			Reach:       6,
			Speed:       12,
			Sensitivity: 0.1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Clamp pulls out-of-range settings back to usable values.
func (c *Config) Clamp() {
	if c.World.RenderDistance < 1 {
		c.World.RenderDistance = 1
	}
	if c.World.RenderDistance > 32 {
		c.World.RenderDistance = 32
	}
	if c.Graphics.FOV < 30 {
		c.Graphics.FOV = 30
	}
	if c.Graphics.FOV > 120 {
		c.Graphics.FOV = 120
	}
	if c.Player.Reach <= 0 {
		c.Player.Reach = 6
	}
}
