package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Scene  SceneConfig  `yaml:"scene"`
	Params ParamsConfig `yaml:"params"`
	Assets AssetsConfig `yaml:"assets"`
	Panel  PanelConfig  `yaml:"panel"`
	Log    LogConfig    `yaml:"log"`
	Seed   int64        `yaml:"seed"` // 0 means time based
}

// WindowConfig contains window and swap-chain configuration
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	VSync     bool   `yaml:"vsync"`
	Samples   int    `yaml:"samples"`   // MSAA samples, 0 disables antialiasing
	FrameRate int    `yaml:"framerate"` // only used when vsync is off, 0 = uncapped
}

// CameraConfig contains the perspective camera and orbit control settings
type CameraConfig struct {
	FOV         float64 `yaml:"fov"`
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Damping     float64 `yaml:"damping"`
	RotateSpeed float64 `yaml:"rotate_speed"`
	ZoomSpeed   float64 `yaml:"zoom_speed"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
}

// SceneConfig contains the fixed geometry of the globe
type SceneConfig struct {
	GlobeRadius     float64 `yaml:"globe_radius"`
	WidthSegments   int     `yaml:"width_segments"`
	HeightSegments  int     `yaml:"height_segments"`
	AtmosphereColor RGB     `yaml:"atmosphere_color"`
	StarColor       RGB     `yaml:"star_color"`
}

// RGB is a linear color with components in [0, 1]
type RGB struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// ParamsConfig holds the startup values of the tunable parameters
type ParamsConfig struct {
	SphereSize              float64 `yaml:"sphere_size"`
	SphereRotationSpeed     float64 `yaml:"sphere_rotation_speed"`
	StopEarth               bool    `yaml:"stop_earth"`
	AtmosphereScale         float64 `yaml:"atmosphere_scale"`
	AtmosphereRotationSpeed float64 `yaml:"atmosphere_rotation_speed"`
	NumStars                int     `yaml:"num_stars"`
	StarSize                float64 `yaml:"star_size"`
	StarSpeed               float64 `yaml:"star_speed"`
	StopStars               bool    `yaml:"stop_stars"`
	CameraX                 float64 `yaml:"camera_x"`
	CameraY                 float64 `yaml:"camera_y"`
	CameraZ                 float64 `yaml:"camera_z"`
}

// AssetsConfig points at the globe texture and optional shader overrides
type AssetsConfig struct {
	Texture   string `yaml:"texture"`
	ShaderDir string `yaml:"shader_dir"` // empty uses the built-in shaders
}

// PanelConfig controls the browser parameter panel
type PanelConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LogConfig controls logging
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty logs to the console only
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Globe",
			VSync:     true,
			Samples:   4,
			FrameRate: 60,
		},
		Camera: CameraConfig{
			FOV:         75,
			Near:        0.1,
			Far:         1000,
			Damping:     0.05,
			RotateSpeed: 1.0,
			ZoomSpeed:   1.0,
			MinDistance: 0.5,
			MaxDistance: 200,
		},
		Scene: SceneConfig{
			GlobeRadius:     5,
			WidthSegments:   50,
			HeightSegments:  50,
			AtmosphereColor: RGB{0.3, 0.6, 1.0},
			StarColor:       RGB{1, 1, 1},
		},
		Params: ParamsConfig{
			SphereSize:              1,
			SphereRotationSpeed:     0.001,
			StopEarth:               false,
			AtmosphereScale:         1.15,
			AtmosphereRotationSpeed: 0.001,
			NumStars:                1000,
			StarSize:                1,
			StarSpeed:               0.05,
			StopStars:               false,
			CameraX:                 0,
			CameraY:                 0,
			CameraZ:                 15,
		},
		Assets: AssetsConfig{
			Texture: "public/globe.png",
		},
		Panel: PanelConfig{
			Enabled: true,
			Listen:  "127.0.0.1:8089",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate reports configuration values the viewer cannot run with
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("window samples must not be negative, got %d", c.Window.Samples))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera near/far invalid: %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Damping <= 0 || c.Camera.Damping > 1 {
		errs = append(errs, fmt.Errorf("camera damping must be in (0, 1], got %v", c.Camera.Damping))
	}
	if c.Camera.MinDistance < 0 || c.Camera.MinDistance > c.Camera.MaxDistance {
		errs = append(errs, fmt.Errorf("camera distance range invalid: [%v, %v]", c.Camera.MinDistance, c.Camera.MaxDistance))
	}
	if c.Scene.GlobeRadius <= 0 {
		errs = append(errs, fmt.Errorf("globe radius must be positive, got %v", c.Scene.GlobeRadius))
	}
	if c.Scene.WidthSegments < 3 || c.Scene.HeightSegments < 2 {
		errs = append(errs, fmt.Errorf("sphere needs at least 3x2 segments, got %dx%d", c.Scene.WidthSegments, c.Scene.HeightSegments))
	}
	if c.Panel.Enabled && c.Panel.Listen == "" {
		errs = append(errs, errors.New("panel enabled without a listen address"))
	}

	return errors.Join(errs...)
}

// LoadConfig loads the configuration from a file. The defaults are returned
// alongside the error when the file is missing or cannot be parsed.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
