// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	gomath "math"
	"slices"
	"time"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/engine/camera"
	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/remote"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Config holds all viewer settings.
type Config struct {
	Window      WindowConfig      `yaml:"window"`
	Camera      CameraConfig      `yaml:"camera"`
	Interaction InteractionConfig `yaml:"interaction"`
	EyeTracking EyeTrackingConfig `yaml:"eye_tracking"`
	Model       ModelConfig       `yaml:"model"`
	Remote      RemoteConfig      `yaml:"remote"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	Background [3]float32 `yaml:"background"`
	Screenshot string     `yaml:"screenshot_dir"` // Where the p key writes frames
	Inspector  bool       `yaml:"inspector"`      // Node table beside the scene
}

// CameraConfig holds the initial orbit camera state. Angles are radians
// except the field of view, which is degrees.
type CameraConfig struct {
	Distance    float32 `yaml:"distance"`
	Theta       float32 `yaml:"theta"`
	Phi         float32 `yaml:"phi"`
	FovY        float32 `yaml:"fov"`
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	RotateSpeed float32 `yaml:"rotate_speed"`
	PanDepth    float32 `yaml:"pan_depth"`
	PanFactor   float32 `yaml:"pan_factor"`
}

// Settings converts to the camera package settings.
func (c CameraConfig) Settings() camera.Settings {
	return camera.Settings{
		Distance:    c.Distance,
		Theta:       c.Theta,
		Phi:         c.Phi,
		FovY:        c.FovY,
		Near:        c.Near,
		Far:         c.Far,
		RotateSpeed: c.RotateSpeed,
		PanDepth:    c.PanDepth,
		PanFactor:   c.PanFactor,
	}
}

// ControllerSettings converts the interaction and eye tracking sections.
func (c *Config) ControllerSettings() interaction.Settings {
	e := c.EyeTracking
	return interaction.Settings{
		RotateStep: c.Interaction.RotateStep,
		Eyes: interaction.EyeSettings{
			Enabled:  e.Enabled,
			LeftRef:  math.Vec2Of(e.LeftRef),
			RightRef: math.Vec2Of(e.RightRef),
			Radius:   e.Radius,
			Epsilon:  e.Epsilon,
		},
	}
}

// RemoteSettings converts the remote section.
func (c *Config) RemoteSettings() remote.Config {
	return remote.Config{WriteTimeout: c.Remote.WriteTimeout, PingInterval: c.Remote.PingInterval}
}

// BackgroundColor returns the clear color.
func (w WindowConfig) BackgroundColor() palette.Color {
	return palette.Color{R: w.Background[0], G: w.Background[1], B: w.Background[2], A: 1}
}

// InteractionConfig holds joint manipulation settings.
type InteractionConfig struct {
	RotateStep float32 `yaml:"rotate_step"` // Degrees per wheel notch or arrow press
}

// EyeTrackingConfig holds the look-at-cursor settings.
type EyeTrackingConfig struct {
	Enabled  bool       `yaml:"enabled"`
	LeftRef  [2]float32 `yaml:"left_ref"`  // Screen point the left pupil is centered on
	RightRef [2]float32 `yaml:"right_ref"` // Screen point the right pupil is centered on
	Radius   float32    `yaml:"radius"`
	Epsilon  float32    `yaml:"epsilon"`
}

// ModelConfig selects the creature.
type ModelConfig struct {
	Name string `yaml:"name"`
	Axes bool   `yaml:"axes"`
}

// RemoteConfig holds the session server settings.
type RemoteConfig struct {
	Listen       string        `yaml:"listen"` // Empty disables the server
	WriteTimeout time.Duration `yaml:"write_timeout"`
	PingInterval time.Duration `yaml:"ping_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Creature Poser",
			Width:      500,
			Height:     500,
			Fullscreen: false,
			VSync:      true,
			Background: [3]float32{0, 0.5, 0.5},
			Screenshot: "screenshots",
		},
		Camera: CameraConfig{
			Distance:    6,
			Theta:       gomath.Pi / 2,
			Phi:         gomath.Pi / 6,
			FovY:        45,
			Near:        0.01,
			Far:         100,
			RotateSpeed: 1,
			PanDepth:    0.5,
			PanFactor:   0.185,
		},
		Interaction: InteractionConfig{
			RotateStep: 2.5,
		},
		EyeTracking: EyeTrackingConfig{
			Enabled:  true,
			LeftRef:  [2]float32{212, 180},
			RightRef: [2]float32{288, 180},
			Radius:   0.03,
			Epsilon:  0.01,
		},
		Model: ModelConfig{
			Name: assembly.ModelSpider,
			Axes: true,
		},
		Remote: RemoteConfig{
			Listen:       "",
			WriteTimeout: 10 * time.Second,
			PingInterval: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera distance %v must be positive", c.Camera.Distance))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("camera clip planes need 0 < near (%v) < far (%v)", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		errs = append(errs, fmt.Errorf("camera fov %v must be in (0, 180)", c.Camera.FovY))
	}
	if c.Camera.PanDepth < 0 || c.Camera.PanDepth > 1 {
		errs = append(errs, fmt.Errorf("camera pan_depth %v must be in [0, 1]", c.Camera.PanDepth))
	}
	if c.Interaction.RotateStep <= 0 {
		errs = append(errs, fmt.Errorf("interaction rotate_step %v must be positive", c.Interaction.RotateStep))
	}
	if c.Remote.Listen != "" && (c.Remote.WriteTimeout <= 0 || c.Remote.PingInterval <= 0) {
		errs = append(errs, fmt.Errorf("remote write_timeout and ping_interval must be positive"))
	}
	if c.EyeTracking.Epsilon <= 0 {
		errs = append(errs, fmt.Errorf("eye_tracking epsilon %v must be positive", c.EyeTracking.Epsilon))
	}
	if !slices.Contains(assembly.Models, c.Model.Name) {
		errs = append(errs, fmt.Errorf("unknown model %q (want one of %v)", c.Model.Name, assembly.Models))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
