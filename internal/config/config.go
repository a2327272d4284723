// Package config handles configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/planeshift/internal/engine/camera"
	"github.com/Faultbox/planeshift/internal/game/depenetration"
	"github.com/Faultbox/planeshift/internal/game/geometry"
	"github.com/Faultbox/planeshift/internal/game/motion"
	"github.com/Faultbox/planeshift/internal/game/plane"
	"github.com/Faultbox/planeshift/internal/game/projection"
	"github.com/Faultbox/planeshift/pkg/math"
)

// Config holds all settings.
type Config struct {
	Window        WindowConfig              `yaml:"window"`
	Camera        CameraConfig              `yaml:"camera"`
	Projection    ProjectionConfig          `yaml:"projection"`
	Switch        projection.SwitchSettings `yaml:"switch"`
	Depenetration depenetration.Settings    `yaml:"depenetration"`
	Motion        motion.Settings           `yaml:"motion"`
	Physics       PhysicsConfig             `yaml:"physics"`
	Level         LevelConfig               `yaml:"level"`
	Run           RunConfig                 `yaml:"run"`
	Logging       LoggingConfig             `yaml:"logging"`
}

// WindowConfig holds display settings for the debug view.
type WindowConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	Scale      float32 `yaml:"scale"` // pixels per world unit
}

// CameraConfig holds the camera rig and switch animation settings.
type CameraConfig struct {
	PivotOffset      math.Vec3             `yaml:"pivot_offset"`
	Distance         float32               `yaml:"distance"`
	ViewYaw          [2]float32            `yaml:"view_yaw"`
	RotationDuration float32               `yaml:"rotation_duration"` // seconds
	Easing           string                `yaml:"easing"`
	EasingCurve      []math.Keyframe       `yaml:"easing_curve"` // overrides Easing when set
	VerticalFollow   camera.FollowSettings `yaml:"vertical_follow"`
}

// ProjectionConfig holds the axis assignment per view and the seam constants.
type ProjectionConfig struct {
	ViewAxes    [2]plane.Axis `yaml:"view_axes"`
	InitialView int           `yaml:"initial_view"`

	geometry.PlaneSettings `yaml:",inline"`
}

// PhysicsConfig holds the fixed-step loop settings.
type PhysicsConfig struct {
	FixedStep   float32 `yaml:"fixed_step"`
	MaxSubsteps int     `yaml:"max_substeps"`
}

// LevelConfig selects the level file. An empty path loads the built-in level.
type LevelConfig struct {
	Path string `yaml:"path"`
}

// RunConfig controls how the simulation is driven.
type RunConfig struct {
	Headless bool          `yaml:"headless"`
	Duration time.Duration `yaml:"duration"` // headless demo length
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// EasingFunc returns the configured rotation curve.
func (c CameraConfig) EasingFunc() (math.Easing, error) {
	if len(c.EasingCurve) > 0 {
		return math.CurveEasing(c.EasingCurve)
	}
	return math.EasingByName(c.Easing)
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
			Scale:  32,
		},
		Camera: CameraConfig{
			PivotOffset:      math.Vec3{X: 0, Y: 2, Z: 0},
			Distance:         12,
			ViewYaw:          [2]float32{0, -90},
			RotationDuration: 0.45,
			Easing:           "smoothstep",
			VerticalFollow: camera.FollowSettings{
				DeadZoneMode: "up_only",
				DeadZone:     3,
				Smoothing:    "critically_damped",
				Speed:        8,
				SmoothTime:   0.25,
				Offset:       1,
			},
		},
		Projection: ProjectionConfig{
			ViewAxes:    [2]plane.Axis{plane.FlattenZ, plane.FlattenX},
			InitialView: 0,
		},
		Switch:        projection.DefaultSwitchSettings(),
		Depenetration: depenetration.DefaultSettings(),
		Motion:        motion.DefaultSettings(),
		Physics: PhysicsConfig{
			FixedStep:   1.0 / 60,
			MaxSubsteps: 5,
		},
		Run: RunConfig{
			Headless: false,
			Duration: 6 * time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
