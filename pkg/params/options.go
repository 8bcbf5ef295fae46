package params

import (
	"fmt"

	"globe/pkg/config"
)

// Parameter names
const (
	SphereSize              = "sphereSize"
	SphereRotationSpeed     = "sphereRotationSpeed"
	StopEarth               = "stopEarth"
	AtmosphereScale         = "atmosphereScale"
	AtmosphereRotationSpeed = "atmosphereRotationSpeed"
	NumStars                = "numStars"
	StarSize                = "starSize"
	StarSpeed               = "starSpeed"
	StopStars               = "stopStars"
	CameraX                 = "cameraX"
	CameraY                 = "cameraY"
	CameraZ                 = "cameraZ"
)

// DefaultRotationSpeed is restored on both rotation speeds when stopEarth is cleared
const DefaultRotationSpeed = 0.001

// Star count bounds
const (
	MinStars = 100
	MaxStars = 5000
)

// NewViewerStore defines every viewer setting with its range, seeded from cfg.
// Out-of-range startup values are clamped like any other assignment.
func NewViewerStore(cfg config.ParamsConfig) (*Store, error) {
	s := NewStore()

	defs := []struct {
		name string
		def  func() error
	}{
		{SphereSize, func() error { return s.DefineFloat(SphereSize, cfg.SphereSize, 1, 10, 0.1) }},
		{SphereRotationSpeed, func() error {
			return s.DefineFloat(SphereRotationSpeed, cfg.SphereRotationSpeed, 0, 0.01, 0.0001)
		}},
		{StopEarth, func() error { return s.DefineBool(StopEarth, cfg.StopEarth) }},
		{AtmosphereScale, func() error { return s.DefineFloat(AtmosphereScale, cfg.AtmosphereScale, 0.1, 2, 0.01) }},
		{AtmosphereRotationSpeed, func() error {
			return s.DefineFloat(AtmosphereRotationSpeed, cfg.AtmosphereRotationSpeed, 0, 0.01, 0.0001)
		}},
		{NumStars, func() error { return s.DefineInt(NumStars, cfg.NumStars, MinStars, MaxStars) }},
		{StarSize, func() error { return s.DefineFloat(StarSize, cfg.StarSize, 0.1, 3, 0.1) }},
		{StarSpeed, func() error { return s.DefineFloat(StarSpeed, cfg.StarSpeed, 0, 0.1, 0.001) }},
		{StopStars, func() error { return s.DefineBool(StopStars, cfg.StopStars) }},
		{CameraX, func() error { return s.DefineFloat(CameraX, cfg.CameraX, -100, 100, 1) }},
		{CameraY, func() error { return s.DefineFloat(CameraY, cfg.CameraY, -100, 100, 1) }},
		{CameraZ, func() error { return s.DefineFloat(CameraZ, cfg.CameraZ, -100, 100, 1) }},
	}

	for _, d := range defs {
		if err := d.def(); err != nil {
			return nil, fmt.Errorf("defining %s: %w", d.name, err)
		}
	}

	// A stopped globe starts with zero speeds, the same as toggling it at runtime
	if cfg.StopEarth {
		s.entries[SphereRotationSpeed].Value = 0
		s.entries[AtmosphereRotationSpeed].Value = 0
	}

	return s, nil
}
