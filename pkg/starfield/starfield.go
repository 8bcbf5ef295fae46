// Package starfield samples and animates the point cloud behind the globe.
package starfield

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"globe/internal/logger"
	"globe/internal/util"
	"globe/pkg/scene"
)

// Quantum is the grid every sampled coordinate is snapped to
const Quantum = 0.01

// ProgramName is the shader pair star clouds are drawn with
const ProgramName = "stars"

// Generate returns 3*count coordinates, each uniform in [-width/2, width/2]
func Generate(rng *rand.Rand, count int, width float64) []float32 {
	if count < 0 {
		count = 0
	}
	half := width / 2
	buf := make([]float32, 3*count)
	for i := range buf {
		buf[i] = float32(util.RandomStep(rng, -half, half, Quantum))
	}
	return buf
}

// Field owns the star cloud attached to a scene
type Field struct {
	scene  *scene.Scene
	rng    *rand.Rand
	log    *logger.Logger
	points *scene.Object
	color  mgl32.Vec3
	size   float32

	// Width returns the current viewport width used as the sampling cube edge
	Width func() float64
}

// NewField creates a field and attaches an initial cloud of count stars
func NewField(s *scene.Scene, rng *rand.Rand, log *logger.Logger, count int, size float32, color mgl32.Vec3, width func() float64) *Field {
	f := &Field{
		scene: s,
		rng:   rng,
		log:   log,
		color: color,
		size:  size,
		Width: width,
	}
	f.Regenerate(count)
	return f
}

// Regenerate replaces the star cloud with count freshly sampled stars. The
// previous cloud is detached and its geometry disposed before the new one is
// attached, so there is never more than one cloud in the scene.
func (f *Field) Regenerate(count int) {
	if f.points != nil {
		f.scene.Remove(f.points)
		if f.points.Geometry != nil {
			f.points.Geometry.Dispose()
		}
		f.points = nil
	}

	width := f.Width()
	geo := scene.NewPointsGeometry(Generate(f.rng, count, width))
	f.points = scene.NewPoints("stars", geo, scene.Material{
		Program: ProgramName,
		Color:   f.color,
		Size:    f.size,
	})
	f.scene.Add(f.points)

	if f.log != nil {
		f.log.Debugf("star field regenerated: %d stars across %.0f units", count, width)
	}
}

// Jitter moves every coordinate by an independent random offset in [-speed, speed]
func (f *Field) Jitter(speed float64) {
	if f.points == nil || speed <= 0 {
		return
	}
	buf := f.points.Geometry.Positions
	for i := range buf {
		buf[i] += float32(util.RandomFloat(f.rng, -speed, speed))
	}
	f.points.Geometry.MarkDirty()
}

// SetSize changes the rendered point size immediately
func (f *Field) SetSize(size float32) {
	f.size = size
	if f.points != nil {
		f.points.Material.Size = size
	}
}

// Points returns the current cloud object
func (f *Field) Points() *scene.Object {
	return f.points
}

// Positions returns the live coordinate buffer of the current cloud
func (f *Field) Positions() []float32 {
	if f.points == nil {
		return nil
	}
	return f.points.Geometry.Positions
}

// Count returns the number of stars in the current cloud
func (f *Field) Count() int {
	return len(f.Positions()) / 3
}
