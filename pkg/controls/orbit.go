// Package controls implements a damped orbit camera controller.
package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"globe/pkg/scene"
)

const polarEpsilon = 1e-6

// Orbit rotates and dollies a camera around a target. Input accumulates
// deltas; Update applies a damped share of them once per frame.
type Orbit struct {
	camera *scene.PerspectiveCamera

	Target        mgl32.Vec3
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64

	viewportHeight int

	thetaDelta float64 // azimuth
	phiDelta   float64 // polar
	scale      float64 // dolly multiplier for the next update

	dragging bool
	lastX    float64
	lastY    float64
}

// NewOrbit creates controls for camera orbiting the origin
func NewOrbit(camera *scene.PerspectiveCamera, viewportHeight int) *Orbit {
	return &Orbit{
		camera:         camera,
		EnableDamping:  true,
		DampingFactor:  0.05,
		RotateSpeed:    1,
		ZoomSpeed:      1,
		MinDistance:    0,
		MaxDistance:    math.Inf(1),
		viewportHeight: viewportHeight,
		scale:          1,
	}
}

// Resize updates the viewport height rotation speed is measured against
func (o *Orbit) Resize(height int) {
	o.viewportHeight = height
}

// BeginDrag starts a rotation drag at the cursor position
func (o *Orbit) BeginDrag(x, y float64) {
	o.dragging = true
	o.lastX, o.lastY = x, y
}

// EndDrag stops the current drag
func (o *Orbit) EndDrag() {
	o.dragging = false
}

// Dragging reports whether a drag is in progress
func (o *Orbit) Dragging() bool {
	return o.dragging
}

// Drag feeds a cursor position during a drag. A full viewport height of
// movement turns the camera by a full circle.
func (o *Orbit) Drag(x, y float64) {
	if !o.dragging {
		return
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y

	h := float64(o.viewportHeight)
	if h <= 0 {
		return
	}
	o.Rotate(2*math.Pi*dx/h*o.RotateSpeed, 2*math.Pi*dy/h*o.RotateSpeed)
}

// Rotate queues an azimuth (left) and polar (up) rotation in radians
func (o *Orbit) Rotate(left, up float64) {
	o.thetaDelta -= left
	o.phiDelta -= up
}

// Scroll queues a dolly step; positive offsets move the camera closer
func (o *Orbit) Scroll(offset float64) {
	if offset == 0 {
		return
	}
	factor := math.Pow(0.95, o.ZoomSpeed*math.Abs(offset))
	if offset > 0 {
		o.scale *= factor
	} else {
		o.scale /= factor
	}
}

// Update moves the camera by the damped share of the queued input. It reads
// the camera position each call so external moves of the camera stick.
func (o *Orbit) Update() {
	offset := o.camera.Position.Sub(o.Target)

	radius := float64(offset.Len())
	theta := math.Atan2(float64(offset.X()), float64(offset.Z()))
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(clamp(float64(offset.Y())/radius, -1, 1))
	}

	if o.EnableDamping {
		theta += o.thetaDelta * o.DampingFactor
		phi += o.phiDelta * o.DampingFactor
	} else {
		theta += o.thetaDelta
		phi += o.phiDelta
	}
	phi = clamp(phi, polarEpsilon, math.Pi-polarEpsilon)

	radius = clamp(radius*o.scale, o.MinDistance, o.MaxDistance)

	sinPhi := math.Sin(phi)
	offset = mgl32.Vec3{
		float32(radius * sinPhi * math.Sin(theta)),
		float32(radius * math.Cos(phi)),
		float32(radius * sinPhi * math.Cos(theta)),
	}
	o.camera.Position = o.Target.Add(offset)
	o.camera.Target = o.Target

	if o.EnableDamping {
		o.thetaDelta *= 1 - o.DampingFactor
		o.phiDelta *= 1 - o.DampingFactor
	} else {
		o.thetaDelta = 0
		o.phiDelta = 0
	}
	o.scale = 1
}

// Pending returns the queued rotation not yet applied
func (o *Orbit) Pending() (theta, phi float64) {
	return o.thetaDelta, o.phiDelta
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}
