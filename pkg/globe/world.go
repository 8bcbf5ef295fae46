// Package globe wires the scene, the parameter store and the input state into
// the per-frame update loop.
package globe

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"globe/internal/logger"
	"globe/pkg/config"
	"globe/pkg/controls"
	"globe/pkg/input"
	"globe/pkg/params"
	"globe/pkg/scene"
	"globe/pkg/starfield"
	"globe/pkg/tween"
)

// Shader pair and texture names the renderer must provide
const (
	ProgramGlobe      = "globe"
	ProgramAtmosphere = "atmosphere"
	TextureGlobe      = "globe"
)

// Easing durations
const (
	SettingsEase = time.Second
	ParallaxEase = 2 * time.Second
)

// ParallaxFactor scales the pointer position into a group rotation in radians
const ParallaxFactor = 0.5

// Renderer draws the scene. Implementations own all GPU state.
type Renderer interface {
	Render(s *scene.Scene, camera *scene.PerspectiveCamera)
	SetSize(width, height int)
}

// Controls is advanced once per frame after rendering
type Controls interface {
	Update()
}

// Animator runs fire-and-forget tweens and is advanced by the loop
type Animator interface {
	tween.Tweener
	Advance(dt time.Duration)
}

// World holds every piece of mutable viewer state. It is driven from a single
// thread: event handlers and Tick never run concurrently.
type World struct {
	log      *logger.Logger
	renderer Renderer

	Scene      *scene.Scene
	Camera     *scene.PerspectiveCamera
	Group      *scene.Object // parallax group holding the globe
	Sphere     *scene.Object
	Atmosphere *scene.Object
	Stars      *starfield.Field
	Params     *params.Store
	Pointer    *input.Tracker
	Orbit      *controls.Orbit

	controls Controls
	tweens   Animator

	width, height int
	frames        uint64
}

// Option customizes a World at construction
type Option func(*World)

// WithAnimator replaces the built-in tween engine
func WithAnimator(a Animator) Option {
	return func(w *World) { w.tweens = a }
}

// WithControls replaces the orbit controls advanced every frame
func WithControls(c Controls) Option {
	return func(w *World) { w.controls = c }
}

// NewWorld builds the scene from cfg and binds every setting's side effect.
// width and height are the initial viewport size in pixels.
func NewWorld(cfg *config.Config, log *logger.Logger, r Renderer, rng *rand.Rand, width, height int, opts ...Option) (*World, error) {
	if r == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	store, err := params.NewViewerStore(cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to create parameter store: %w", err)
	}

	w := &World{
		log:      log,
		renderer: r,
		Scene:    scene.New(),
		Params:   store,
		Pointer:  input.NewTracker(width, height),
		tweens:   tween.NewEngine(),
		width:    width,
		height:   height,
	}

	w.buildScene(cfg, rng)

	w.Orbit = controls.NewOrbit(w.Camera, height)
	w.Orbit.DampingFactor = cfg.Camera.Damping
	w.Orbit.RotateSpeed = cfg.Camera.RotateSpeed
	w.Orbit.ZoomSpeed = cfg.Camera.ZoomSpeed
	w.Orbit.MinDistance = cfg.Camera.MinDistance
	w.Orbit.MaxDistance = cfg.Camera.MaxDistance
	w.controls = w.Orbit

	for _, opt := range opts {
		opt(w)
	}

	if err := w.bindSettings(); err != nil {
		return nil, err
	}

	w.Resize(width, height)
	return w, nil
}

func (w *World) buildScene(cfg *config.Config, rng *rand.Rand) {
	sc := cfg.Scene
	radius := float32(sc.GlobeRadius)

	w.Camera = scene.NewPerspectiveCamera(float32(cfg.Camera.FOV), 1, float32(cfg.Camera.Near), float32(cfg.Camera.Far))
	w.Camera.Position = mgl32.Vec3{
		float32(w.Params.Get(params.CameraX)),
		float32(w.Params.Get(params.CameraY)),
		float32(w.Params.Get(params.CameraZ)),
	}

	w.Sphere = scene.NewMesh("sphere",
		scene.NewSphereGeometry(radius, sc.WidthSegments, sc.HeightSegments),
		scene.Material{Program: ProgramGlobe, Texture: TextureGlobe},
	)
	w.Sphere.SetScalar(float32(w.Params.Get(params.SphereSize)))

	w.Atmosphere = scene.NewMesh("atmosphere",
		scene.NewSphereGeometry(radius, sc.WidthSegments, sc.HeightSegments),
		scene.Material{
			Program:     ProgramAtmosphere,
			Color:       rgb(sc.AtmosphereColor),
			Transparent: true,
			Blending:    scene.AdditiveBlending,
			Side:        scene.BackSide,
		},
	)
	w.Atmosphere.SetScalar(float32(w.Params.Get(params.AtmosphereScale)))
	w.Scene.Add(w.Atmosphere)

	w.Group = scene.NewGroup("group")
	w.Group.Add(w.Sphere)
	w.Scene.Add(w.Group)

	w.Stars = starfield.NewField(w.Scene, rng, w.log, w.Params.Int(params.NumStars),
		float32(w.Params.Get(params.StarSize)), rgb(sc.StarColor), w.viewportWidth)
}

func (w *World) viewportWidth() float64 {
	return float64(w.width)
}

// Tick advances one frame: tweens, render, controls, globe spin, parallax
// retarget and star jitter, in that order. It never blocks.
func (w *World) Tick(dt time.Duration) {
	w.tweens.Advance(dt)

	w.renderer.Render(w.Scene, w.Camera)
	w.controls.Update()

	if !w.Params.Bool(params.StopEarth) {
		w.spin(float32(w.Params.Get(params.SphereRotationSpeed)), float32(w.Params.Get(params.AtmosphereRotationSpeed)))
	}

	px, py := w.Pointer.Value()
	w.tweens.To(&w.Group.Rotation[0], float32(py*ParallaxFactor), ParallaxEase, tween.Power1Out)
	w.tweens.To(&w.Group.Rotation[1], float32(px*ParallaxFactor), ParallaxEase, tween.Power1Out)

	if !w.Params.Bool(params.StopStars) {
		w.Stars.Jitter(w.Params.Get(params.StarSpeed))
	}

	w.frames++
}

// spin advances the globe and its atmosphere in the same step
func (w *World) spin(sphereSpeed, atmosphereSpeed float32) {
	w.Sphere.Rotation[1] += sphereSpeed
	w.Sphere.Rotation[2] += sphereSpeed
	w.Atmosphere.Rotation[1] += atmosphereSpeed
	w.Atmosphere.Rotation[2] += atmosphereSpeed
}

// Resize adapts the camera, renderer and pointer normalization to a new
// viewport. Zero sizes (minimized windows) are ignored.
func (w *World) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.width, w.height = width, height

	w.Camera.SetAspect(width, height)
	w.Camera.UpdateProjection()
	w.renderer.SetSize(width, height)
	w.Pointer.Resize(width, height)
	w.Orbit.Resize(height)
}

// PointerMove records a cursor position in viewport pixels and feeds any
// orbit drag in progress
func (w *World) PointerMove(px, py float64) {
	w.Pointer.Move(px, py)
	w.Orbit.Drag(px, py)
}

// Size returns the current viewport size
func (w *World) Size() (width, height int) {
	return w.width, w.height
}

// Frames returns the number of ticks run so far
func (w *World) Frames() uint64 {
	return w.frames
}

func rgb(c config.RGB) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R), float32(c.G), float32(c.B)}
}
