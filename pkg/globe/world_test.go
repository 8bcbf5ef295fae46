package globe

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"globe/internal/logger"
	"globe/pkg/config"
	"globe/pkg/params"
	"globe/pkg/scene"
	"globe/pkg/tween"
)

const frame = 100 * time.Millisecond

type fakeRenderer struct {
	calls         *[]string
	renders       int
	width, height int
}

func (r *fakeRenderer) Render(*scene.Scene, *scene.PerspectiveCamera) {
	r.renders++
	if r.calls != nil {
		*r.calls = append(*r.calls, "render")
	}
}

func (r *fakeRenderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

type fakeControls struct {
	calls *[]string
}

func (c *fakeControls) Update() {
	if c.calls != nil {
		*c.calls = append(*c.calls, "controls")
	}
}

type recordingAnimator struct {
	*tween.Engine
	calls *[]string
}

func (a *recordingAnimator) Advance(dt time.Duration) {
	*a.calls = append(*a.calls, "advance")
	a.Engine.Advance(dt)
}

func newTestWorld(t *testing.T, opts ...Option) (*World, *fakeRenderer) {
	t.Helper()
	r := &fakeRenderer{}
	w, err := NewWorld(config.DefaultConfig(), logger.NewLogger("error"), r, rand.New(rand.NewSource(7)), 1280, 720, opts...)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w, r
}

func TestNewWorld_InitialScene(t *testing.T) {
	w, r := newTestWorld(t)

	if got := w.Scene.Count(scene.KindPoints); got != 1 {
		t.Errorf("star clouds = %d, want 1", got)
	}
	if got := len(w.Stars.Positions()); got != 3000 {
		t.Errorf("star buffer = %d, want 3000", got)
	}
	if w.Sphere.Parent() != w.Group {
		t.Error("sphere should sit inside the parallax group")
	}
	if w.Atmosphere.Parent() != w.Scene.Root() {
		t.Error("atmosphere should be attached to the scene directly")
	}
	if w.Atmosphere.Material.Blending != scene.AdditiveBlending || w.Atmosphere.Material.Side != scene.BackSide {
		t.Errorf("atmosphere material = %+v", w.Atmosphere.Material)
	}
	if s := w.Atmosphere.Scale; math.Abs(float64(s[0])-1.15) > 1e-6 {
		t.Errorf("atmosphere scale = %v, want 1.15", s)
	}
	if p := w.Camera.Position; p[0] != 0 || p[1] != 0 || p[2] != 15 {
		t.Errorf("camera = %v, want (0, 0, 15)", p)
	}
	if r.width != 1280 || r.height != 720 {
		t.Errorf("renderer size = %dx%d", r.width, r.height)
	}
}

func TestNewWorld_RequiresRenderer(t *testing.T) {
	if _, err := NewWorld(config.DefaultConfig(), nil, nil, nil, 800, 600); err == nil {
		t.Error("expected an error without a renderer")
	}
}

func TestTick_Order(t *testing.T) {
	var calls []string
	w, r := newTestWorld(t,
		WithAnimator(&recordingAnimator{Engine: tween.NewEngine(), calls: &calls}),
		WithControls(&fakeControls{calls: &calls}),
	)
	r.calls = &calls

	w.Tick(frame)
	want := []string{"advance", "render", "controls"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if w.Frames() != 1 {
		t.Errorf("frames = %d", w.Frames())
	}
}

func TestTick_RotationAdvancesEachFrame(t *testing.T) {
	w, _ := newTestWorld(t)

	for i := 0; i < 10; i++ {
		w.Tick(frame)
	}
	want := 10 * params.DefaultRotationSpeed
	for _, axis := range []int{1, 2} {
		if got := w.Sphere.Rotation[axis]; math.Abs(float64(got)-want) > 1e-5 {
			t.Errorf("sphere rotation[%d] = %v, want %v", axis, got, want)
		}
		if w.Atmosphere.Rotation[axis] != w.Sphere.Rotation[axis] {
			t.Errorf("atmosphere rotation[%d] = %v, sphere %v", axis, w.Atmosphere.Rotation[axis], w.Sphere.Rotation[axis])
		}
	}
	if w.Sphere.Rotation[0] != 0 {
		t.Errorf("sphere x rotation = %v, want 0", w.Sphere.Rotation[0])
	}
}

func TestStopEarth_FreezesAndResumes(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Tick(frame)

	if err := w.Params.SetBool(params.StopEarth, true); err != nil {
		t.Fatal(err)
	}
	if w.Params.Get(params.SphereRotationSpeed) != 0 || w.Params.Get(params.AtmosphereRotationSpeed) != 0 {
		t.Error("stopping should zero both rotation speeds")
	}

	sphere, atmosphere := w.Sphere.Rotation, w.Atmosphere.Rotation
	for i := 0; i < 20; i++ {
		w.Tick(frame)
	}
	if w.Sphere.Rotation != sphere || w.Atmosphere.Rotation != atmosphere {
		t.Fatalf("rotation moved while stopped: %v -> %v", sphere, w.Sphere.Rotation)
	}

	if err := w.Params.SetBool(params.StopEarth, false); err != nil {
		t.Fatal(err)
	}
	if got := w.Params.Get(params.SphereRotationSpeed); got != params.DefaultRotationSpeed {
		t.Errorf("sphere speed after resume = %v", got)
	}
	w.Tick(frame)
	if d := w.Sphere.Rotation[1] - sphere[1]; math.Abs(float64(d)-params.DefaultRotationSpeed) > 1e-6 {
		t.Errorf("rotation step after resume = %v, want %v", d, params.DefaultRotationSpeed)
	}
}

func TestStopEarth_IgnoresSpeedChangesWhileStopped(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Params.SetBool(params.StopEarth, true)
	w.Params.Set(params.SphereRotationSpeed, 0.005)

	before := w.Sphere.Rotation
	w.Tick(frame)
	if w.Sphere.Rotation != before {
		t.Error("sphere rotated while stopEarth is set")
	}
}

func TestStopStars_FreezesBuffer(t *testing.T) {
	w, _ := newTestWorld(t)
	if err := w.Params.SetBool(params.StopStars, true); err != nil {
		t.Fatal(err)
	}

	snapshot := append([]float32(nil), w.Stars.Positions()...)
	for i := 0; i < 10; i++ {
		w.Tick(frame)
	}
	for i, v := range w.Stars.Positions() {
		if math.Float32bits(v) != math.Float32bits(snapshot[i]) {
			t.Fatalf("coord %d changed from %v to %v", i, snapshot[i], v)
		}
	}

	w.Params.SetBool(params.StopStars, false)
	w.Tick(frame)
	changed := false
	for i, v := range w.Stars.Positions() {
		if v != snapshot[i] {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("stars did not move after clearing stopStars")
	}
}

func TestNumStars_RegeneratesSingleCloud(t *testing.T) {
	w, _ := newTestWorld(t)
	old := w.Stars.Points()

	if _, err := w.Params.Set(params.NumStars, 2000); err != nil {
		t.Fatal(err)
	}
	if got := len(w.Stars.Positions()); got != 6000 {
		t.Errorf("star buffer = %d, want 6000", got)
	}
	if got := w.Scene.Count(scene.KindPoints); got != 1 {
		t.Errorf("star clouds = %d, want 1", got)
	}
	if !old.Geometry.Disposed() {
		t.Error("previous cloud geometry not disposed")
	}
	if w.Scene.Contains(old) {
		t.Error("previous cloud still in the scene")
	}
}

func TestStarSize_AppliesImmediately(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Params.Set(params.StarSize, 2.5)
	if got := w.Stars.Points().Material.Size; got != 2.5 {
		t.Errorf("point size = %v, want 2.5", got)
	}
}

func TestSphereSize_Eases(t *testing.T) {
	w, _ := newTestWorld(t)

	if _, err := w.Params.Set(params.SphereSize, 3); err != nil {
		t.Fatal(err)
	}
	if w.Sphere.Scale[0] != 1 {
		t.Errorf("scale jumped to %v before any frame", w.Sphere.Scale[0])
	}

	for i := 0; i < 5; i++ {
		w.Tick(frame)
	}
	mid := w.Sphere.Scale[0]
	if mid <= 1 || mid >= 3 {
		t.Errorf("scale halfway = %v, want strictly between 1 and 3", mid)
	}

	for i := 0; i < 6; i++ {
		w.Tick(frame)
	}
	for i, s := range w.Sphere.Scale {
		if s != 3 {
			t.Errorf("scale[%d] = %v, want 3", i, s)
		}
	}
}

func TestAtmosphereScale_Eases(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Params.Set(params.AtmosphereScale, 1.5)

	for i := 0; i < 11; i++ {
		w.Tick(frame)
	}
	if got := w.Atmosphere.Scale[1]; math.Abs(float64(got)-1.5) > 1e-6 {
		t.Errorf("atmosphere scale = %v, want 1.5", got)
	}
}

func TestCameraSettings_EaseCamera(t *testing.T) {
	w, _ := newTestWorld(t, WithControls(&fakeControls{}))

	w.Params.Set(params.CameraY, 10)
	w.Params.Set(params.CameraZ, 30)

	for i := 0; i < 11; i++ {
		w.Tick(frame)
	}
	p := w.Camera.Position
	if p[0] != 0 || p[1] != 10 || p[2] != 30 {
		t.Errorf("camera = %v, want (0, 10, 30)", p)
	}
}

func TestParallax_FollowsPointer(t *testing.T) {
	w, _ := newTestWorld(t)

	w.PointerMove(640, 360) // center of the viewport
	for i := 0; i < 200; i++ {
		w.Tick(frame)
	}

	// x stays 0 at the center column, y is offset to 2
	if got := w.Group.Rotation[0]; math.Abs(float64(got)-1) > 1e-3 {
		t.Errorf("group x rotation = %v, want about 1", got)
	}
	if got := w.Group.Rotation[1]; math.Abs(float64(got)) > 1e-3 {
		t.Errorf("group y rotation = %v, want about 0", got)
	}
}

func TestParallax_IdleBeforePointer(t *testing.T) {
	w, _ := newTestWorld(t)
	for i := 0; i < 5; i++ {
		w.Tick(frame)
	}
	if r := w.Group.Rotation; r[0] != 0 || r[1] != 0 {
		t.Errorf("group rotated to %v without pointer input", r)
	}
}

func TestResize(t *testing.T) {
	w, r := newTestWorld(t)

	w.Resize(1000, 500)
	if w.Camera.Aspect != float32(1000)/float32(500) {
		t.Errorf("aspect = %v, want 2", w.Camera.Aspect)
	}
	if r.width != 1000 || r.height != 500 {
		t.Errorf("renderer size = %dx%d", r.width, r.height)
	}

	// normalization follows the new size
	w.PointerMove(1000, 0)
	if x, y := w.Pointer.Value(); x != 1 || y != 1 {
		t.Errorf("pointer = (%v, %v), want (1, 1)", x, y)
	}

	// star sampling follows the new width
	w.Params.Set(params.NumStars, 500)
	for _, v := range w.Stars.Positions() {
		if v < -500 || v > 500 {
			t.Fatalf("star coord %v outside the resized cube", v)
		}
	}

	w.Resize(0, 0)
	if width, height := w.Size(); width != 1000 || height != 500 {
		t.Errorf("zero resize changed size to %dx%d", width, height)
	}
}
