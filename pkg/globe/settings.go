package globe

import (
	"github.com/go-gl/mathgl/mgl32"

	"globe/pkg/params"
	"globe/pkg/tween"
)

// bindSettings attaches the side effect of every setting. Rotation and star
// speeds need no binding; Tick reads them each frame.
func (w *World) bindSettings() error {
	bindings := map[string]params.ChangeFunc{
		params.SphereSize: func(e params.Entry) {
			w.easeVec3(&w.Sphere.Scale, scalar(e.Value))
		},
		params.StopEarth: func(e params.Entry) {
			w.setRotationSpeed(e.Bool())
		},
		params.AtmosphereScale: func(e params.Entry) {
			w.easeVec3(&w.Atmosphere.Scale, scalar(e.Value))
		},
		params.NumStars: func(e params.Entry) {
			w.Stars.Regenerate(int(e.Value))
		},
		params.StarSize: func(e params.Entry) {
			w.Stars.SetSize(float32(e.Value))
		},
		params.CameraX: w.moveCamera,
		params.CameraY: w.moveCamera,
		params.CameraZ: w.moveCamera,
	}

	for name, fn := range bindings {
		if err := w.Params.OnChange(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// setRotationSpeed zeroes both rotation speeds when stopped, and restores the
// default rate when resumed
func (w *World) setRotationSpeed(stopped bool) {
	speed := float64(params.DefaultRotationSpeed)
	if stopped {
		speed = 0
	}
	for _, name := range []string{params.SphereRotationSpeed, params.AtmosphereRotationSpeed} {
		if _, err := w.Params.Set(name, speed); err != nil && w.log != nil {
			w.log.Errorf("Failed to set %s: %v", name, err)
		}
	}
	if w.log != nil {
		w.log.Debugf("Earth rotation stopped=%v", stopped)
	}
}

// moveCamera eases the camera to the position held by the three camera settings
func (w *World) moveCamera(params.Entry) {
	target := mgl32.Vec3{
		float32(w.Params.Get(params.CameraX)),
		float32(w.Params.Get(params.CameraY)),
		float32(w.Params.Get(params.CameraZ)),
	}
	w.easeVec3(&w.Camera.Position, target)
}

func (w *World) easeVec3(dst *mgl32.Vec3, target mgl32.Vec3) {
	for i := range dst {
		w.tweens.To(&dst[i], target[i], SettingsEase, tween.EaseInOut)
	}
}

func scalar(v float64) mgl32.Vec3 {
	f := float32(v)
	return mgl32.Vec3{f, f, f}
}
