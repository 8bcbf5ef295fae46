// Package tween interpolates float32 properties toward target values over time.
package tween

import (
	"time"

	"globe/internal/util"
)

// Func maps linear progress t in [0,1] to eased progress
type Func func(t float64) float64

// Linear applies no easing
func Linear(t float64) float64 { return t }

// Power1Out decelerates toward the target. Retargeting it every frame gives a
// smoothed follow rather than a restart from rest.
func Power1Out(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInOut accelerates from the start value and decelerates into the target
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Tweener starts fire-and-forget animations of a property
type Tweener interface {
	To(dst *float32, target float32, d time.Duration, ease Func)
}

type tween struct {
	dst      *float32
	from     float64
	to       float64
	elapsed  time.Duration
	duration time.Duration
	ease     Func
}

// Engine drives all running tweens. One tween exists per property; starting a
// new one on the same property replaces it, starting from the current value.
type Engine struct {
	tweens map[*float32]*tween
	order  []*float32
}

// NewEngine creates an idle engine
func NewEngine() *Engine {
	return &Engine{tweens: make(map[*float32]*tween)}
}

// To animates *dst to target over d. A nil ease uses Power1Out.
// A non-positive duration assigns the target immediately.
func (e *Engine) To(dst *float32, target float32, d time.Duration, ease Func) {
	if dst == nil {
		return
	}
	if d <= 0 {
		*dst = target
		e.remove(dst)
		return
	}
	if ease == nil {
		ease = Power1Out
	}

	if t, ok := e.tweens[dst]; ok {
		t.from = float64(*dst)
		t.to = float64(target)
		t.elapsed = 0
		t.duration = d
		t.ease = ease
		return
	}

	e.tweens[dst] = &tween{
		dst:      dst,
		from:     float64(*dst),
		to:       float64(target),
		duration: d,
		ease:     ease,
	}
	e.order = append(e.order, dst)
}

// ToVec3 animates three components together
func (e *Engine) ToVec3(dst *[3]float32, target [3]float32, d time.Duration, ease Func) {
	for i := range dst {
		e.To(&dst[i], target[i], d, ease)
	}
}

// Advance moves every tween forward by dt and writes the interpolated values
func (e *Engine) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	live := e.order[:0]
	for _, dst := range e.order {
		t := e.tweens[dst]
		t.elapsed += dt

		progress := util.Clamp(float64(t.elapsed)/float64(t.duration), 0, 1)
		*dst = float32(util.Lerp(t.from, t.to, t.ease(progress)))

		if progress >= 1 {
			*dst = float32(t.to)
			delete(e.tweens, dst)
			continue
		}
		live = append(live, dst)
	}
	e.order = live
}

// Active returns the number of running tweens
func (e *Engine) Active() int {
	return len(e.order)
}

// Running reports whether dst is being animated
func (e *Engine) Running(dst *float32) bool {
	_, ok := e.tweens[dst]
	return ok
}

func (e *Engine) remove(dst *float32) {
	if _, ok := e.tweens[dst]; !ok {
		return
	}
	delete(e.tweens, dst)
	for i, p := range e.order {
		if p == dst {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}
