package scene

import "github.com/go-gl/mathgl/mgl32"

// Scene is the root of the scene graph
type Scene struct {
	root *Object
}

// New creates an empty scene
func New() *Scene {
	return &Scene{root: NewGroup("scene")}
}

// Add attaches obj at the top level
func (s *Scene) Add(obj *Object) {
	s.root.Add(obj)
}

// Remove detaches a top-level object
func (s *Scene) Remove(obj *Object) bool {
	return s.root.Remove(obj)
}

// Root returns the root group
func (s *Scene) Root() *Object {
	return s.root
}

// Contains reports whether obj is reachable from the root
func (s *Scene) Contains(obj *Object) bool {
	found := false
	s.Traverse(func(o *Object, _ mgl32.Mat4) bool {
		if o == obj {
			found = true
			return false
		}
		return true
	})
	return found
}

// Count returns the number of attached objects of kind
func (s *Scene) Count(kind ObjectKind) int {
	n := 0
	s.Traverse(func(o *Object, _ mgl32.Mat4) bool {
		if o.Kind == kind {
			n++
		}
		return true
	})
	return n
}

// Traverse visits visible objects depth first with their world matrices.
// Returning false from fn stops the walk.
func (s *Scene) Traverse(fn func(o *Object, world mgl32.Mat4) bool) {
	var walk func(o *Object, parent mgl32.Mat4) bool
	walk = func(o *Object, parent mgl32.Mat4) bool {
		for _, c := range o.children {
			if !c.Visible {
				continue
			}
			world := parent.Mul4(c.LocalMatrix())
			if !fn(c, world) {
				return false
			}
			if !walk(c, world) {
				return false
			}
		}
		return true
	}
	walk(s.root, s.root.LocalMatrix())
}
