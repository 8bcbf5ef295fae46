package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectKind tells the renderer how to draw an object
type ObjectKind int

const (
	KindGroup ObjectKind = iota
	KindMesh
	KindPoints
)

// Side selects which triangle faces are drawn
type Side int

const (
	FrontSide Side = iota
	BackSide
)

// Blending selects how fragments combine with the framebuffer
type Blending int

const (
	NormalBlending Blending = iota
	AdditiveBlending
)

// Material is the shading descriptor of an object
type Material struct {
	Program     string     // shader pair name known to the renderer
	Texture     string     // texture key, empty for untextured materials
	Color       mgl32.Vec3 // base or glow color
	Size        float32    // point size for point clouds
	Transparent bool
	Blending    Blending
	Side        Side
}

// Object is a node of the scene graph
type Object struct {
	Name     string
	Kind     ObjectKind
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3
	Visible  bool
	Material Material
	Geometry *Geometry

	parent   *Object
	children []*Object
}

// NewGroup creates an empty transform node
func NewGroup(name string) *Object {
	return newObject(name, KindGroup, nil, Material{})
}

// NewMesh creates a triangle mesh
func NewMesh(name string, geo *Geometry, mat Material) *Object {
	return newObject(name, KindMesh, geo, mat)
}

// NewPoints creates a point cloud
func NewPoints(name string, geo *Geometry, mat Material) *Object {
	return newObject(name, KindPoints, geo, mat)
}

func newObject(name string, kind ObjectKind, geo *Geometry, mat Material) *Object {
	return &Object{
		Name:     name,
		Kind:     kind,
		Scale:    mgl32.Vec3{1, 1, 1},
		Visible:  true,
		Material: mat,
		Geometry: geo,
	}
}

// Add attaches child to o, detaching it from any previous parent
func (o *Object) Add(child *Object) {
	if child == nil || child == o {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = o
	o.children = append(o.children, child)
}

// Remove detaches child from o. It reports whether child was attached.
func (o *Object) Remove(child *Object) bool {
	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Parent returns the node o is attached to
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the attached nodes
func (o *Object) Children() []*Object {
	return o.children
}

// SetScalar sets a uniform scale
func (o *Object) SetScalar(s float32) {
	o.Scale = mgl32.Vec3{s, s, s}
}

// LocalMatrix returns translate * rotateXYZ * scale
func (o *Object) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	r := mgl32.HomogRotate3DX(o.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(o.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	s := mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix returns the local matrix composed with every ancestor's
func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}
