package scene

import (
	"math"
)

// Geometry holds vertex data. The vertex count is fixed at creation: to change
// it, dispose the geometry and build a new one.
type Geometry struct {
	Positions []float32 // xyz triples
	Normals   []float32 // xyz triples, empty for point clouds
	UVs       []float32 // uv pairs, empty for point clouds
	Indices   []uint32  // empty for non-indexed geometry

	version   uint64
	disposed  bool
	onDispose []func(*Geometry)
}

// NewPointsGeometry wraps a flat xyz position buffer
func NewPointsGeometry(positions []float32) *Geometry {
	return &Geometry{Positions: positions, version: 1}
}

// NewSphereGeometry builds a UV sphere centered on the origin.
// Longitude runs with u, latitude from the north pole with v.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	vertexCount := (widthSegments + 1) * (heightSegments + 1)
	g := &Geometry{
		Positions: make([]float32, 0, vertexCount*3),
		Normals:   make([]float32, 0, vertexCount*3),
		UVs:       make([]float32, 0, vertexCount*2),
		Indices:   make([]uint32, 0, widthSegments*heightSegments*6),
		version:   1,
	}

	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		theta := v * math.Pi
		sinTheta, cosTheta := math.Sincos(theta)

		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			sinPhi, cosPhi := math.Sincos(phi)

			nx := -cosPhi * sinTheta
			ny := cosTheta
			nz := sinPhi * sinTheta

			g.Positions = append(g.Positions, float32(nx)*radius, float32(ny)*radius, float32(nz)*radius)
			g.Normals = append(g.Normals, float32(nx), float32(ny), float32(nz))
			g.UVs = append(g.UVs, float32(u), float32(v))
		}
	}

	stride := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*stride + uint32(ix) + 1
			b := uint32(iy)*stride + uint32(ix)
			c := uint32(iy+1)*stride + uint32(ix)
			d := uint32(iy+1)*stride + uint32(ix) + 1

			// The pole rows collapse to a point; skip their degenerate triangles
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}

	return g
}

// VertexCount returns the number of vertices
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// MarkDirty flags the vertex data for re-upload
func (g *Geometry) MarkDirty() {
	g.version++
}

// Version increases every time the data is marked dirty
func (g *Geometry) Version() uint64 {
	return g.version
}

// OnDispose registers fn to be called once when the geometry is disposed
func (g *Geometry) OnDispose(fn func(*Geometry)) {
	if g.disposed {
		fn(g)
		return
	}
	g.onDispose = append(g.onDispose, fn)
}

// Dispose releases the geometry. Listeners such as the renderer free their
// GPU-side copies.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	listeners := g.onDispose
	g.onDispose = nil
	for _, fn := range listeners {
		fn(g)
	}
}

// Disposed reports whether Dispose was called
func (g *Geometry) Disposed() bool {
	return g.disposed
}
