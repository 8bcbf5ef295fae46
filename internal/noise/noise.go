package noise

import "math"

// Generator produces deterministic lattice value noise for a seed
type Generator struct {
	seed int
}

// NewGenerator creates a noise generator for the given seed
func NewGenerator(seed int64) *Generator {
	return &Generator{seed: int(seed)}
}

// hash creates a pseudo-random hash from lattice coordinates and seed
func hash(x, y, z, seed int) int {
	h := seed + x*374761393 + y*668265263 + z*1440662683
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

// hashToFloat converts a hash to a float in range [0, 1)
func hashToFloat(h int) float64 {
	return float64(h&0xFFFFFF) / 16777216.0
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// fade is the quintic smoothing curve used between lattice points
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Value3D returns smooth value noise in [0, 1)
func (g *Generator) Value3D(x, y, z float64) float64 {
	x0, y0, z0 := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int(x0), int(y0), int(z0)
	u, v, w := fade(x-x0), fade(y-y0), fade(z-z0)

	corner := func(dx, dy, dz int) float64 {
		return hashToFloat(hash(ix+dx, iy+dy, iz+dz, g.seed))
	}

	x00 := lerp(corner(0, 0, 0), corner(1, 0, 0), u)
	x10 := lerp(corner(0, 1, 0), corner(1, 1, 0), u)
	x01 := lerp(corner(0, 0, 1), corner(1, 0, 1), u)
	x11 := lerp(corner(0, 1, 1), corner(1, 1, 1), u)

	return lerp(lerp(x00, x10, v), lerp(x01, x11, v), w)
}

// FBM3D sums octaves of value noise (fractal Brownian motion), normalized to [0, 1)
func (g *Generator) FBM3D(x, y, z float64, octaves int, lacunarity, gain float64) float64 {
	result := 0.0
	amplitude := 1.0
	frequency := 1.0
	total := 0.0

	for i := 0; i < octaves; i++ {
		result += g.Value3D(x*frequency, y*frequency, z*frequency) * amplitude
		total += amplitude
		amplitude *= gain
		frequency *= lacunarity
	}

	if total == 0 {
		return 0
	}
	return result / total
}
