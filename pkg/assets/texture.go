package assets

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"math"
	"os"

	"globe/internal/noise"
	"globe/internal/util"
)

// LoadTexture decodes a PNG or JPEG file into tightly packed RGBA rows,
// top row first
func LoadTexture(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// Fallback palette
var (
	deepOcean    = [3]float64{8, 24, 68}
	shallowOcean = [3]float64{28, 86, 150}
	lowland      = [3]float64{62, 118, 52}
	highland     = [3]float64{128, 108, 72}
	ice          = [3]float64{230, 236, 240}
)

const seaLevel = 0.52

// FallbackTexture generates an equirectangular planet-like map from fractal
// noise sampled on the unit sphere, so the texture wraps without a seam
func FallbackTexture(width, height int, seed int64) *image.RGBA {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	gen := noise.NewGenerator(seed)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		lat := (float64(y) + 0.5) / float64(height) * math.Pi
		sinLat, cosLat := math.Sincos(lat)

		for x := 0; x < width; x++ {
			lon := (float64(x) + 0.5) / float64(width) * 2 * math.Pi
			sinLon, cosLon := math.Sincos(lon)

			px, py, pz := -cosLon*sinLat, cosLat, sinLon*sinLat
			h := gen.FBM3D(px*2+11.3, py*2+7.1, pz*2+3.7, 5, 2, 0.5)

			var c [3]float64
			if h < seaLevel {
				c = mix(deepOcean, shallowOcean, ramp(0.3, seaLevel, h))
			} else {
				c = mix(lowland, highland, ramp(seaLevel, 0.7, h))
			}

			// polar caps
			if polar := math.Abs(cosLat); polar > 0.88 {
				c = mix(c, ice, ramp(0.88, 0.95, polar))
			}

			img.SetRGBA(x, y, color.RGBA{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255})
		}
	}

	return img
}

// ramp maps x in [lo, hi] onto a smooth 0..1 transition
func ramp(lo, hi, x float64) float64 {
	return util.SmoothStep(0, 1, (x-lo)/(hi-lo))
}

func mix(a, b [3]float64, t float64) [3]float64 {
	return [3]float64{
		util.Lerp(a[0], b[0], t),
		util.Lerp(a[1], b[1], t),
		util.Lerp(a[2], b[2], t),
	}
}
