package assets

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeImage(t *testing.T, name string, encode func(f *os.File, img image.Image) error) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(3, 1, color.NRGBA{0, 0, 255, 255})

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTexture(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(f *os.File, img image.Image) error
		exact  bool
	}{
		{"png", "globe.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }, true},
		{"jpeg", "globe.jpg", func(f *os.File, img image.Image) error {
			return jpeg.Encode(f, img, &jpeg.Options{Quality: 100})
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := LoadTexture(writeImage(t, tt.file, tt.encode))
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if tex.Rect.Dx() != 4 || tex.Rect.Dy() != 2 {
				t.Fatalf("size = %v, want 4x2", tex.Rect)
			}
			if len(tex.Pix) != 4*2*4 {
				t.Errorf("pixel buffer = %d bytes, want 32", len(tex.Pix))
			}
			if tt.exact {
				if got := tex.RGBAAt(0, 0); got != (color.RGBA{255, 0, 0, 255}) {
					t.Errorf("pixel (0,0) = %v", got)
				}
				if got := tex.RGBAAt(3, 1); got != (color.RGBA{0, 0, 255, 255}) {
					t.Errorf("pixel (3,1) = %v", got)
				}
			}
		})
	}
}

func TestLoadTexture_Errors(t *testing.T) {
	if _, err := LoadTexture(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for a missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(path); err == nil {
		t.Error("expected error for an undecodable file")
	}
}

func TestFallbackTexture(t *testing.T) {
	a := FallbackTexture(64, 32, 42)
	b := FallbackTexture(64, 32, 42)
	c := FallbackTexture(64, 32, 43)

	if a.Rect.Dx() != 64 || a.Rect.Dy() != 32 {
		t.Fatalf("size = %v", a.Rect)
	}
	if string(a.Pix) != string(b.Pix) {
		t.Error("same seed produced different textures")
	}
	if string(a.Pix) == string(c.Pix) {
		t.Error("different seeds produced identical textures")
	}
	for i := 3; i < len(a.Pix); i += 4 {
		if a.Pix[i] != 255 {
			t.Fatalf("pixel %d not opaque", i/4)
		}
	}

	if tiny := FallbackTexture(0, -3, 1); tiny.Rect.Dx() != 1 || tiny.Rect.Dy() != 1 {
		t.Errorf("degenerate size = %v, want 1x1", tiny.Rect)
	}
}

func TestLoadShaders_Defaults(t *testing.T) {
	set, err := LoadShaders("")
	if err != nil {
		t.Fatal(err)
	}
	for name, p := range map[string]Program{"globe": set.Globe, "atmosphere": set.Atmosphere, "stars": set.Stars} {
		if !strings.Contains(p.Vertex, "#version 410") || !strings.Contains(p.Fragment, "#version 410") {
			t.Errorf("%s: built-in sources missing version header", name)
		}
	}
	if !strings.Contains(set.Globe.Fragment, "globeTexture") {
		t.Error("globe fragment shader does not sample globeTexture")
	}
}

func TestLoadShaders_Overrides(t *testing.T) {
	dir := t.TempDir()
	custom := "#version 410 core\nvoid main() {}\n"
	if err := os.WriteFile(filepath.Join(dir, AtmosphereFragmentFile), []byte(custom), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadShaders(dir)
	if err != nil {
		t.Fatal(err)
	}
	if set.Atmosphere.Fragment != custom {
		t.Error("atmosphere fragment override not applied")
	}
	defaults := DefaultShaders()
	if set.Globe != defaults.Globe || set.Stars != defaults.Stars || set.Atmosphere.Vertex != defaults.Atmosphere.Vertex {
		t.Error("files that were not provided should keep built-in sources")
	}
}

func TestLoadShaders_BadDirectory(t *testing.T) {
	if _, err := LoadShaders(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for a missing directory")
	}

	file := filepath.Join(t.TempDir(), "file.glsl")
	os.WriteFile(file, []byte("x"), 0644)
	set, err := LoadShaders(file)
	if err == nil {
		t.Error("expected error when the path is a file")
	}
	if set.Globe != DefaultShaders().Globe {
		t.Error("built-ins should still be returned on error")
	}
}
