// Package assets loads textures and shader sources from disk, falling back to
// built-in or generated data when files are absent.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Program is a vertex/fragment source pair
type Program struct {
	Vertex   string
	Fragment string
}

// ShaderSet holds the sources of every program the viewer draws with
type ShaderSet struct {
	Globe      Program
	Atmosphere Program
	Stars      Program
}

// Override file names looked up in the shader directory
const (
	GlobeVertexFile        = "vertex.glsl"
	GlobeFragmentFile      = "fragment.glsl"
	AtmosphereVertexFile   = "atmosphereVertex.glsl"
	AtmosphereFragmentFile = "atmosphereFragment.glsl"
	StarVertexFile         = "starVertex.glsl"
	StarFragmentFile       = "starFragment.glsl"
)

// DefaultShaders returns the built-in sources
func DefaultShaders() ShaderSet {
	return ShaderSet{
		Globe:      Program{Vertex: globeVertexShaderSource, Fragment: globeFragmentShaderSource},
		Atmosphere: Program{Vertex: atmosphereVertexShaderSource, Fragment: atmosphereFragmentShaderSource},
		Stars:      Program{Vertex: starVertexShaderSource, Fragment: starFragmentShaderSource},
	}
}

// LoadShaders returns the built-in sources with any files present in dir
// replacing them. An empty dir means built-ins only. Missing files are not an
// error; unreadable ones are.
func LoadShaders(dir string) (ShaderSet, error) {
	set := DefaultShaders()
	if dir == "" {
		return set, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return set, fmt.Errorf("shader directory: %w", err)
	}
	if !info.IsDir() {
		return set, fmt.Errorf("shader directory %s is not a directory", dir)
	}

	overrides := []struct {
		file string
		dst  *string
	}{
		{GlobeVertexFile, &set.Globe.Vertex},
		{GlobeFragmentFile, &set.Globe.Fragment},
		{AtmosphereVertexFile, &set.Atmosphere.Vertex},
		{AtmosphereFragmentFile, &set.Atmosphere.Fragment},
		{StarVertexFile, &set.Stars.Vertex},
		{StarFragmentFile, &set.Stars.Fragment},
	}

	var errs []error
	for _, o := range overrides {
		data, err := os.ReadFile(filepath.Join(dir, o.file))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to read %s: %w", o.file, err))
			continue
		}
		*o.dst = string(data)
	}

	return set, errors.Join(errs...)
}
