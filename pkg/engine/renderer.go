package engine

import "globe/pkg/globe"

// Renderer defines the interface for all renderers
type Renderer interface {
	globe.Renderer

	// Close releases resources
	Close()
}
