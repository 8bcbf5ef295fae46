package engine

import (
	"testing"

	"globe/pkg/config"
	"globe/pkg/params"
)

func TestWatchParams(t *testing.T) {
	store, err := params.NewViewerStore(config.DefaultConfig().Params)
	if err != nil {
		t.Fatal(err)
	}

	changed := make(map[string]int)
	if err := watchParams(store, func(e params.Entry) { changed[e.Name]++ }); err != nil {
		t.Fatalf("watchParams: %v", err)
	}

	tests := []struct {
		name   string
		change func() error
	}{
		{params.CameraZ, func() error { _, err := store.Set(params.CameraZ, 40); return err }},
		{params.NumStars, func() error { _, err := store.Set(params.NumStars, 500); return err }},
		{params.StopEarth, func() error { _, err := store.Toggle(params.StopEarth); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.change(); err != nil {
				t.Fatal(err)
			}
			if changed[tt.name] != 1 {
				t.Errorf("%s handler ran %d times, want 1", tt.name, changed[tt.name])
			}
		})
	}
}
