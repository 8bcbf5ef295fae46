package util

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundToStep(t *testing.T) {
	tests := []struct {
		value, step, want float64
	}{
		{0.0010000000000000002, 0.0001, 0.001},
		{1.234, 0.01, 1.23},
		{1.235001, 0.01, 1.24},
		{-3.14159, 0.1, -3.1},
		{42.7, 1, 43},
		{7.77, 0, 7.77},
	}

	for _, tt := range tests {
		if got := RoundToStep(tt.value, tt.step); got != tt.want {
			t.Errorf("RoundToStep(%v, %v) = %v, want %v", tt.value, tt.step, got, tt.want)
		}
	}
}

func TestDecimals(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{1, 0},
		{0.1, 1},
		{0.01, 2},
		{0.0001, 4},
		{-2.5, 1},
	}

	for _, tt := range tests {
		if got := Decimals(tt.in); got != tt.want {
			t.Errorf("Decimals(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRandomStep_StaysInRangeAndOnGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		v := RandomStep(rng, -640, 640, 0.01)
		if v < -640 || v > 640 {
			t.Fatalf("value %v outside [-640, 640]", v)
		}
		if RoundToStep(v, 0.01) != v {
			t.Fatalf("value %v not on the 0.01 grid", v)
		}
	}
}

func TestSmoothStep(t *testing.T) {
	if got := SmoothStep(0, 10, 0); got != 0 {
		t.Errorf("SmoothStep at 0 = %v", got)
	}
	if got := SmoothStep(0, 10, 1); got != 10 {
		t.Errorf("SmoothStep at 1 = %v", got)
	}
	if got := SmoothStep(0, 10, 0.5); got != 5 {
		t.Errorf("SmoothStep at 0.5 = %v", got)
	}
	if got := SmoothStep(0, 10, 2); got != 10 {
		t.Errorf("SmoothStep beyond 1 = %v, want clamped 10", got)
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "globe.png")
	if FileExists(path) {
		t.Fatal("FileExists reported a missing file")
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists missed an existing file")
	}
	if FileExists(dir) {
		t.Error("FileExists should be false for directories")
	}
}
