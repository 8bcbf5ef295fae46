package input

import "testing"

func TestTracker_UnsetBeforeFirstMove(t *testing.T) {
	tr := NewTracker(800, 600)
	if tr.Pointer().Valid {
		t.Error("pointer valid before any movement")
	}
	if x, y := tr.Value(); x != 0 || y != 0 {
		t.Errorf("Value = (%v, %v), want (0, 0)", x, y)
	}
}

func TestTracker_Move(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		px, py       float64
		wantX, wantY float64
	}{
		{"top left", 800, 600, 0, 0, -1, 1},
		{"center", 800, 600, 400, 300, 0, 2},
		{"bottom right", 800, 600, 800, 600, 1, 3},
		{"arbitrary", 1280, 720, 320, 180, (320.0/1280)*2 - 1, (180.0/720)*2 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(tt.w, tt.h)
			tr.Move(tt.px, tt.py)
			x, y := tr.Value()
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Move(%v, %v) in %dx%d = (%v, %v), want (%v, %v)", tt.px, tt.py, tt.w, tt.h, x, y, tt.wantX, tt.wantY)
			}
			if !tr.Pointer().Valid {
				t.Error("pointer not marked valid")
			}
		})
	}
}

func TestTracker_ResizeChangesNormalization(t *testing.T) {
	tr := NewTracker(800, 600)
	tr.Resize(400, 300)
	tr.Move(400, 300)
	if x, y := tr.Value(); x != 1 || y != 3 {
		t.Errorf("Value = (%v, %v), want (1, 3)", x, y)
	}
}

func TestTracker_ZeroSizeIgnoresMoves(t *testing.T) {
	tr := NewTracker(0, 0)
	tr.Move(10, 10)
	if tr.Pointer().Valid {
		t.Error("move accepted in a zero-size viewport")
	}
}
