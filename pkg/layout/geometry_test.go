package layout

import (
	"math"
	"testing"
)

func TestArrow(t *testing.T) {
	tests := []struct {
		name       string
		from, to   Position
		wantLength float64
		wantAngle  float64
	}{
		{
			name:       "Horizontal",
			from:       Position{Left: 0, Top: 0},
			to:         Position{Left: 100, Top: 0},
			wantLength: 100,
			wantAngle:  0,
		},
		{
			name:       "VerticalDown",
			from:       Position{Left: 0, Top: 0},
			to:         Position{Left: 0, Top: 100},
			wantLength: 100,
			wantAngle:  90,
		},
		{
			name:       "VerticalUp",
			from:       Position{Left: 0, Top: 100},
			to:         Position{Left: 0, Top: 0},
			wantLength: 100,
			wantAngle:  -90,
		},
		{
			name:       "Diagonal",
			from:       Position{Left: 0, Top: 0},
			to:         Position{Left: 30, Top: 40},
			wantLength: 50,
			wantAngle:  math.Atan2(40, 30) * 180 / math.Pi,
		},
		{
			name:       "Backwards",
			from:       Position{Left: 100, Top: 0},
			to:         Position{Left: 0, Top: 0},
			wantLength: 100,
			wantAngle:  180,
		},
		{
			name:       "ZeroDistance",
			from:       Position{Left: 5, Top: 5},
			to:         Position{Left: 5, Top: 5},
			wantLength: 0,
			wantAngle:  0,
		},
	}

	const eps = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Arrow(tt.from, tt.to)
			if math.Abs(got.Length-tt.wantLength) > eps {
				t.Errorf("Length = %v, want %v", got.Length, tt.wantLength)
			}
			if math.Abs(got.Angle-tt.wantAngle) > eps {
				t.Errorf("Angle = %v, want %v", got.Angle, tt.wantAngle)
			}
		})
	}
}

func TestArrowSymmetry(t *testing.T) {
	from := Position{Left: 10, Top: 20}
	to := Position{Left: 70, Top: 180}

	fwd := Arrow(from, to)
	back := Arrow(to, from)

	if math.Abs(fwd.Length-back.Length) > 1e-9 {
		t.Errorf("lengths differ: %v vs %v", fwd.Length, back.Length)
	}
	// Opposite directions differ by 180 degrees.
	diff := math.Mod(math.Abs(fwd.Angle-back.Angle), 360)
	if math.Abs(diff-180) > 1e-9 {
		t.Errorf("angle difference = %v, want 180", diff)
	}
}

func TestAnchors(t *testing.T) {
	cfg := Config{NodeWidth: 100, NodeHeight: 60}
	p := Position{Left: 10, Top: 20}

	if got := cfg.Center(p); got != (Position{Left: 60, Top: 50}) {
		t.Errorf("Center = %+v", got)
	}
	if got := cfg.BottomCenter(p); got != (Position{Left: 60, Top: 80}) {
		t.Errorf("BottomCenter = %+v", got)
	}
	if got := cfg.TopCenter(p); got != (Position{Left: 60, Top: 20}) {
		t.Errorf("TopCenter = %+v", got)
	}
}
