package chartsvg

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestPolarToCartesian(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		wantX float64
		wantY float64
	}{
		{name: "Zero points up", angle: 0, wantX: 0, wantY: -10},
		{name: "90 points right", angle: 90, wantX: 10, wantY: 0},
		{name: "180 points down", angle: 180, wantX: 0, wantY: 10},
		{name: "270 points left", angle: 270, wantX: -10, wantY: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PolarToCartesian(0, 0, 10, tt.angle)
			if math.Abs(got.X-tt.wantX) > 1e-9 || math.Abs(got.Y-tt.wantY) > 1e-9 {
				t.Errorf("PolarToCartesian(0,0,10,%v) = (%v,%v), want (%v,%v)",
					tt.angle, got.X, got.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestPieSlicePathQuarter(t *testing.T) {
	path := PieSlicePath(0, 90, 10, 0, 0)

	if !strings.Contains(path, " A 10 10 0 0 0 ") {
		t.Errorf("quarter slice should carry large-arc flag 0, got %q", path)
	}

	// The line-to point is the end angle, the arc endpoint the start angle.
	lineTo := PolarToCartesian(0, 0, 10, 90)
	arcEnd := PolarToCartesian(0, 0, 10, 0)
	wantL := fmt.Sprintf("L %s,%s", fmtNum(lineTo.X), fmtNum(lineTo.Y))
	wantEnd := fmt.Sprintf("%s,%s Z", fmtNum(arcEnd.X), fmtNum(arcEnd.Y))
	if !strings.Contains(path, wantL) {
		t.Errorf("path %q missing line-to %q", path, wantL)
	}
	if !strings.HasSuffix(path, wantEnd) {
		t.Errorf("path %q should end with %q", path, wantEnd)
	}
}

func TestPieSlicePathLargeArc(t *testing.T) {
	path := PieSlicePath(0, 270, 10, 0, 0)
	if !strings.Contains(path, " A 10 10 0 1 0 ") {
		t.Errorf("270 degree slice should carry large-arc flag 1, got %q", path)
	}
}

func TestPieSlicePathDegenerate(t *testing.T) {
	path := PieSlicePath(45, 45, 10, 0, 0)
	// Degenerate slices produce a zero-area path; callers filter them out.
	p := PolarToCartesian(0, 0, 10, 45)
	want := fmt.Sprintf("L %s,%s", fmtNum(p.X), fmtNum(p.Y))
	if !strings.Contains(path, want) {
		t.Errorf("degenerate slice = %q, want both endpoints at %q", path, want)
	}
}
