package chartsvg

import (
	"fmt"
	"math"
)

// Point is a cartesian coordinate on the SVG canvas.
type Point struct {
	X float64
	Y float64
}

// PolarToCartesian converts an angle in degrees to a point on the circle of
// radius r around (cx, cy). Angles are rotated -90 degrees so that 0 points
// straight up (12 o'clock), the conventional pie-chart orientation.
func PolarToCartesian(cx, cy, r, angleDeg float64) Point {
	rad := (angleDeg - 90) * math.Pi / 180
	return Point{
		X: cx + r*math.Cos(rad),
		Y: cy + r*math.Sin(rad),
	}
}

// PieSlicePath returns the SVG path for one pie slice spanning startDeg to
// endDeg on the circle of radius r around (cx, cy). The large-arc flag is set
// when the slice spans more than 180 degrees.
func PieSlicePath(startDeg, endDeg, r, cx, cy float64) string {
	start := PolarToCartesian(cx, cy, r, endDeg)
	end := PolarToCartesian(cx, cy, r, startDeg)

	largeArc := 0
	if endDeg-startDeg > 180 {
		largeArc = 1
	}

	return fmt.Sprintf("M %s,%s L %s,%s A %s %s 0 %d 0 %s,%s Z",
		fmtNum(cx), fmtNum(cy),
		fmtNum(start.X), fmtNum(start.Y),
		fmtNum(r), fmtNum(r),
		largeArc,
		fmtNum(end.X), fmtNum(end.Y),
	)
}

// fmtNum trims trailing zeros so paths stay compact and stable across runs.
func fmtNum(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
