package chartsvg

import (
	"math"
	"strings"
	"testing"
)

func TestMaxValueFloor(t *testing.T) {
	if got := MaxValue([]Series{{Label: "a", Values: []float64{0, 0, 0}}}); got != 1 {
		t.Errorf("all-zero series: MaxValue = %v, want floor 1", got)
	}
	if got := MaxValue(nil); got != 1 {
		t.Errorf("no series: MaxValue = %v, want floor 1", got)
	}
	if got := MaxValue([]Series{{Values: []float64{2, 7}}, {Values: []float64{5}}}); got != 7 {
		t.Errorf("MaxValue = %v, want 7", got)
	}
}

func TestPlotScaling(t *testing.T) {
	plot := PlotRect{Width: 300, Height: 200, PadLeft: 40, PadTop: 10}

	if got := plot.XForIndex(0, 5); got != 40 {
		t.Errorf("first bucket x = %v, want padLeft", got)
	}
	if got := plot.XForIndex(4, 5); got != 340 {
		t.Errorf("last bucket x = %v, want padLeft+width", got)
	}
	if got := plot.XForIndex(0, 1); got != 190 {
		t.Errorf("single bucket x = %v, want center 190", got)
	}

	if got := plot.YForValue(0, 10); got != 210 {
		t.Errorf("zero value y = %v, want bottom 210", got)
	}
	if got := plot.YForValue(10, 10); got != 10 {
		t.Errorf("max value y = %v, want top 10", got)
	}
	if got := plot.YForValue(5, 10); math.Abs(got-110) > 1e-9 {
		t.Errorf("mid value y = %v, want 110", got)
	}
}

func TestThinLabels(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []int
	}{
		{name: "Empty", n: 0, want: nil},
		{name: "Under threshold keeps all", n: 5, want: []int{0, 1, 2, 3, 4}},
		{name: "Exactly eight keeps all", n: 8, want: []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{name: "Twelve thins by step 2", n: 12, want: []int{0, 2, 4, 6, 8, 10}},
		{name: "TwentyFour thins by step 3", n: 24, want: []int{0, 3, 6, 9, 12, 15, 18, 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ThinLabels(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("ThinLabels(%d) = %v, want %v", tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ThinLabels(%d) = %v, want %v", tt.n, got, tt.want)
				}
			}
		})
	}
}

func TestRenderPieSkipsZeroValues(t *testing.T) {
	svg := RenderPie([]Datum{
		{Label: "Won", Value: 3, Percent: 100},
		{Label: "Lost", Value: 0},
	}, PaletteColors("business"))

	if strings.Count(svg, "<path") != 1 {
		t.Errorf("zero-value entries must not produce slices, got %q", svg)
	}
	if !strings.Contains(svg, "Won") {
		t.Errorf("slice tooltip missing label, got %q", svg)
	}
}

func TestRenderDonutPunchesInnerCircle(t *testing.T) {
	svg := RenderDonut([]Datum{{Label: "a", Value: 1, Percent: 100}}, PaletteColors("ocean"))
	if !strings.Contains(svg, "<circle") {
		t.Errorf("donut should draw the inner circle, got %q", svg)
	}
	// The circle has to come after the slices so it visually covers them.
	if strings.Index(svg, "<circle") < strings.Index(svg, "<path") {
		t.Errorf("inner circle must be drawn on top of slices")
	}
}

func TestRenderLineThinsLabels(t *testing.T) {
	months := make([]string, 12)
	values := make([]float64, 12)
	for i := range months {
		months[i] = "2024-" + string(rune('A'+i))
		values[i] = float64(i)
	}
	svg := RenderLine(months, []Series{{Label: "s", Values: values}}, PaletteColors("business"))
	if got := strings.Count(svg, "<text"); got != 6 {
		t.Errorf("12 buckets should render 6 thinned labels, got %d in %q", got, svg)
	}
}
