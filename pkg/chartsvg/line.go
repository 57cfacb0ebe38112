package chartsvg

import "math"

// PlotRect is the plotting rectangle a line chart is scaled into.
type PlotRect struct {
	Width   float64
	Height  float64
	PadLeft float64
	PadTop  float64
}

// Series is one named line on a line chart. Values are positional: Values[i]
// belongs to bucket i of the shared month axis.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// MaxValue returns the maximum value across all series, floored at 1 so that
// an all-zero chart never divides by zero.
func MaxValue(series []Series) float64 {
	max := 1.0
	for _, s := range series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// XForIndex maps bucket i of n onto the plot. A single bucket sits in the
// middle of the plot.
func (p PlotRect) XForIndex(i, n int) float64 {
	if n <= 1 {
		return p.PadLeft + p.Width/2
	}
	return p.PadLeft + (float64(i)/float64(n-1))*p.Width
}

// YForValue maps a value onto the plot given the chart's maximum.
func (p PlotRect) YForValue(v, maxY float64) float64 {
	return p.PadTop + p.Height - (v/maxY)*p.Height
}

// ThinLabels returns the bucket indices whose labels should be drawn. With
// more than 8 buckets only ~8 evenly spaced labels survive: step = ceil(n/8),
// kept indices are round(j*step) while they stay inside the axis.
func ThinLabels(n int) []int {
	if n <= 0 {
		return nil
	}
	if n <= 8 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	step := math.Ceil(float64(n) / 8)
	var idx []int
	for j := 0; ; j++ {
		i := int(math.Round(float64(j) * step))
		if i >= n {
			break
		}
		idx = append(idx, i)
	}
	return idx
}
