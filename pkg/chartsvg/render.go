package chartsvg

import (
	"fmt"
	"strings"
)

// Datum is one slice/bar worth of data. Callers are expected to have dropped
// zero and negative values already; the renderers guard again regardless.
type Datum struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

var palettes = map[string][]string{
	"ocean":    {"#0ea5e9", "#0284c7", "#0369a1", "#075985", "#0c4a6e", "#38bdf8", "#7dd3fc", "#bae6fd", "#164e63", "#22d3ee"},
	"forest":   {"#22c55e", "#16a34a", "#15803d", "#166534", "#14532d", "#4ade80", "#86efac", "#bbf7d0", "#065f46", "#34d399"},
	"sunset":   {"#f97316", "#ea580c", "#c2410c", "#9a3412", "#7c2d12", "#fb923c", "#fdba74", "#fed7aa", "#b45309", "#f59e0b"},
	"berry":    {"#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87", "#c084fc", "#d8b4fe", "#e9d5ff", "#86198f", "#d946ef"},
	"business": {"#2563eb", "#16a34a", "#f59e0b", "#dc2626", "#7c3aed", "#0891b2", "#db2777", "#65a30d", "#475569", "#ea580c"},
}

// PaletteColors resolves a named palette, falling back to "business".
func PaletteColors(name string) []string {
	if colors, ok := palettes[name]; ok {
		return colors
	}
	return palettes["business"]
}

const (
	chartWidth  = 400.0
	chartHeight = 260.0
)

// RenderPie renders a full pie chart SVG document. Zero-value data is
// skipped so degenerate slices never make it into the output.
func RenderPie(data []Datum, colors []string) string {
	return renderPieLike(data, colors, false)
}

// RenderDonut renders a pie chart with an opaque inner circle punched on top.
// The inner circle is drawn last so it covers the slice centers; the slices
// are not boolean-subtracted.
func RenderDonut(data []Datum, colors []string) string {
	return renderPieLike(data, colors, true)
}

func renderPieLike(data []Datum, colors []string, donut bool) string {
	cx, cy := chartWidth/2, chartHeight/2
	r := chartHeight/2 - 20

	var total float64
	for _, d := range data {
		if d.Value > 0 {
			total += d.Value
		}
	}

	var b strings.Builder
	openSVG(&b)
	if total > 0 {
		angle := 0.0
		i := 0
		for _, d := range data {
			if d.Value <= 0 {
				continue
			}
			span := d.Value / total * 360
			fmt.Fprintf(&b, `<path d="%s" fill="%s"><title>%s: %s (%.1f%%)</title></path>`,
				PieSlicePath(angle, angle+span, r, cx, cy),
				colors[i%len(colors)],
				escape(d.Label), fmtNum(d.Value), d.Percent)
			angle += span
			i++
		}
	}
	if donut {
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%s" fill="#ffffff"/>`,
			fmtNum(cx), fmtNum(cy), fmtNum(r*0.6))
	}
	b.WriteString("</svg>")
	return b.String()
}

// RenderBar renders a vertical bar chart SVG document.
func RenderBar(data []Datum, colors []string) string {
	plot := PlotRect{Width: chartWidth - 50, Height: chartHeight - 50, PadLeft: 40, PadTop: 10}

	maxV := 1.0
	for _, d := range data {
		if d.Value > maxV {
			maxV = d.Value
		}
	}

	var b strings.Builder
	openSVG(&b)
	n := len(data)
	if n > 0 {
		slot := plot.Width / float64(n)
		barW := slot * 0.7
		for i, d := range data {
			if d.Value <= 0 {
				continue
			}
			h := d.Value / maxV * plot.Height
			x := plot.PadLeft + float64(i)*slot + (slot-barW)/2
			y := plot.PadTop + plot.Height - h
			fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s: %s (%.1f%%)</title></rect>`,
				fmtNum(x), fmtNum(y), fmtNum(barW), fmtNum(h),
				colors[i%len(colors)],
				escape(d.Label), fmtNum(d.Value), d.Percent)
			fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="9" text-anchor="middle">%s</text>`,
				fmtNum(x+barW/2), fmtNum(plot.PadTop+plot.Height+12), escape(truncate(d.Label, 10)))
		}
	}
	b.WriteString("</svg>")
	return b.String()
}

// RenderLine renders a multi-series line chart SVG document over month
// buckets. Labels are thinned past 8 buckets.
func RenderLine(months []string, series []Series, colors []string) string {
	plot := PlotRect{Width: chartWidth - 60, Height: chartHeight - 50, PadLeft: 45, PadTop: 10}
	maxY := MaxValue(series)
	n := len(months)

	var b strings.Builder
	openSVG(&b)

	for si, s := range series {
		var pts []string
		for i, v := range s.Values {
			if i >= n {
				break
			}
			pts = append(pts, fmt.Sprintf("%s,%s",
				fmtNum(plot.XForIndex(i, n)), fmtNum(plot.YForValue(v, maxY))))
		}
		if len(pts) == 0 {
			continue
		}
		color := colors[si%len(colors)]
		fmt.Fprintf(&b, `<polyline points="%s" fill="none" stroke="%s" stroke-width="2"><title>%s</title></polyline>`,
			strings.Join(pts, " "), color, escape(s.Label))
	}

	for _, i := range ThinLabels(n) {
		fmt.Fprintf(&b, `<text x="%s" y="%s" font-size="9" text-anchor="middle">%s</text>`,
			fmtNum(plot.XForIndex(i, n)), fmtNum(plot.PadTop+plot.Height+14), escape(months[i]))
	}

	b.WriteString("</svg>")
	return b.String()
}

func openSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`,
		fmtNum(chartWidth), fmtNum(chartHeight), fmtNum(chartWidth), fmtNum(chartHeight))
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
