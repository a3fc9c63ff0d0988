package chart

import (
	"math"

	"go-inventory-dashboard/internal/model"
)

// Fixed canvas geometry shared by the renderers.
const (
	BarMaxHeight = 200.0

	LinePlotWidth  = 600.0
	LinePlotHeight = 240.0
	LineLeftMargin = 40.0
	LineTopMargin  = 20.0

	PieCenterX  = 96.0
	PieCenterY  = 96.0
	PieRadius   = 80.0
	PieRotation = -90.0

	TrendPlotWidth  = 600.0
	TrendLeftMargin = 40.0
	TrendBaseline   = 220.0
	TrendSpan       = 180.0
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BarSegment is one stacked block of a bar. Offset is the distance from the
// baseline to the segment's bottom edge.
type BarSegment struct {
	Series model.SeriesKey `json:"series"`
	Value  int             `json:"value"`
	Height float64         `json:"height"`
	Offset float64         `json:"offset"`
}

type BarColumn struct {
	Category string                        `json:"category"`
	Total    int                           `json:"total"`
	Height   float64                       `json:"height"`
	Segments [model.SeriesCount]BarSegment `json:"segments"`
}

// ScaleBars stacks each record bottom-up in model.AllSeries order, scaling
// every segment against the largest record total. A zero maximum yields
// zero-height segments.
func ScaleBars(records []model.CategoryRecord, maxHeight float64) []BarColumn {
	maxTotal := 0
	for _, r := range records {
		if t := r.Total(); t > maxTotal {
			maxTotal = t
		}
	}

	columns := make([]BarColumn, len(records))
	for i, r := range records {
		col := BarColumn{Category: r.Category, Total: r.Total()}
		offset := 0.0
		for j, key := range model.AllSeries {
			v := r.Value(key)
			h := 0.0
			if maxTotal > 0 {
				h = float64(v) / float64(maxTotal) * maxHeight
			}
			col.Segments[j] = BarSegment{Series: key, Value: v, Height: h, Offset: offset}
			offset += h
		}
		col.Height = offset
		columns[i] = col
	}
	return columns
}

type LinePoint struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type LineSeries struct {
	Series model.SeriesKey `json:"series"`
	Points []LinePoint     `json:"points"`
}

type AxisTick struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
}

// LineLayout shares one Y axis across all four series.
type LineLayout struct {
	Min    float64                       `json:"min"`
	Max    float64                       `json:"max"`
	Flat   bool                          `json:"flat"`
	Series [model.SeriesCount]LineSeries `json:"series"`
	Ticks  []AxisTick                    `json:"ticks"`
}

// ScaleLine maps points onto the line plot. Input order is display order.
func ScaleLine(points []model.TimePoint) LineLayout {
	var layout LineLayout
	if len(points) > 0 {
		layout.Min = math.Inf(1)
		layout.Max = math.Inf(-1)
		for _, p := range points {
			for _, key := range model.AllSeries {
				v := p.Value(key)
				layout.Min = math.Min(layout.Min, v)
				layout.Max = math.Max(layout.Max, v)
			}
		}
	}
	layout.Flat = layout.Max == layout.Min

	n := len(points)
	layout.Ticks = make([]AxisTick, n)
	for i, p := range points {
		layout.Ticks[i] = AxisTick{Label: p.Date, X: LineX(i, n)}
	}
	for j, key := range model.AllSeries {
		series := LineSeries{Series: key, Points: make([]LinePoint, n)}
		for i, p := range points {
			v := p.Value(key)
			series.Points[i] = LinePoint{
				Index: i,
				Label: p.Date,
				Value: v,
				X:     LineX(i, n),
				Y:     LineY(v, layout.Min, layout.Max),
			}
		}
		layout.Series[j] = series
	}
	return layout
}

// LineX spreads n points across the plot width. A single point sits in the
// middle of the plot.
func LineX(index, n int) float64 {
	if n < 2 {
		return LineLeftMargin + LinePlotWidth/2
	}
	return float64(index)/float64(n-1)*LinePlotWidth + LineLeftMargin
}

// LineY maps value onto the shared axis, higher values higher on screen. A
// zero span maps to the midline.
func LineY(value, min, max float64) float64 {
	if max == min {
		return LineTopMargin + LinePlotHeight/2
	}
	return (max-value)/(max-min)*LinePlotHeight + LineTopMargin
}

// PieArc is the geometry of one slice. Angles are degrees in the unrotated
// frame; Anchor is in screen space, after the -90° rotation.
type PieArc struct {
	Name       string          `json:"name"`
	Value      float64         `json:"value"`
	Color      string          `json:"color"`
	Series     model.SeriesKey `json:"series"`
	Selectable bool            `json:"selectable"`
	Percentage float64         `json:"percentage"`
	StartAngle float64         `json:"start_angle"`
	EndAngle   float64         `json:"end_angle"`
	Sweep      float64         `json:"sweep"`
	Start      Point           `json:"start"`
	End        Point           `json:"end"`
	LargeArc   bool            `json:"large_arc"`
	Path       string          `json:"path"`
	Anchor     Point           `json:"anchor"`
}

// ScalePie partitions [0°, 360°) among the slices in input order. A
// non-positive total leaves every slice with a zero sweep and no path.
func ScalePie(slices []model.Slice) []PieArc {
	total := 0.0
	for _, s := range slices {
		total += s.Value
	}

	arcs := make([]PieArc, len(slices))
	cumulative := 0.0
	start := 0.0
	for i, s := range slices {
		key, ok := model.SeriesKeyFromLabel(s.Name)
		arc := PieArc{
			Name:       s.Name,
			Value:      s.Value,
			Color:      s.Color,
			Series:     key,
			Selectable: ok,
			StartAngle: start,
			EndAngle:   start,
		}
		if arc.Color == "" && ok {
			arc.Color = key.Color()
		}
		if total > 0 {
			cumulative += s.Value
			arc.Percentage = s.Value / total * 100
			arc.EndAngle = cumulative / total * 360
			arc.Sweep = arc.EndAngle - arc.StartAngle
		}
		arc.Start = polar(arc.StartAngle, PieRadius)
		arc.End = polar(arc.EndAngle, PieRadius)
		arc.LargeArc = arc.Sweep > 180
		arc.Path = slicePath(arc)
		arc.Anchor = rotate(polar(arc.StartAngle+arc.Sweep/2, PieRadius*0.6), PieRotation)
		arcs[i] = arc
		start = arc.EndAngle
	}
	return arcs
}

func slicePath(arc PieArc) string {
	const eps = 1e-9
	switch {
	case arc.Sweep <= eps:
		return ""
	case arc.Sweep >= 360-eps:
		// A single arc cannot close on its own start point.
		mid := polar(arc.StartAngle+180, PieRadius)
		return "M " + num(arc.Start.X) + " " + num(arc.Start.Y) +
			" A " + num(PieRadius) + " " + num(PieRadius) + " 0 1 1 " + num(mid.X) + " " + num(mid.Y) +
			" A " + num(PieRadius) + " " + num(PieRadius) + " 0 1 1 " + num(arc.Start.X) + " " + num(arc.Start.Y) + " Z"
	}
	large := "0"
	if arc.LargeArc {
		large = "1"
	}
	return "M " + num(PieCenterX) + " " + num(PieCenterY) +
		" L " + num(arc.Start.X) + " " + num(arc.Start.Y) +
		" A " + num(PieRadius) + " " + num(PieRadius) + " 0 " + large + " 1 " + num(arc.End.X) + " " + num(arc.End.Y) +
		" Z"
}

func polar(deg, radius float64) Point {
	rad := deg * math.Pi / 180
	return Point{X: PieCenterX + radius*math.Cos(rad), Y: PieCenterY + radius*math.Sin(rad)}
}

// rotate turns p by deg around the pie centre.
func rotate(p Point, deg float64) Point {
	rad := deg * math.Pi / 180
	dx, dy := p.X-PieCenterX, p.Y-PieCenterY
	return Point{
		X: PieCenterX + dx*math.Cos(rad) - dy*math.Sin(rad),
		Y: PieCenterY + dx*math.Sin(rad) + dy*math.Cos(rad),
	}
}

type TrendPoint struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// TrendLayout places actual sales followed by forecast demand on one
// continuous X axis.
type TrendLayout struct {
	Max    float64      `json:"max"`
	Sales  []TrendPoint `json:"sales"`
	Demand []TrendPoint `json:"demand"`
}

func ScaleTrend(sales, demand []float64, salesLabels, demandLabels []string) TrendLayout {
	layout := TrendLayout{}
	for _, v := range sales {
		layout.Max = math.Max(layout.Max, v)
	}
	for _, v := range demand {
		layout.Max = math.Max(layout.Max, v)
	}

	n := len(sales) + len(demand)
	layout.Sales = make([]TrendPoint, len(sales))
	for i, v := range sales {
		layout.Sales[i] = TrendPoint{Index: i, Label: labelAt(salesLabels, i), Value: v, X: trendX(i, n), Y: trendY(v, layout.Max)}
	}
	layout.Demand = make([]TrendPoint, len(demand))
	for i, v := range demand {
		layout.Demand[i] = TrendPoint{Index: i, Label: labelAt(demandLabels, i), Value: v, X: trendX(len(sales)+i, n), Y: trendY(v, layout.Max)}
	}
	return layout
}

func trendX(index, n int) float64 {
	if n < 2 {
		return TrendLeftMargin + TrendPlotWidth/2
	}
	return float64(index)/float64(n-1)*TrendPlotWidth + TrendLeftMargin
}

func trendY(value, max float64) float64 {
	if max <= 0 {
		return TrendBaseline
	}
	return TrendBaseline - value/max*TrendSpan
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
