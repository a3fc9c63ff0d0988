package chart

import (
	"fmt"
	"io"

	"go-inventory-dashboard/internal/format"
	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
)

const (
	lineCanvasWidth = LineLeftMargin*2 + LinePlotWidth
	lineAxisY       = 270.0
	lineAreaH       = 280.0
	pointRadius     = 6
)

type LineChart struct {
	props   Props
	layout  LineLayout
	tooltip Tooltip
}

func NewLineChart(points []model.TimePoint, props Props) *LineChart {
	return &LineChart{props: props, layout: ScaleLine(points)}
}

func (c *LineChart) Kind() Kind { return KindLine }

func (c *LineChart) SetProps(p Props) { c.props = p }

func (c *LineChart) Tooltip() Tooltip { return c.tooltip }

func (c *LineChart) Layout() LineLayout { return c.layout }

func (c *LineChart) Click(t Target) error {
	switch t.Kind {
	case TargetLine, TargetLegend:
	case TargetPoint:
		if t.Index >= len(c.layout.Ticks) {
			return errors.Wrapf(ErrUnknownTarget, "line point %d", t.Index)
		}
	default:
		return errors.Wrapf(ErrUnknownTarget, "line chart has no %s", t.Kind)
	}
	c.props.toggle(t.Series)
	return nil
}

func (c *LineChart) Enter(t Target) error {
	if t.Kind != TargetPoint || t.Index >= len(c.layout.Ticks) {
		return errors.Wrapf(ErrUnknownTarget, "line hover %s", t)
	}
	p := c.layout.Series[t.Series].Points[t.Index]
	c.tooltip.Enter(p.X, p.Y, p.Label, fmt.Sprintf("%s: %s items", t.Series.Label(), format.Number(p.Value)), PlacePoint)
	return nil
}

func (c *LineChart) Leave() { c.tooltip.Leave() }

type LineSeriesView struct {
	LineSeries
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Path    string  `json:"path"`
	Target  Target  `json:"target"`
}

type LineView struct {
	Kind     Kind             `json:"kind"`
	Selected Selection        `json:"selected"`
	Min      float64          `json:"min"`
	Max      float64          `json:"max"`
	Series   []LineSeriesView `json:"series"`
	Ticks    []AxisTick       `json:"ticks"`
	Legend   []LegendEntry    `json:"legend"`
	Tooltip  TooltipView      `json:"tooltip"`
}

func (c *LineChart) Model() any {
	sel := c.props.Selected
	view := LineView{
		Kind:     KindLine,
		Selected: sel,
		Min:      c.layout.Min,
		Max:      c.layout.Max,
		Ticks:    c.layout.Ticks,
		Legend:   seriesLegend(sel),
		Tooltip:  c.tooltip.View(),
	}
	for _, s := range c.layout.Series {
		view.Series = append(view.Series, LineSeriesView{
			LineSeries: s,
			Label:      s.Series.Label(),
			Color:      s.Series.Color(),
			Opacity:    sel.OpacityFor(s.Series),
			Path:       polylinePath(linePoints(s)),
			Target:     Target{Kind: TargetLine, Series: s.Series},
		})
	}
	return view
}

func (c *LineChart) RenderSVG(w io.Writer) error {
	sel := c.props.Selected
	canvas := newCanvas(w, lineCanvasWidth, lineAreaH+40)
	renderGrid(canvas, lineCanvasWidth, LinePlotHeight)

	for _, s := range c.layout.Series {
		opacity := opacityAttr(sel.OpacityFor(s.Series))
		canvas.Group(`class="series"`)
		if d := polylinePath(linePoints(s)); d != "" {
			canvas.Path(d, `fill="none"`, strokeAttr(s.Series.Color()), `stroke-width="3"`, opacity,
				targetAttr(Target{Kind: TargetLine, Series: s.Series}), transitionHint)
		}
		for _, p := range s.Points {
			canvas.Circle(px(p.X), px(p.Y), pointRadius, fillAttr(s.Series.Color()), opacity,
				targetAttr(Target{Kind: TargetPoint, Series: s.Series, Index: p.Index}), transitionHint)
		}
		canvas.Gend()
	}
	for _, t := range c.layout.Ticks {
		canvas.Text(px(t.X), px(lineAxisY), t.Label, `text-anchor="middle"`, `font-size="12"`, `fill="#4b5563"`)
	}
	renderTooltip(canvas, c.tooltip)
	renderLegend(canvas, seriesLegend(sel), lineAreaH+12, false)
	return canvas.End()
}

func linePoints(s LineSeries) []Point {
	pts := make([]Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = Point{X: p.X, Y: p.Y}
	}
	return pts
}
