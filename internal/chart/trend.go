package chart

import (
	"fmt"
	"io"

	"go-inventory-dashboard/internal/format"

	"github.com/pkg/errors"
)

// TrendSeries names the two lines of the item sales chart.
type TrendSeries string

const (
	TrendSales  TrendSeries = "sales"
	TrendDemand TrendSeries = "demand"
)

const (
	trendSalesColor  = "#ef4444"
	trendDemandColor = "#3b82f6"
	trendCanvasW     = TrendLeftMargin*2 + TrendPlotWidth
	trendCanvasH     = 256.0
)

func (s TrendSeries) Label() string {
	if s == TrendDemand {
		return "Estimated Demand"
	}
	return "Sales"
}

// TrendChart plots an item's recent sales followed by its demand forecast.
// It is hover-only and takes no part in the dashboard filter.
type TrendChart struct {
	layout  TrendLayout
	tooltip Tooltip
}

func NewTrendChart(sales, demand []float64, salesLabels, demandLabels []string) *TrendChart {
	return &TrendChart{layout: ScaleTrend(sales, demand, salesLabels, demandLabels)}
}

func (c *TrendChart) Layout() TrendLayout { return c.layout }

func (c *TrendChart) Tooltip() Tooltip { return c.tooltip }

func (c *TrendChart) Enter(series TrendSeries, index int) error {
	points := c.layout.Sales
	if series == TrendDemand {
		points = c.layout.Demand
	}
	if index < 0 || index >= len(points) {
		return errors.Wrapf(ErrUnknownTarget, "%s point %d", series, index)
	}
	p := points[index]
	c.tooltip.Enter(p.X, p.Y, p.Label, fmt.Sprintf("%s: %s units", series.Label(), format.Number(p.Value)), PlacePoint)
	return nil
}

func (c *TrendChart) Leave() { c.tooltip.Leave() }

type TrendView struct {
	TrendLayout
	SalesPath  string      `json:"sales_path"`
	DemandPath string      `json:"demand_path"`
	Tooltip    TooltipView `json:"tooltip"`
}

func (c *TrendChart) Model() TrendView {
	return TrendView{
		TrendLayout: c.layout,
		SalesPath:   polylinePath(trendPoints(c.layout.Sales)),
		DemandPath:  polylinePath(trendPoints(c.layout.Demand)),
		Tooltip:     c.tooltip.View(),
	}
}

func (c *TrendChart) RenderSVG(w io.Writer) error {
	canvas := newCanvas(w, trendCanvasW, trendCanvasH+32)
	renderGrid(canvas, trendCanvasW, trendCanvasH)

	if d := polylinePath(trendPoints(c.layout.Sales)); d != "" {
		canvas.Path(d, `fill="none"`, strokeAttr(trendSalesColor), `stroke-width="3"`)
	}
	if d := polylinePath(trendPoints(c.layout.Demand)); d != "" {
		canvas.Path(d, `fill="none"`, strokeAttr(trendDemandColor), `stroke-width="3"`, `stroke-dasharray="5,5"`)
	}
	for _, p := range c.layout.Sales {
		canvas.Circle(px(p.X), px(p.Y), pointRadius, fillAttr(trendSalesColor), fmt.Sprintf(`data-target="%s:%d"`, TrendSales, p.Index))
	}
	for _, p := range c.layout.Demand {
		canvas.Circle(px(p.X), px(p.Y), pointRadius, fillAttr(trendDemandColor), fmt.Sprintf(`data-target="%s:%d"`, TrendDemand, p.Index))
	}
	renderTooltip(canvas, c.tooltip)

	y := px(trendCanvasH + 20)
	canvas.Line(220, y-4, 236, y-4, strokeAttr(trendSalesColor), `stroke-width="2"`)
	canvas.Text(242, y, "Actual Sales", `font-size="13"`, `fill="#4b5563"`)
	canvas.Line(380, y-4, 396, y-4, strokeAttr(trendDemandColor), `stroke-width="2"`, `stroke-dasharray="4,2"`)
	canvas.Text(402, y, "Estimated Demand", `font-size="13"`, `fill="#4b5563"`)
	return canvas.End()
}

func trendPoints(pts []TrendPoint) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}
