package chart

import (
	"fmt"
	"io"

	"go-inventory-dashboard/internal/format"
	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
)

// Bar canvas layout. Each category gets a fixed slot; bars stand on a
// common baseline.
const (
	barPadding   = 16.0
	barSlotWidth = 96.0
	barWidth     = 64.0
	barBaseline  = barPadding + BarMaxHeight
	barAreaH     = 256.0
)

type BarChart struct {
	props   Props
	columns []BarColumn
	tooltip Tooltip
}

func NewBarChart(records []model.CategoryRecord, props Props) *BarChart {
	return &BarChart{
		props:   props,
		columns: ScaleBars(records, BarMaxHeight),
	}
}

func (c *BarChart) Kind() Kind { return KindBar }

func (c *BarChart) SetProps(p Props) { c.props = p }

func (c *BarChart) Tooltip() Tooltip { return c.tooltip }

func (c *BarChart) Columns() []BarColumn { return c.columns }

// SegmentRect is the on-canvas rectangle of a segment.
type SegmentRect struct {
	X, Y, Width, Height float64
}

func (c *BarChart) segmentRect(col, seg int) SegmentRect {
	s := c.columns[col].Segments[seg]
	x := barPadding + float64(col)*barSlotWidth + (barSlotWidth-barWidth)/2
	return SegmentRect{
		X:      x,
		Y:      barBaseline - s.Offset - s.Height,
		Width:  barWidth,
		Height: s.Height,
	}
}

func (c *BarChart) Click(t Target) error {
	switch t.Kind {
	case TargetSegment:
		if t.Index >= len(c.columns) {
			return errors.Wrapf(ErrUnknownTarget, "bar column %d", t.Index)
		}
	case TargetLegend:
	default:
		return errors.Wrapf(ErrUnknownTarget, "bar chart has no %s", t.Kind)
	}
	c.props.toggle(t.Series)
	return nil
}

func (c *BarChart) Enter(t Target) error {
	if t.Kind != TargetSegment || t.Index >= len(c.columns) {
		return errors.Wrapf(ErrUnknownTarget, "bar hover %s", t)
	}
	col := c.columns[t.Index]
	seg := col.Segments[t.Series]
	r := c.segmentRect(t.Index, int(t.Series))
	c.tooltip.Enter(
		r.X+r.Width,
		r.Y+r.Height/2,
		col.Category,
		fmt.Sprintf("%s: %s items", t.Series.Label(), format.Count(int64(seg.Value))),
		PlaceRight,
	)
	return nil
}

func (c *BarChart) Leave() { c.tooltip.Leave() }

type BarSegmentView struct {
	BarSegment
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Title   string  `json:"title"`
	Target  Target  `json:"target"`
}

type BarColumnView struct {
	Category string           `json:"category"`
	Total    int              `json:"total"`
	Segments []BarSegmentView `json:"segments"`
}

type BarView struct {
	Kind     Kind            `json:"kind"`
	Selected Selection       `json:"selected"`
	Columns  []BarColumnView `json:"columns"`
	Legend   []LegendEntry   `json:"legend"`
	Filter   *FilterBanner   `json:"filter,omitempty"`
	Tooltip  TooltipView     `json:"tooltip"`
}

func (c *BarChart) Model() any {
	sel := c.props.Selected
	view := BarView{
		Kind:     KindBar,
		Selected: sel,
		Columns:  make([]BarColumnView, len(c.columns)),
		Legend:   seriesLegend(sel),
		Filter:   filterBanner(sel),
		Tooltip:  c.tooltip.View(),
	}
	for i, col := range c.columns {
		cv := BarColumnView{Category: col.Category, Total: col.Total}
		for j, s := range col.Segments {
			r := c.segmentRect(i, j)
			cv.Segments = append(cv.Segments, BarSegmentView{
				BarSegment: s,
				Label:      s.Series.Label(),
				Color:      s.Series.Color(),
				Opacity:    sel.OpacityFor(s.Series),
				X:          r.X,
				Y:          r.Y,
				Width:      r.Width,
				Title:      fmt.Sprintf("%s: %s", s.Series.Label(), format.Count(int64(s.Value))),
				Target:     Target{Kind: TargetSegment, Series: s.Series, Index: i},
			})
		}
		view.Columns[i] = cv
	}
	return view
}

func (c *BarChart) width() float64 {
	w := 2*barPadding + float64(len(c.columns))*barSlotWidth
	if w < 4*legendItemWidth {
		w = 4 * legendItemWidth
	}
	return w
}

func (c *BarChart) RenderSVG(w io.Writer) error {
	sel := c.props.Selected
	height := barAreaH + 40
	if sel.Active() {
		height += 40
	}
	canvas := newCanvas(w, c.width(), height)
	canvas.Rect(0, 0, px(c.width()), px(barAreaH), `fill="#f9fafb"`, `rx="8"`)

	for i, col := range c.columns {
		for j, s := range col.Segments {
			if s.Height <= 0 {
				continue
			}
			r := c.segmentRect(i, j)
			target := Target{Kind: TargetSegment, Series: s.Series, Index: i}
			canvas.Rect(px(r.X), px(r.Y), px(r.Width), px(r.Height),
				fillAttr(s.Series.Color()),
				opacityAttr(sel.OpacityFor(s.Series)),
				targetAttr(target),
				transitionHint,
			)
		}
		cx := px(barPadding + float64(i)*barSlotWidth + barSlotWidth/2)
		canvas.Text(cx, px(barBaseline+16), col.Category, `text-anchor="middle"`, `font-size="12"`, `fill="#4b5563"`)
		canvas.Text(cx, px(barBaseline+30), fmt.Sprint(col.Total), `text-anchor="middle"`, `font-size="12"`, `fill="#6b7280"`)
	}
	renderTooltip(canvas, c.tooltip)
	renderLegend(canvas, seriesLegend(sel), barAreaH+20, false)

	if banner := filterBanner(sel); banner != nil {
		y := barAreaH + 44
		canvas.Rect(0, px(y), px(c.width()), 32, `fill="#eff6ff"`, `rx="8"`)
		canvas.Text(12, px(y+14), banner.Text, `font-size="13"`, `fill="#1e3a8a"`)
		canvas.Text(12, px(y+27), banner.Hint, `font-size="11"`, `fill="#1d4ed8"`)
	}
	return canvas.End()
}
