package chart

import (
	"fmt"
	"io"

	"go-inventory-dashboard/internal/format"
	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
)

const pieSize = PieCenterX * 2

type PieChart struct {
	props   Props
	arcs    []PieArc
	tooltip Tooltip
}

func NewPieChart(slices []model.Slice, props Props) *PieChart {
	return &PieChart{props: props, arcs: ScalePie(slices)}
}

func (c *PieChart) Kind() Kind { return KindPie }

func (c *PieChart) SetProps(p Props) { c.props = p }

func (c *PieChart) Tooltip() Tooltip { return c.tooltip }

func (c *PieChart) Arcs() []PieArc { return c.arcs }

// opacityFor dims slices by their mapped series. Slices outside the four
// series are dimmed whenever any filter is active.
func (c *PieChart) opacityFor(arc PieArc) float64 {
	if !arc.Selectable {
		if c.props.Selected.Active() {
			return OpacityDimmed
		}
		return OpacityFull
	}
	return c.props.Selected.OpacityFor(arc.Series)
}

// Click on a slice or its legend entry toggles the slice's series. Slices
// whose name maps to no series are ignored.
func (c *PieChart) Click(t Target) error {
	if t.Kind != TargetSlice && t.Kind != TargetSliceLegend {
		return errors.Wrapf(ErrUnknownTarget, "pie chart has no %s", t.Kind)
	}
	if t.Index >= len(c.arcs) {
		return errors.Wrapf(ErrUnknownTarget, "pie slice %d", t.Index)
	}
	arc := c.arcs[t.Index]
	if !arc.Selectable {
		return nil
	}
	c.props.toggle(arc.Series)
	return nil
}

func (c *PieChart) Enter(t Target) error {
	if t.Kind != TargetSlice || t.Index >= len(c.arcs) {
		return errors.Wrapf(ErrUnknownTarget, "pie hover %s", t)
	}
	arc := c.arcs[t.Index]
	c.tooltip.Enter(arc.Anchor.X, arc.Anchor.Y, arc.Name,
		fmt.Sprintf("%s items (%.1f%%)", format.Number(arc.Value), arc.Percentage), PlaceCenter)
	return nil
}

func (c *PieChart) Leave() { c.tooltip.Leave() }

type PieSliceView struct {
	PieArc
	Opacity float64 `json:"opacity"`
	Target  Target  `json:"target"`
}

type PieView struct {
	Kind     Kind           `json:"kind"`
	Selected Selection      `json:"selected"`
	Rotation float64        `json:"rotation"`
	Slices   []PieSliceView `json:"slices"`
	Legend   []LegendEntry  `json:"legend"`
	Tooltip  TooltipView    `json:"tooltip"`
}

func (c *PieChart) legend() []LegendEntry {
	legend := make([]LegendEntry, len(c.arcs))
	for i, arc := range c.arcs {
		legend[i] = LegendEntry{
			Series:     arc.Series,
			Selectable: arc.Selectable,
			Label:      fmt.Sprintf("%s (%s)", arc.Name, format.Number(arc.Value)),
			Color:      arc.Color,
			Opacity:    c.opacityFor(arc),
			Target:     Target{Kind: TargetSliceLegend, Index: i},
		}
	}
	return legend
}

func (c *PieChart) Model() any {
	view := PieView{
		Kind:     KindPie,
		Selected: c.props.Selected,
		Rotation: PieRotation,
		Slices:   make([]PieSliceView, len(c.arcs)),
		Legend:   c.legend(),
		Tooltip:  c.tooltip.View(),
	}
	for i, arc := range c.arcs {
		view.Slices[i] = PieSliceView{
			PieArc:  arc,
			Opacity: c.opacityFor(arc),
			Target:  Target{Kind: TargetSlice, Index: i},
		}
	}
	return view
}

func (c *PieChart) RenderSVG(w io.Writer) error {
	legendTop := pieSize + 16
	height := legendTop + float64(len(c.arcs))*legendRowHeight
	canvas := newCanvas(w, pieSize, height)

	canvas.Group(fmt.Sprintf(`transform="rotate(%s %s %s)"`, num(PieRotation), num(PieCenterX), num(PieCenterY)))
	for i, arc := range c.arcs {
		if arc.Path == "" {
			continue
		}
		attrs := []string{fillAttr(arc.Color), opacityAttr(c.opacityFor(arc))}
		if arc.Selectable {
			attrs = append(attrs, transitionHint)
		}
		attrs = append(attrs, targetAttr(Target{Kind: TargetSlice, Index: i}))
		canvas.Path(arc.Path, attrs...)
	}
	canvas.Gend()

	renderTooltip(canvas, c.tooltip)
	renderLegend(canvas, c.legend(), legendTop, true)
	return canvas.End()
}
