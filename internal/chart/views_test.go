package chart

import (
	"bytes"
	"errors"
	"testing"

	"go-inventory-dashboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testBars = []model.CategoryRecord{
		{Category: "Electronics", InStock: 450, InTransit: 120, OutOfStock: 25, Suggested: 80},
		{Category: "Clothing", InStock: 320, InTransit: 85, OutOfStock: 12, Suggested: 45},
	}
	testPoints = []model.TimePoint{
		{Date: "Jan 1", InStock: 1200, InTransit: 300, OutOfStock: 50, Suggested: 200},
		{Date: "Jan 8", InStock: 1150, InTransit: 320, OutOfStock: 45, Suggested: 210},
		{Date: "Jan 15", InStock: 1180, InTransit: 280, OutOfStock: 60, Suggested: 190},
		{Date: "Jan 22", InStock: 1230, InTransit: 340, OutOfStock: 63, Suggested: 215},
	}
	testSlices = []model.Slice{
		{Name: "In Stock", Value: 2230, Color: "#10b981"},
		{Name: "In Transit", Value: 570, Color: "#f59e0b"},
		{Name: "Out of Stock", Value: 113, Color: "#ef4444"},
		{Name: "Suggested", Value: 367, Color: "#3b82f6"},
	}
)

// shell mimics the page that owns the selection for a group of charts.
type shell struct {
	selected Selection
	calls    int
	views    []View
}

func (s *shell) props() Props {
	return Props{Selected: s.selected, OnSelect: s.onSelect}
}

func (s *shell) onSelect(next Selection) {
	s.calls++
	s.selected = next
	for _, v := range s.views {
		v.SetProps(s.props())
	}
}

func newShell() *shell {
	s := &shell{}
	s.views = []View{
		NewBarChart(testBars, s.props()),
		NewPieChart(testSlices, s.props()),
		NewLineChart(testPoints, s.props()),
	}
	return s
}

func TestViews_ClickTargetsShareOneToggle(t *testing.T) {
	tests := []struct {
		name   string
		view   int
		target Target
		want   model.SeriesKey
	}{
		{name: "bar segment", view: 0, target: Target{Kind: TargetSegment, Series: model.InTransit, Index: 1}, want: model.InTransit},
		{name: "bar legend", view: 0, target: Target{Kind: TargetLegend, Series: model.Suggested}, want: model.Suggested},
		{name: "pie slice", view: 1, target: Target{Kind: TargetSlice, Index: 2}, want: model.OutOfStock},
		{name: "pie legend", view: 1, target: Target{Kind: TargetSliceLegend, Index: 0}, want: model.InStock},
		{name: "line stroke", view: 2, target: Target{Kind: TargetLine, Series: model.InStock}, want: model.InStock},
		{name: "line point", view: 2, target: Target{Kind: TargetPoint, Series: model.OutOfStock, Index: 3}, want: model.OutOfStock},
		{name: "line legend", view: 2, target: Target{Kind: TargetLegend, Series: model.InTransit}, want: model.InTransit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newShell()
			require.NoError(t, s.views[tt.view].Click(tt.target))
			key, ok := s.selected.Selected()
			require.True(t, ok)
			assert.Equal(t, tt.want, key)

			require.NoError(t, s.views[tt.view].Click(tt.target))
			assert.False(t, s.selected.Active())
			assert.Equal(t, 2, s.calls)
		})
	}
}

func TestViews_SelectionDimsSiblings(t *testing.T) {
	s := newShell()
	require.NoError(t, s.views[1].Click(Target{Kind: TargetSlice, Index: 1}))

	bar := s.views[0].Model().(BarView)
	for _, seg := range bar.Columns[0].Segments {
		if seg.Series == model.InTransit {
			assert.Equal(t, OpacityFull, seg.Opacity)
		} else {
			assert.Equal(t, OpacityDimmed, seg.Opacity)
		}
	}
	require.NotNil(t, bar.Filter)
	assert.Equal(t, "Filtered by: In Transit", bar.Filter.Text)

	line := s.views[2].Model().(LineView)
	assert.Equal(t, OpacityFull, line.Series[model.InTransit].Opacity)
	assert.Equal(t, OpacityDimmed, line.Legend[model.InStock].Opacity)

	pie := s.views[1].Model().(PieView)
	assert.Equal(t, OpacityDimmed, pie.Slices[0].Opacity)
	assert.Equal(t, OpacityFull, pie.Slices[1].Opacity)
}

func TestViews_InvalidTargets(t *testing.T) {
	s := newShell()
	assert.ErrorIs(t, s.views[0].Click(Target{Kind: TargetSlice}), ErrUnknownTarget)
	assert.ErrorIs(t, s.views[0].Click(Target{Kind: TargetSegment, Index: 9}), ErrUnknownTarget)
	assert.ErrorIs(t, s.views[1].Click(Target{Kind: TargetSlice, Index: 4}), ErrUnknownTarget)
	assert.ErrorIs(t, s.views[2].Enter(Target{Kind: TargetLine, Series: model.InStock}), ErrUnknownTarget)
	assert.ErrorIs(t, s.views[0].Enter(Target{Kind: TargetLegend}), ErrUnknownTarget)
	assert.Zero(t, s.calls)
}

func TestPieChart_UnknownSliceIsNotSelectable(t *testing.T) {
	s := &shell{}
	pie := NewPieChart([]model.Slice{{Name: "Damaged", Value: 4}, {Name: "In Stock", Value: 4}}, s.props())
	s.views = []View{pie}

	require.NoError(t, pie.Click(Target{Kind: TargetSlice, Index: 0}))
	assert.Zero(t, s.calls)

	require.NoError(t, pie.Click(Target{Kind: TargetSlice, Index: 1}))
	view := pie.Model().(PieView)
	assert.Equal(t, OpacityDimmed, view.Slices[0].Opacity)
	assert.False(t, view.Legend[0].Selectable)
}

func TestBarChart_HoverTooltip(t *testing.T) {
	bar := NewBarChart(testBars, Props{})
	require.NoError(t, bar.Enter(Target{Kind: TargetSegment, Series: model.InStock, Index: 0}))

	tip := bar.Tooltip()
	assert.True(t, tip.Visible)
	assert.Equal(t, "Electronics", tip.Title)
	assert.Equal(t, "In Stock: 450 items", tip.Detail)
	assert.Equal(t, 96.0, tip.AnchorX)
	assert.Equal(t, 108.0, tip.Overlay().Left)

	height := 450.0 / 675.0 * BarMaxHeight
	assert.InDelta(t, barBaseline-height/2, tip.AnchorY, 1e-9)

	bar.Leave()
	assert.False(t, bar.Tooltip().Visible)
	assert.Equal(t, "Electronics", bar.Tooltip().Title)
}

func TestLineChart_HoverFlipsNearRightEdge(t *testing.T) {
	line := NewLineChart(testPoints, Props{})

	require.NoError(t, line.Enter(Target{Kind: TargetPoint, Series: model.InStock, Index: 1}))
	assert.False(t, line.Tooltip().Flipped())
	assert.Equal(t, "Jan 8", line.Tooltip().Title)
	assert.Equal(t, "In Stock: 1,150 items", line.Tooltip().Detail)

	require.NoError(t, line.Enter(Target{Kind: TargetPoint, Series: model.InStock, Index: 2}))
	assert.True(t, line.Tooltip().Flipped())
	assert.Equal(t, "translateX(-100%)", line.Tooltip().Overlay().Transform)
}

func TestPieChart_HoverTooltip(t *testing.T) {
	pie := NewPieChart(testSlices, Props{})
	require.NoError(t, pie.Enter(Target{Kind: TargetSlice, Index: 0}))

	tip := pie.Tooltip()
	assert.Equal(t, "In Stock", tip.Title)
	assert.Equal(t, "2,230 items (68.0%)", tip.Detail)
	assert.Equal(t, PlaceCenter, tip.Placement)
}

func TestRenderSVG(t *testing.T) {
	s := newShell()
	require.NoError(t, s.views[0].Click(Target{Kind: TargetLegend, Series: model.InStock}))
	require.NoError(t, s.views[2].Enter(Target{Kind: TargetPoint, Series: model.Suggested, Index: 0}))

	var buf bytes.Buffer
	require.NoError(t, s.views[0].RenderSVG(&buf))
	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `data-target="segment:0:inStock"`)
	assert.Contains(t, out, `opacity="0.3"`)
	assert.Contains(t, out, "Filtered by: In Stock")

	buf.Reset()
	require.NoError(t, s.views[1].RenderSVG(&buf))
	assert.Contains(t, buf.String(), `rotate(-90 96 96)`)
	assert.Contains(t, buf.String(), `data-target="slice:3"`)

	buf.Reset()
	require.NoError(t, s.views[2].RenderSVG(&buf))
	assert.Contains(t, buf.String(), `data-target="point:suggested:0"`)
	assert.Contains(t, buf.String(), "Suggested: 200 items")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderSVG_ReportsWriteError(t *testing.T) {
	bar := NewBarChart(testBars, Props{})
	assert.EqualError(t, bar.RenderSVG(failingWriter{}), "disk full")
}

func TestTrendChart(t *testing.T) {
	trend := NewTrendChart([]float64{3, 5, 4}, []float64{6, 7}, []string{"a", "b", "c"}, []string{"d", "e"})
	require.NoError(t, trend.Enter(TrendDemand, 1))
	assert.Equal(t, "e", trend.Tooltip().Title)
	assert.Equal(t, "Estimated Demand: 7 units", trend.Tooltip().Detail)
	assert.True(t, trend.Tooltip().Flipped())
	assert.ErrorIs(t, trend.Enter(TrendSales, 3), ErrUnknownTarget)

	var buf bytes.Buffer
	require.NoError(t, trend.RenderSVG(&buf))
	assert.Contains(t, buf.String(), `stroke-dasharray="5,5"`)
}
