package service

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/datasource"
	"go-inventory-dashboard/internal/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticLoader struct {
	dashboard datasource.Dashboard
}

func (l staticLoader) LoadDashboard(context.Context) datasource.Dashboard {
	return l.dashboard
}

func fallbackDashboard() datasource.Dashboard {
	return datasource.Dashboard{
		Stats:    datasource.FallbackStats(),
		BarData:  datasource.FallbackBarData(),
		LineData: datasource.FallbackLineData(),
		PieData:  datasource.FallbackPieData(),
	}
}

type published struct {
	room      string
	eventType string
	payload   any
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []published
	closed []string
}

func (n *recordingNotifier) Publish(room, eventType string, payload any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, published{room, eventType, payload})
	return nil
}

func (n *recordingNotifier) CloseRoom(room string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, room)
}

func (n *recordingNotifier) ofType(eventType string) []published {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []published
	for _, e := range n.events {
		if e.eventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

func newTestDashboard(t *testing.T) (*dashboardService, *recordingNotifier, *Snapshot) {
	t.Helper()
	n := &recordingNotifier{}
	svc := newDashboardService(staticLoader{fallbackDashboard()}, n, time.Hour, time.Now)
	snap, err := svc.Open(context.Background())
	require.NoError(t, err)
	return svc, n, snap
}

func TestOpenSnapshot(t *testing.T) {
	_, _, snap := newTestDashboard(t)

	assert.NotEqual(t, uuid.Nil, snap.SessionID)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.False(t, snap.Selected.Active())
	require.Len(t, snap.Stats, 6)

	values := map[string]string{}
	for _, c := range snap.Stats {
		values[c.Title] = c.Value
	}
	assert.Equal(t, "4,247", values["Total Items"])
	assert.Equal(t, "847", values["Daily Sales"])
	assert.Equal(t, "25,410", values["Monthly Sales"])
	assert.Equal(t, "31", values["Low Stock Items"])
	assert.Equal(t, "287", values["In Transit"])
	assert.Equal(t, "$142,850", values["Value"])

	for _, k := range chart.Kinds {
		assert.Contains(t, snap.Charts, k)
	}
}

func TestClickSharesSelectionAcrossCharts(t *testing.T) {
	svc, n, snap := newTestDashboard(t)
	id := snap.SessionID

	snap, err := svc.Click(id, chart.KindBar, chart.Target{Kind: chart.TargetSegment, Series: model.OutOfStock, Index: 1})
	require.NoError(t, err)
	key, ok := snap.Selected.Selected()
	require.True(t, ok)
	assert.Equal(t, model.OutOfStock, key)

	pie := snap.Charts[chart.KindPie].(chart.PieView)
	assert.Equal(t, chart.OpacityDimmed, pie.Slices[0].Opacity)
	assert.Equal(t, chart.OpacityFull, pie.Slices[2].Opacity)

	line := snap.Charts[chart.KindLine].(chart.LineView)
	assert.Equal(t, chart.OpacityFull, line.Series[model.OutOfStock].Opacity)
	assert.Equal(t, chart.OpacityDimmed, line.Series[model.InStock].Opacity)

	bar := snap.Charts[chart.KindBar].(chart.BarView)
	require.NotNil(t, bar.Filter)
	assert.Equal(t, "Filtered by: Out of Stock", bar.Filter.Text)

	events := n.ofType(EventSelectionChanged)
	require.Len(t, events, 1)
	assert.Equal(t, id.String(), events[0].room)

	// the pie slice for the same series clears it
	snap, err = svc.Click(id, chart.KindPie, chart.Target{Kind: chart.TargetSlice, Index: 2})
	require.NoError(t, err)
	assert.False(t, snap.Selected.Active())
	assert.Len(t, n.ofType(EventSelectionChanged), 2)
}

func TestSelectOnlyPublishesChanges(t *testing.T) {
	svc, n, snap := newTestDashboard(t)

	_, err := svc.Select(snap.SessionID, chart.Select(model.Suggested))
	require.NoError(t, err)
	_, err = svc.Select(snap.SessionID, chart.Select(model.Suggested))
	require.NoError(t, err)
	assert.Len(t, n.ofType(EventSelectionChanged), 1)

	snap, err = svc.Select(snap.SessionID, chart.NoSelection())
	require.NoError(t, err)
	assert.False(t, snap.Selected.Active())
	assert.Len(t, n.ofType(EventSelectionChanged), 2)
}

func TestClickErrors(t *testing.T) {
	svc, n, snap := newTestDashboard(t)

	_, err := svc.Click(snap.SessionID, chart.KindPie, chart.Target{Kind: chart.TargetLine, Series: model.InStock})
	assert.True(t, errors.Is(err, chart.ErrUnknownTarget))

	_, err = svc.Click(snap.SessionID, chart.Kind("radar"), chart.Target{Kind: chart.TargetLegend})
	assert.True(t, errors.Is(err, chart.ErrUnknownChart))

	_, err = svc.Click(uuid.New(), chart.KindBar, chart.Target{Kind: chart.TargetLegend})
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	assert.Empty(t, n.ofType(EventSelectionChanged))
}

func TestPointerTooltip(t *testing.T) {
	svc, n, snap := newTestDashboard(t)
	id := snap.SessionID

	model1, err := svc.Pointer(id, chart.KindLine, PointerEnter, chart.Target{Kind: chart.TargetPoint, Series: model.InStock, Index: 3})
	require.NoError(t, err)
	line := model1.(chart.LineView)
	assert.True(t, line.Tooltip.Visible)
	assert.Equal(t, "Jan 22", line.Tooltip.Title)
	assert.True(t, line.Tooltip.Flipped())
	assert.Equal(t, "translateX(-100%)", line.Tooltip.Overlay.Transform)

	// other charts keep their own tooltip
	snap, err = svc.Snapshot(id)
	require.NoError(t, err)
	assert.False(t, snap.Charts[chart.KindBar].(chart.BarView).Tooltip.Visible)

	model2, err := svc.Pointer(id, chart.KindLine, PointerLeave, chart.Target{})
	require.NoError(t, err)
	line = model2.(chart.LineView)
	assert.False(t, line.Tooltip.Visible)
	assert.Equal(t, "Jan 22", line.Tooltip.Title)

	events := n.ofType(EventTooltipChanged)
	require.Len(t, events, 2)
	assert.Equal(t, chart.KindLine, events[0].payload.(TooltipEvent).Chart)
}

func TestRenderChart(t *testing.T) {
	svc, _, snap := newTestDashboard(t)
	var buf bytes.Buffer
	require.NoError(t, svc.RenderChart(snap.SessionID, chart.KindPie, &buf))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "rotate(-90 96 96)")
}

// gatedLoader returns the i-th dashboard once the i-th gate is opened.
type gatedLoader struct {
	mu     sync.Mutex
	calls  int
	gates  []chan struct{}
	boards []datasource.Dashboard
}

func (l *gatedLoader) LoadDashboard(ctx context.Context) datasource.Dashboard {
	l.mu.Lock()
	i := l.calls
	l.calls++
	l.mu.Unlock()
	<-l.gates[i]
	return l.boards[i]
}

func TestStaleReloadIsDropped(t *testing.T) {
	stale := fallbackDashboard()
	stale.BarData = []model.CategoryRecord{{Category: "Stale"}}
	fresh := fallbackDashboard()
	fresh.BarData = []model.CategoryRecord{{Category: "Fresh", InStock: 1}}

	loader := &gatedLoader{
		gates:  []chan struct{}{make(chan struct{}), make(chan struct{}), make(chan struct{})},
		boards: []datasource.Dashboard{fallbackDashboard(), stale, fresh},
	}
	close(loader.gates[0])
	svc := newDashboardService(loader, nil, time.Hour, time.Now)
	snap, err := svc.Open(context.Background())
	require.NoError(t, err)
	id := snap.SessionID

	slow := make(chan *Snapshot)
	go func() {
		s, _ := svc.Reload(context.Background(), id)
		slow <- s
	}()
	require.Eventually(t, func() bool {
		loader.mu.Lock()
		defer loader.mu.Unlock()
		return loader.calls == 2
	}, time.Second, 5*time.Millisecond)

	close(loader.gates[2])
	snap, err = svc.Reload(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", snap.Charts[chart.KindBar].(chart.BarView).Columns[0].Category)

	close(loader.gates[1])
	late := <-slow
	assert.Equal(t, "Fresh", late.Charts[chart.KindBar].(chart.BarView).Columns[0].Category)
	assert.Equal(t, uint64(3), late.Generation)
}

func TestCloseAndSweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	n := &recordingNotifier{}
	svc := newDashboardService(staticLoader{fallbackDashboard()}, n, time.Hour, clock)

	a, err := svc.Open(context.Background())
	require.NoError(t, err)
	now = now.Add(50 * time.Minute)
	b, err := svc.Open(context.Background())
	require.NoError(t, err)

	expired := svc.Sweep(now.Add(20 * time.Minute))
	assert.Equal(t, []uuid.UUID{a.SessionID}, expired)

	_, err = svc.Snapshot(a.SessionID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	require.NoError(t, svc.Close(b.SessionID))
	assert.True(t, errors.Is(svc.Close(b.SessionID), ErrSessionNotFound))
	assert.ElementsMatch(t, []string{a.SessionID.String(), b.SessionID.String()}, n.closed)
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := newDashboardService(staticLoader{fallbackDashboard()}, nil, time.Hour, clock)

	snap, err := svc.Open(context.Background())
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	require.NoError(t, svc.Touch(snap.SessionID))
	assert.Empty(t, svc.Sweep(now.Add(20*time.Minute)))

	require.NoError(t, svc.Close(snap.SessionID))
	assert.True(t, errors.Is(svc.Touch(snap.SessionID), ErrSessionNotFound))
}
