package service

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/datasource"
	"go-inventory-dashboard/internal/format"
	"go-inventory-dashboard/internal/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	EventSelectionChanged = "selection_changed"
	EventTooltipChanged   = "tooltip_changed"
)

var ErrSessionNotFound = errors.New("session not found")

// PointerEvent is a hover transition on a chart element.
type PointerEvent string

const (
	PointerEnter PointerEvent = "enter"
	PointerLeave PointerEvent = "leave"
)

var ErrUnknownPointerEvent = errors.New("unknown pointer event")

func ParsePointerEvent(s string) (PointerEvent, error) {
	switch PointerEvent(s) {
	case PointerEnter, PointerLeave:
		return PointerEvent(s), nil
	}
	return "", errors.Wrapf(ErrUnknownPointerEvent, "%q", s)
}

// DashboardLoader is satisfied by *datasource.Loader.
type DashboardLoader interface {
	LoadDashboard(ctx context.Context) datasource.Dashboard
}

// Notifier pushes events to the browsers attached to a session. *ws.Hub
// satisfies it.
type Notifier interface {
	Publish(room, eventType string, payload any) error
	CloseRoom(room string)
}

type StatCard struct {
	Title    string `json:"title"`
	Value    string `json:"value"`
	Change   string `json:"change"`
	Positive bool   `json:"positive"`
	Info     string `json:"info"`
}

// Snapshot is the full dashboard state of one session.
type Snapshot struct {
	SessionID  uuid.UUID            `json:"session_id"`
	Generation uint64               `json:"generation"`
	Selected   chart.Selection      `json:"selected"`
	Stats      []StatCard           `json:"stats"`
	Charts     map[chart.Kind]any   `json:"charts"`
	Fallbacks  []datasource.Section `json:"fallbacks,omitempty"`
}

type SelectionEvent struct {
	Selected chart.Selection `json:"selected"`
}

type TooltipEvent struct {
	Chart   chart.Kind        `json:"chart"`
	Tooltip chart.TooltipView `json:"tooltip"`
}

type DashboardService interface {
	Open(ctx context.Context) (*Snapshot, error)
	Reload(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	Select(id uuid.UUID, sel chart.Selection) (*Snapshot, error)
	Click(id uuid.UUID, kind chart.Kind, target chart.Target) (*Snapshot, error)
	Pointer(id uuid.UUID, kind chart.Kind, event PointerEvent, target chart.Target) (any, error)
	Snapshot(id uuid.UUID) (*Snapshot, error)
	Touch(id uuid.UUID) error
	RenderChart(id uuid.UUID, kind chart.Kind, w io.Writer) error
	Close(id uuid.UUID) error
	Sweep(now time.Time) []uuid.UUID
}

type session struct {
	id uuid.UUID

	mu         sync.Mutex
	generation uint64
	selection  chart.Selection
	data       datasource.Dashboard
	charts     map[chart.Kind]chart.View
	lastSeen   time.Time
	changed    bool
}

type dashboardService struct {
	loader   DashboardLoader
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func NewDashboardService(loader DashboardLoader, notifier Notifier, ttl time.Duration) DashboardService {
	return newDashboardService(loader, notifier, ttl, time.Now)
}

func newDashboardService(loader DashboardLoader, notifier Notifier, ttl time.Duration, now func() time.Time) *dashboardService {
	return &dashboardService{
		loader:   loader,
		notifier: notifier,
		ttl:      ttl,
		now:      now,
		sessions: make(map[uuid.UUID]*session),
	}
}

func (s *dashboardService) Open(ctx context.Context) (*Snapshot, error) {
	sess := &session{id: uuid.New(), lastSeen: s.now()}
	sess.apply(datasource.Dashboard{
		Stats:    datasource.FallbackStats(),
		BarData:  datasource.FallbackBarData(),
		LineData: datasource.FallbackLineData(),
		PieData:  datasource.FallbackPieData(),
	})

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	logger.Info("dashboard session opened", zap.String("session_id", sess.id.String()))
	return s.Reload(ctx, sess.id)
}

// Reload fetches the data again. Only the most recently started load of a
// session is applied; a slower earlier load that finishes later is dropped.
func (s *dashboardService) Reload(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.generation++
	gen := sess.generation
	sess.mu.Unlock()

	data := s.loader.LoadDashboard(ctx)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if gen != sess.generation {
		logger.Debug("dropping stale dashboard load",
			zap.String("session_id", id.String()),
			zap.Uint64("generation", gen),
			zap.Uint64("current", sess.generation))
	} else {
		sess.apply(data)
	}
	sess.lastSeen = s.now()
	return sess.snapshot(), nil
}

func (s *dashboardService) Select(id uuid.UUID, sel chart.Selection) (*Snapshot, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.setSelection(sel)
	s.flushSelection(sess)
	return sess.snapshot(), nil
}

func (s *dashboardService) Click(id uuid.UUID, kind chart.Kind, target chart.Target) (*Snapshot, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view, err := sess.view(kind)
	if err != nil {
		return nil, err
	}
	if err := view.Click(target); err != nil {
		return nil, err
	}
	s.flushSelection(sess)
	return sess.snapshot(), nil
}

func (s *dashboardService) Pointer(id uuid.UUID, kind chart.Kind, event PointerEvent, target chart.Target) (any, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view, err := sess.view(kind)
	if err != nil {
		return nil, err
	}
	switch event {
	case PointerEnter:
		if err := view.Enter(target); err != nil {
			return nil, err
		}
	case PointerLeave:
		view.Leave()
	default:
		return nil, errors.Wrapf(ErrUnknownPointerEvent, "%q", event)
	}

	s.publish(sess.id, EventTooltipChanged, TooltipEvent{Chart: kind, Tooltip: view.Tooltip().View()})
	return view.Model(), nil
}

func (s *dashboardService) Snapshot(id uuid.UUID) (*Snapshot, error) {
	sess, err := s.touch(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// Touch marks the session as active. It fails with ErrSessionNotFound once
// the session is closed or swept.
func (s *dashboardService) Touch(id uuid.UUID) error {
	_, err := s.touch(id)
	return err
}

func (s *dashboardService) RenderChart(id uuid.UUID, kind chart.Kind, w io.Writer) error {
	sess, err := s.touch(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view, err := sess.view(kind)
	if err != nil {
		return err
	}
	return errors.Wrapf(view.RenderSVG(w), "render %s chart", kind)
}

func (s *dashboardService) Close(id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrSessionNotFound, "%s", id)
	}

	if s.notifier != nil {
		s.notifier.CloseRoom(id.String())
	}
	logger.Info("dashboard session closed", zap.String("session_id", id.String()))
	return nil
}

// Sweep closes sessions idle for longer than the TTL and returns their IDs.
func (s *dashboardService) Sweep(now time.Time) []uuid.UUID {
	var expired []uuid.UUID
	s.mu.RLock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		if now.Sub(sess.lastSeen) > s.ttl {
			expired = append(expired, id)
		}
		sess.mu.Unlock()
	}
	s.mu.RUnlock()

	for _, id := range expired {
		_ = s.Close(id)
	}
	return expired
}

func (s *dashboardService) get(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, errors.Wrapf(ErrSessionNotFound, "%s", id)
	}
	return sess, nil
}

func (s *dashboardService) touch(id uuid.UUID) (*session, error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	sess.lastSeen = s.now()
	sess.mu.Unlock()
	return sess, nil
}

// flushSelection publishes a pending selection change. Caller holds sess.mu.
func (s *dashboardService) flushSelection(sess *session) {
	if !sess.changed {
		return
	}
	sess.changed = false
	s.publish(sess.id, EventSelectionChanged, SelectionEvent{Selected: sess.selection})
}

func (s *dashboardService) publish(id uuid.UUID, eventType string, payload any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(id.String(), eventType, payload); err != nil {
		logger.Warn("failed to publish event",
			zap.String("session_id", id.String()),
			zap.String("event", eventType),
			zap.Error(err))
	}
}

// The methods below require sess.mu to be held.

// apply rebuilds the charts from data. Selection survives a reload; tooltips
// start hidden.
func (sess *session) apply(data datasource.Dashboard) {
	sess.data = data
	props := sess.props()
	sess.charts = map[chart.Kind]chart.View{
		chart.KindBar:  chart.NewBarChart(data.BarData, props),
		chart.KindPie:  chart.NewPieChart(data.PieData, props),
		chart.KindLine: chart.NewLineChart(data.LineData, props),
	}
}

func (sess *session) props() chart.Props {
	return chart.Props{Selected: sess.selection, OnSelect: sess.setSelection}
}

// setSelection is the single writer of the shared filter. Every chart gets
// the new value before the next render.
func (sess *session) setSelection(sel chart.Selection) {
	if sel == sess.selection {
		return
	}
	sess.selection = sel
	sess.changed = true
	props := sess.props()
	for _, v := range sess.charts {
		v.SetProps(props)
	}
}

func (sess *session) view(kind chart.Kind) (chart.View, error) {
	v, ok := sess.charts[kind]
	if !ok {
		return nil, errors.Wrapf(chart.ErrUnknownChart, "%q", kind)
	}
	return v, nil
}

func (sess *session) snapshot() *Snapshot {
	snap := &Snapshot{
		SessionID:  sess.id,
		Generation: sess.generation,
		Selected:   sess.selection,
		Stats:      statCards(sess.data),
		Charts:     make(map[chart.Kind]any, len(chart.Kinds)),
		Fallbacks:  append([]datasource.Section(nil), sess.data.Fallbacks...),
	}
	for _, k := range chart.Kinds {
		snap.Charts[k] = sess.charts[k].Model()
	}
	return snap
}

func statCards(d datasource.Dashboard) []StatCard {
	st := d.Stats
	return []StatCard{
		{
			Title: "Total Items", Value: format.Count(st.TotalItems), Change: "+15%", Positive: true,
			Info: "Total number of items currently in inventory across all categories",
		},
		{
			Title: "Daily Sales", Value: format.Count(st.DailySales), Change: "+8%", Positive: true,
			Info: "Number of items sold today across all categories",
		},
		{
			Title: "Monthly Sales", Value: format.Count(st.MonthlySales), Change: "+22%", Positive: true,
			Info: "Total number of items sold this month across all categories",
		},
		{
			Title: "Low Stock Items", Value: strconv.FormatInt(st.LowStockItems, 10), Change: "-5%", Positive: true,
			Info: "Items that are below the minimum stock threshold and need reordering",
		},
		{
			Title: "In Transit", Value: strconv.FormatInt(st.InTransit, 10), Change: "+28%", Positive: true,
			Info: "Items currently being shipped or in the process of delivery",
		},
		{
			Title: "Value", Value: format.Dollars(st.TotalValue), Change: "+19%", Positive: true,
			Info: "Total monetary value of all inventory items at current market prices",
		},
	}
}
