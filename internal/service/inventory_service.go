package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-inventory-dashboard/internal/chart"
	"go-inventory-dashboard/internal/format"
	"go-inventory-dashboard/internal/model"
	"go-inventory-dashboard/internal/repository"

	"github.com/pkg/errors"
)

// TimeRange selects how much of an item's history the trend chart shows.
type TimeRange string

const (
	RangeDay   TimeRange = "1d"
	RangeWeek  TimeRange = "1w"
	RangeMonth TimeRange = "1m"
)

// ParseTimeRange accepts 1d, 1w and 1m. Anything else is a week.
func ParseTimeRange(s string) TimeRange {
	switch TimeRange(s) {
	case RangeDay, RangeMonth:
		return TimeRange(s)
	}
	return RangeWeek
}

const trendDateLayout = "1/2/2006"

type ItemRow struct {
	ID             uint             `json:"id"`
	Name           string           `json:"name"`
	Category       string           `json:"category"`
	OnHand         int              `json:"on_hand"`
	InTransit      int              `json:"in_transit"`
	Current        int              `json:"current"`
	Investment     float64          `json:"investment"`
	InvestmentText string           `json:"investment_text"`
	Demand         model.Demand     `json:"demand"`
	DemandLabel    string           `json:"demand_label"`
	Status         model.ItemStatus `json:"status"`
	StatusLabel    string           `json:"status_label"`
	Selected       bool             `json:"selected"`
}

// ItemList is the inventory table with the session's checked rows.
type ItemList struct {
	Count         int       `json:"count"`
	Rows          []ItemRow `json:"data"`
	Selected      []uint    `json:"selected"`
	SelectedCount int       `json:"selected_count"`
	AllSelected   bool      `json:"all_selected"`
}

type OverviewCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type RecommendationLevel string

const (
	RecommendCritical   RecommendationLevel = "critical"
	RecommendOrderMore  RecommendationLevel = "order_more"
	RecommendExcess     RecommendationLevel = "excess"
	RecommendHealthy    RecommendationLevel = "healthy"
	RecommendRunningLow RecommendationLevel = "running_low"
)

type Recommendation struct {
	Level            RecommendationLevel `json:"level"`
	Text             string              `json:"text"`
	DaysOfInventory  float64             `json:"days_of_inventory"`
	DaysAreUnbounded bool                `json:"days_unbounded"`
}

type ItemDetail struct {
	Item           ItemRow         `json:"item"`
	Overview       []OverviewCard  `json:"overview"`
	Range          TimeRange       `json:"range"`
	Trend          chart.TrendView `json:"trend"`
	Recommendation Recommendation  `json:"recommendation"`
}

type InventoryService interface {
	List(ctx context.Context, sessionID string) (*ItemList, error)
	ToggleItem(ctx context.Context, sessionID string, id uint) (*ItemList, error)
	SelectAll(ctx context.Context, sessionID string) (*ItemList, error)
	Forget(sessionID string)
	Detail(ctx context.Context, id uint, rng TimeRange) (*ItemDetail, error)
	RenderTrend(ctx context.Context, id uint, rng TimeRange, hover string, w io.Writer) error
}

type inventoryService struct {
	repo repository.ItemRepository
	now  func() time.Time

	mu       sync.Mutex
	selected map[string]map[uint]struct{}
}

func NewInventoryService(repo repository.ItemRepository) InventoryService {
	return newInventoryService(repo, time.Now)
}

func newInventoryService(repo repository.ItemRepository, now func() time.Time) *inventoryService {
	return &inventoryService{repo: repo, now: now, selected: make(map[string]map[uint]struct{})}
}

func (s *inventoryService) List(ctx context.Context, sessionID string) (*ItemList, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(items, s.selected[sessionID]), nil
}

// ToggleItem checks or unchecks one row.
func (s *inventoryService) ToggleItem(ctx context.Context, sessionID string, id uint) (*ItemList, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.selected[sessionID]
	if set == nil {
		set = make(map[uint]struct{})
		s.selected[sessionID] = set
	}
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
	return s.list(items, set), nil
}

// SelectAll checks every row, or clears the selection when every row is
// already checked.
func (s *inventoryService) SelectAll(ctx context.Context, sessionID string) (*ItemList, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list(items, s.selected[sessionID]).SelectedCount == len(items) {
		delete(s.selected, sessionID)
		return s.list(items, nil), nil
	}
	set := make(map[uint]struct{}, len(items))
	for i := range items {
		set[items[i].ID] = struct{}{}
	}
	s.selected[sessionID] = set
	return s.list(items, set), nil
}

func (s *inventoryService) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, sessionID)
}

// list builds the table. Selected IDs no longer in items are not counted.
func (s *inventoryService) list(items []model.InventoryItem, set map[uint]struct{}) *ItemList {
	out := &ItemList{Count: len(items), Rows: make([]ItemRow, len(items)), Selected: []uint{}}
	for i := range items {
		row := newItemRow(&items[i])
		if _, ok := set[row.ID]; ok {
			row.Selected = true
			out.Selected = append(out.Selected, row.ID)
		}
		out.Rows[i] = row
	}
	out.SelectedCount = len(out.Selected)
	out.AllSelected = out.Count > 0 && out.SelectedCount == out.Count
	return out
}

func (s *inventoryService) Detail(ctx context.Context, id uint, rng TimeRange) (*ItemDetail, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row := newItemRow(item)
	rng = ParseTimeRange(string(rng))

	return &ItemDetail{
		Item: row,
		Overview: []OverviewCard{
			{Label: "In Stock", Value: strconv.Itoa(row.OnHand)},
			{Label: "In Transit", Value: strconv.Itoa(row.InTransit)},
			{Label: "Total Available", Value: strconv.Itoa(row.Current)},
			{Label: "Total Investment", Value: row.InvestmentText},
			{Label: "Status", Value: row.StatusLabel},
		},
		Range:          rng,
		Trend:          s.trend(item, rng).Model(),
		Recommendation: Recommend(item),
	}, nil
}

// RenderTrend writes the item trend chart. hover is an optional
// "<sales|demand>:<index>" point to show the tooltip for.
func (s *inventoryService) RenderTrend(ctx context.Context, id uint, rng TimeRange, hover string, w io.Writer) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tc := s.trend(item, ParseTimeRange(string(rng)))
	if hover != "" {
		series, index, err := parseTrendHover(hover)
		if err != nil {
			return err
		}
		if err := tc.Enter(series, index); err != nil {
			return err
		}
	}
	return errors.Wrap(tc.RenderSVG(w), "render trend chart")
}

func parseTrendHover(s string) (chart.TrendSeries, int, error) {
	name, idx, ok := strings.Cut(s, ":")
	index, err := strconv.Atoi(idx)
	if !ok || err != nil || index < 0 {
		return "", 0, errors.Wrapf(chart.ErrUnknownTarget, "trend hover %q", s)
	}
	switch series := chart.TrendSeries(name); series {
	case chart.TrendSales, chart.TrendDemand:
		return series, index, nil
	}
	return "", 0, errors.Wrapf(chart.ErrUnknownTarget, "trend hover %q", s)
}

// trend slices the item history for rng. Sales end today, demand starts
// tomorrow.
func (s *inventoryService) trend(item *model.InventoryItem, rng TimeRange) *chart.TrendChart {
	sales, demand := item.DailySales, item.EstimatedDemand
	switch rng {
	case RangeDay:
		sales, demand = tail(sales, 1), head(demand, 1)
	case RangeWeek:
		sales, demand = tail(sales, 7), head(demand, 7)
	}

	today := s.now()
	salesDates := make([]string, len(sales))
	for i := range sales {
		salesDates[i] = today.AddDate(0, 0, i-len(sales)+1).Format(trendDateLayout)
	}
	demandDates := make([]string, len(demand))
	for i := range demand {
		demandDates[i] = today.AddDate(0, 0, i+1).Format(trendDateLayout)
	}
	return chart.NewTrendChart(sales, demand, salesDates, demandDates)
}

func tail(v []float64, n int) []float64 {
	if len(v) <= n {
		return v
	}
	return v[len(v)-n:]
}

func head(v []float64, n int) []float64 {
	if len(v) <= n {
		return v
	}
	return v[:n]
}

func newItemRow(item *model.InventoryItem) ItemRow {
	return ItemRow{
		ID:             item.ID,
		Name:           item.Name,
		Category:       item.Category,
		OnHand:         item.OnHand,
		InTransit:      item.InTransit,
		Current:        item.Available(),
		Investment:     item.Investment(),
		InvestmentText: format.Currency(item.Investment()),
		Demand:         item.Demand,
		DemandLabel:    demandLabel(item.Demand),
		Status:         item.Status,
		StatusLabel:    item.Status.Label(),
	}
}

func demandLabel(d model.Demand) string {
	switch d {
	case model.DemandLow:
		return "Low"
	case model.DemandMedium:
		return "Medium"
	case model.DemandHigh:
		return "High"
	}
	return "Unknown"
}

// Recommend derives the restocking advice for an item. An item with no
// recorded sales has unlimited days of inventory.
func Recommend(item *model.InventoryItem) Recommendation {
	invested := format.Currency(item.Investment())

	var sum float64
	for _, v := range item.DailySales {
		sum += v
	}
	days := math.Inf(1)
	if len(item.DailySales) > 0 && sum > 0 {
		days = float64(item.Available()) / (sum / float64(len(item.DailySales)))
	}

	rec := Recommendation{DaysOfInventory: days, DaysAreUnbounded: math.IsInf(days, 1)}
	if rec.DaysAreUnbounded {
		rec.DaysOfInventory = 0
	}

	switch {
	case item.Status == model.StatusOutOfStock:
		rec.Level = RecommendCritical
		rec.Text = fmt.Sprintf("Critical: This item is out of stock with active demand. You have %s in transit. I recommend expediting new orders immediately.", invested)
	case item.Status == model.StatusLowStock && item.Demand == model.DemandHigh:
		rec.Level = RecommendOrderMore
		rec.Text = fmt.Sprintf("I recommend ordering more of this item. High demand with low stock could lead to stockouts. Current investment: %s.", invested)
	case days > 30 && item.Demand == model.DemandLow:
		rec.Level = RecommendExcess
		rec.Text = fmt.Sprintf("This item has excess inventory (%s invested). Consider reducing future orders until stock levels normalize.", invested)
	case days >= 14 && days <= 30:
		rec.Level = RecommendHealthy
		rec.Text = fmt.Sprintf("This item looks healthy. Current inventory investment of %s is well-balanced with demand.", invested)
	case days < 7:
		rec.Level = RecommendRunningLow
		rec.Text = fmt.Sprintf("Stock is running low. Consider reordering soon to avoid potential stockouts. Current investment: %s.", invested)
	default:
		rec.Level = RecommendHealthy
		rec.Text = fmt.Sprintf("This item looks healthy. Inventory investment of %s is appropriate for current demand patterns.", invested)
	}
	return rec
}
