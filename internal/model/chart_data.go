package model

// CategoryRecord is one bar of the category chart.
type CategoryRecord struct {
	Category   string `json:"category" validate:"required"`
	InStock    int    `json:"inStock" validate:"min=0"`
	InTransit  int    `json:"inTransit" validate:"min=0"`
	OutOfStock int    `json:"outOfStock" validate:"min=0"`
	Suggested  int    `json:"suggested" validate:"min=0"`
}

// Value returns the count stored for key.
func (r CategoryRecord) Value(key SeriesKey) int {
	switch key {
	case InStock:
		return r.InStock
	case InTransit:
		return r.InTransit
	case OutOfStock:
		return r.OutOfStock
	case Suggested:
		return r.Suggested
	}
	return 0
}

// Total is the sum of the four counts, i.e. the bar's height budget.
func (r CategoryRecord) Total() int {
	return r.InStock + r.InTransit + r.OutOfStock + r.Suggested
}

// TimePoint is one sample of the trend chart. Slices of TimePoint are kept
// in chronological order; display order is slice order.
type TimePoint struct {
	Date       string  `json:"date" validate:"required"`
	InStock    float64 `json:"inStock"`
	InTransit  float64 `json:"inTransit"`
	OutOfStock float64 `json:"outOfStock"`
	Suggested  float64 `json:"suggested"`
}

// Value returns the sample stored for key.
func (p TimePoint) Value(key SeriesKey) float64 {
	switch key {
	case InStock:
		return p.InStock
	case InTransit:
		return p.InTransit
	case OutOfStock:
		return p.OutOfStock
	case Suggested:
		return p.Suggested
	}
	return 0
}

// Slice is one wedge of the distribution chart, labelled with a display name.
type Slice struct {
	Name  string  `json:"name" validate:"required"`
	Value float64 `json:"value" validate:"min=0"`
	Color string  `json:"color" validate:"omitempty,hexcolor"`
}

// Stats backs the dashboard stat cards.
type Stats struct {
	TotalItems    int64 `json:"totalItems" validate:"min=0"`
	LowStockItems int64 `json:"lowStockItems" validate:"min=0"`
	InTransit     int64 `json:"inTransit" validate:"min=0"`
	TotalValue    int64 `json:"totalValue" validate:"min=0"`
	DailySales    int64 `json:"dailySales" validate:"min=0"`
	MonthlySales  int64 `json:"monthlySales" validate:"min=0"`
}
