package datasource

import "go-inventory-dashboard/internal/model"

// Fallback datasets used whenever a section of inventory-data.json cannot be
// loaded. Each call returns a fresh copy.

func FallbackBarData() []model.CategoryRecord {
	return []model.CategoryRecord{
		{Category: "Electronics", InStock: 450, InTransit: 120, OutOfStock: 25, Suggested: 80},
		{Category: "Clothing", InStock: 320, InTransit: 85, OutOfStock: 12, Suggested: 45},
		{Category: "Home & Garden", InStock: 280, InTransit: 95, OutOfStock: 18, Suggested: 60},
		{Category: "Sports", InStock: 180, InTransit: 40, OutOfStock: 8, Suggested: 30},
	}
}

func FallbackLineData() []model.TimePoint {
	return []model.TimePoint{
		{Date: "Jan 1", InStock: 1200, InTransit: 300, OutOfStock: 50, Suggested: 200},
		{Date: "Jan 8", InStock: 1150, InTransit: 320, OutOfStock: 45, Suggested: 210},
		{Date: "Jan 15", InStock: 1180, InTransit: 280, OutOfStock: 60, Suggested: 190},
		{Date: "Jan 22", InStock: 1230, InTransit: 340, OutOfStock: 63, Suggested: 215},
	}
}

func FallbackPieData() []model.Slice {
	return []model.Slice{
		{Name: "In Stock", Value: 2230, Color: "#10b981"},
		{Name: "In Transit", Value: 570, Color: "#f59e0b"},
		{Name: "Out of Stock", Value: 113, Color: "#ef4444"},
		{Name: "Suggested", Value: 367, Color: "#3b82f6"},
	}
}

func FallbackStats() model.Stats {
	return model.Stats{
		TotalItems:    4247,
		LowStockItems: 31,
		InTransit:     287,
		TotalValue:    142850,
		DailySales:    847,
		MonthlySales:  25410,
	}
}
