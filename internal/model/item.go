package model

type Demand string

const (
	DemandLow    Demand = "low"
	DemandMedium Demand = "medium"
	DemandHigh   Demand = "high"
)

type ItemStatus string

const (
	StatusInStock    ItemStatus = "in_stock"
	StatusLowStock   ItemStatus = "low_stock"
	StatusOutOfStock ItemStatus = "out_of_stock"
	StatusSuggested  ItemStatus = "suggested"
)

// Label returns the badge text for the status.
func (s ItemStatus) Label() string {
	switch s {
	case StatusInStock:
		return "In Stock"
	case StatusLowStock:
		return "Low Stock"
	case StatusOutOfStock:
		return "Out of Stock"
	case StatusSuggested:
		return "Suggested"
	}
	return "Unknown"
}

// InventoryItem is one row of the inventory table. DailySales holds the last
// 30 days of actual sales, EstimatedDemand the forecast for the days ahead.
type InventoryItem struct {
	BaseModel
	Name            string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category        string     `gorm:"type:varchar(100);index" json:"category" validate:"required"`
	OnHand          int        `gorm:"default:0" json:"onHand" validate:"min=0"`
	InTransit       int        `gorm:"default:0" json:"inTransit" validate:"min=0"`
	UnitCost        float64    `gorm:"default:0" json:"unitCost" validate:"min=0"`
	Demand          Demand     `gorm:"type:varchar(10)" json:"demand" validate:"oneof=low medium high"`
	Status          ItemStatus `gorm:"type:varchar(20)" json:"status" validate:"oneof=in_stock low_stock out_of_stock suggested"`
	DailySales      []float64  `gorm:"serializer:json" json:"dailySales"`
	EstimatedDemand []float64  `gorm:"serializer:json" json:"estimatedDemand"`
}

// TableName specifies the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Available is stock on hand plus stock in transit.
func (i *InventoryItem) Available() int {
	return i.OnHand + i.InTransit
}

// Investment is the capital tied up in available stock.
func (i *InventoryItem) Investment() float64 {
	return float64(i.Available()) * i.UnitCost
}
