package model

import "time"

// BaseModel carries the numeric key used by the item fixtures plus the
// timestamps GORM maintains when items are stored in Postgres.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
