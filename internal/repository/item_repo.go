package repository

import (
	"context"

	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrItemNotFound = errors.New("item not found")

type ItemRepository interface {
	FindAll(ctx context.Context) ([]model.InventoryItem, error)
	FindByID(ctx context.Context, id uint) (*model.InventoryItem, error)
}

// ItemStore is an ItemRepository that can also be written to.
type ItemStore interface {
	ItemRepository
	Upsert(ctx context.Context, items []model.InventoryItem) error
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemStore {
	return &itemRepo{db}
}

func (r *itemRepo) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	err := r.db.WithContext(ctx).Order("id").Find(&items).Error
	return items, errors.Wrap(err, "find items")
}

func (r *itemRepo) FindByID(ctx context.Context, id uint) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(ErrItemNotFound, "id %d", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find item %d", id)
	}
	return &item, nil
}

// Upsert inserts items, replacing every column of rows whose id exists.
func (r *itemRepo) Upsert(ctx context.Context, items []model.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&items).Error
	return errors.Wrap(err, "upsert items")
}
