package repository

import (
	"context"
	"sync"

	"go-inventory-dashboard/internal/model"

	"github.com/pkg/errors"
)

// ItemLoader is satisfied by *datasource.Loader.
type ItemLoader interface {
	LoadItems(ctx context.Context) []model.InventoryItem
}

type fixtureItemRepo struct {
	loader ItemLoader

	mu     sync.Mutex
	items  []model.InventoryItem
	loaded bool
}

// NewFixtureItemRepo serves items from inventory-items.json. The file is read
// on first use; a failed read yields an empty table and is retried next time.
func NewFixtureItemRepo(loader ItemLoader) ItemRepository {
	return &fixtureItemRepo{loader: loader}
}

func (r *fixtureItemRepo) load(ctx context.Context) []model.InventoryItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		r.items = r.loader.LoadItems(ctx)
		r.loaded = len(r.items) > 0
	}
	return r.items
}

func (r *fixtureItemRepo) FindAll(ctx context.Context) ([]model.InventoryItem, error) {
	items := r.load(ctx)
	out := make([]model.InventoryItem, len(items))
	copy(out, items)
	return out, nil
}

func (r *fixtureItemRepo) FindByID(ctx context.Context, id uint) (*model.InventoryItem, error) {
	for _, item := range r.load(ctx) {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, errors.Wrapf(ErrItemNotFound, "id %d", id)
}
