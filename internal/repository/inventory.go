package repository

import (
	"context"

	"github.com/wanderlands/backend/internal/entity"
	"github.com/wanderlands/backend/pkg/xcontext"
)

type InventoryRepository interface {
	// LoadProgress returns the persisted inventory of username. An unknown
	// username yields an empty slice, not an error.
	LoadProgress(ctx context.Context, username string) ([]entity.InventoryItem, error)

	// SaveProgress replaces the persisted inventory of username.
	SaveProgress(ctx context.Context, username string, items []entity.InventoryItem) error
}

type inventoryRepository struct{}

func NewInventoryRepository() *inventoryRepository {
	return &inventoryRepository{}
}

func (r *inventoryRepository) LoadProgress(
	ctx context.Context, username string,
) ([]entity.InventoryItem, error) {
	result := []entity.InventoryItem{}
	err := xcontext.DB(ctx).
		Find(&result, "username=?", username).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *inventoryRepository) SaveProgress(
	ctx context.Context, username string, items []entity.InventoryItem,
) error {
	tx := xcontext.DB(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	err := tx.Where("username=?", username).Delete(&entity.InventoryItem{}).Error
	if err != nil {
		tx.Rollback()
		return err
	}

	for i := range items {
		items[i].Username = username
	}

	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
