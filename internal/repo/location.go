package repo

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) ListStates(ctx context.Context) ([]models.State, error) {
	var items []models.State
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetState(ctx context.Context, id uint) (*models.State, error) {
	var st models.State
	if err := r.DB.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *GormRepo) CitiesByState(ctx context.Context, stateID uint) ([]models.City, error) {
	var items []models.City
	if err := r.DB.WithContext(ctx).Where("state_id = ?", stateID).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
