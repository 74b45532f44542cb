package service

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
)

type LocationService struct {
	Repo *repo.GormRepo
}

func (s *LocationService) States(ctx context.Context) ([]models.State, error) {
	return s.Repo.ListStates(ctx)
}

func (s *LocationService) Cities(ctx context.Context, stateID uint) ([]models.City, error) {
	if _, err := s.Repo.GetState(ctx, stateID); err != nil {
		return nil, mapRepoErr(err, "State", stateID)
	}
	return s.Repo.CitiesByState(ctx, stateID)
}
