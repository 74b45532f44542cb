package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type CategoryService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CategoryService) FindPage(ctx context.Context, req util.PageRequest) (util.Page[models.Category], error) {
	page, err := s.Repo.PageCategories(ctx, req.WithDefaults("name", "ASC"))
	return page, mapRepoErr(err, "Category", "-")
}

func (s *CategoryService) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Category", id)
	}
	return cat, nil
}

func (s *CategoryService) Insert(ctx context.Context, name string) (*models.Category, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, fieldError("name", "must not be empty")
	}
	return s.Repo.CreateCategory(ctx, &models.Category{Name: name})
}

func (s *CategoryService) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	if name = strings.TrimSpace(name); name == "" {
		return nil, fieldError("name", "must not be empty")
	}
	cat, err := s.Repo.UpdateCategory(ctx, id, name)
	if err != nil {
		return nil, mapRepoErr(err, "Category", id)
	}
	return cat, nil
}

// Delete fails with ErrIntegrity while the category still has products.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	return mapRepoErr(s.Repo.DeleteCategory(ctx, id), "Category", id)
}

func (s *CategoryService) LinkProduct(ctx context.Context, categoryID, productID uint) (*models.Category, error) {
	cat, prod, err := s.Repo.LinkProduct(ctx, categoryID, productID)
	if err != nil {
		return nil, mapRepoErr(err, "Category/Product", [2]uint{categoryID, productID})
	}
	s.publishMembership(ctx, "product_linked", prod)
	return cat, nil
}

func (s *CategoryService) UnlinkProduct(ctx context.Context, categoryID, productID uint) (*models.Category, error) {
	cat, prod, err := s.Repo.UnlinkProduct(ctx, categoryID, productID)
	if err != nil {
		return nil, mapRepoErr(err, "Category/Product", [2]uint{categoryID, productID})
	}
	s.publishMembership(ctx, "product_unlinked", prod)
	return cat, nil
}

func (s *CategoryService) publishMembership(ctx context.Context, typ string, prod *models.Product) {
	ev := events.ProductChanged{Type: typ, ProductID: prod.ID, Name: prod.Name, CategoryIDs: categoryIDs(prod)}
	publish(ctx, s.Events, events.TopicProducts, prod.ID, ev)
}

func categoryIDs(p *models.Product) []uint {
	ids := make([]uint, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// publish is best effort: failures are logged and counted, never returned.
func publish(ctx context.Context, pub events.Publisher, topic string, key uint, ev any) {
	if pub == nil {
		return
	}
	if err := pub.PublishEvent(ctx, topic, uintKey(key), ev); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "topic", topic, "error", err)
		recordFailure("event")
	}
}
