package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/util"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type ProductService struct {
	Repo   *repo.GormRepo
	Index  search.Index
	Events events.Publisher
}

func (s *ProductService) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err, "Product", id)
	}
	return prod, nil
}

// Search pages products whose name contains name and that belong to any of categoryIDs.
func (s *ProductService) Search(ctx context.Context, name string, categoryIDs []uint, req util.PageRequest) (util.Page[models.Product], error) {
	page, err := s.Repo.SearchProducts(ctx, name, categoryIDs, req.WithDefaults("name", "ASC"))
	return page, mapRepoErr(err, "Product", "-")
}

func (s *ProductService) Insert(ctx context.Context, prod *models.Product, categoryIDs []uint) (*models.Product, error) {
	if prod.Price.IsNegative() {
		return nil, fieldError("price", "must be greater than or equal to 0")
	}
	prod.ID = 0
	created, err := s.Repo.CreateProduct(ctx, prod, categoryIDs)
	if err != nil {
		return nil, mapRepoErr(err, "Category", categoryIDs)
	}

	s.index(ctx, created)
	publish(ctx, s.Events, events.TopicProducts, created.ID, events.ProductChanged{
		Type:        "product_created",
		ProductID:   created.ID,
		Name:        created.Name,
		CategoryIDs: categoryIDs,
	})
	return created, nil
}

// SearchIndex queries the search index, falling back to a name match when no index is configured.
func (s *ProductService) SearchIndex(ctx context.Context, q string, page, size int) (util.Page[models.Product], error) {
	if q == "" {
		return util.Page[models.Product]{}, fieldError("q", "must not be empty")
	}
	offset, limit := util.Calculate(page, size)

	total, docs, err := s.Index.Search(ctx, q, offset, limit)
	if errors.Is(err, search.ErrDisabled) {
		return s.Search(ctx, q, nil, util.PageRequest{Page: page, Size: size, OrderBy: "name", Direction: "ASC"})
	}
	if err != nil {
		return util.Page[models.Product]{}, err
	}

	out := util.Page[models.Product]{Total: total, Page: offset / limit, Size: limit}
	for _, d := range docs {
		out.Items = append(out.Items, models.Product{ID: d.ID, Name: d.Name, Price: mustDecimal(d.Price)})
	}
	return out, nil
}

// Reindex pushes every product into the search index.
func (s *ProductService) Reindex(ctx context.Context) (int, error) {
	items, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	for i := range items {
		full, err := s.Repo.GetProduct(ctx, items[i].ID)
		if err != nil {
			return i, err
		}
		if err := s.Index.IndexProduct(ctx, document(full)); err != nil {
			return i, err
		}
	}
	return len(items), nil
}

func (s *ProductService) index(ctx context.Context, prod *models.Product) {
	if err := s.Index.IndexProduct(ctx, document(prod)); err != nil {
		logging.FromContext(ctx).Error("index_product_error", "product_id", prod.ID, "error", err)
		recordFailure("search_index")
	}
}

func document(p *models.Product) search.Document {
	return search.Document{ID: p.ID, Name: p.Name, Price: p.Price.String(), CategoryIDs: categoryIDs(p)}
}
