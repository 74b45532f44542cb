package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

var productColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"price": "price",
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Preload("Categories").First(&prod, id).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// ProductsByIDs returns the products found, keyed by id.
func (r *GormRepo) ProductsByIDs(ctx context.Context, ids []uint) (map[uint]models.Product, error) {
	var items []models.Product
	if len(ids) > 0 {
		if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
			return nil, err
		}
	}
	out := make(map[uint]models.Product, len(items))
	for _, p := range items {
		out[p.ID] = p
	}
	return out, nil
}

// SearchProducts matches a name fragment among products belonging to any of categoryIDs.
// An empty category list matches every category.
func (r *GormRepo) SearchProducts(ctx context.Context, name string, categoryIDs []uint, req util.PageRequest) (util.Page[models.Product], error) {
	db := r.DB.WithContext(ctx)
	q := db.Model(&models.Product{})
	if name = strings.TrimSpace(name); name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
	}
	if len(categoryIDs) > 0 {
		members := db.Table("product_categories").Select("product_id").Where("category_id IN ?", categoryIDs)
		q = q.Where("id IN (?)", members)
	}
	return paginate[models.Product](q, req, productColumns, "name", nil)
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateProduct stores prod and its membership in every category of categoryIDs.
func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product, categoryIDs []uint) (*models.Product, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cats []models.Category
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Find(&cats).Error; err != nil {
				return err
			}
			if len(cats) != len(uniq(categoryIDs)) {
				return gorm.ErrRecordNotFound
			}
		}

		if err := tx.Omit("Categories").Create(prod).Error; err != nil {
			return err
		}
		for i := range cats {
			models.LinkCategoryProduct(&cats[i], prod)
			if err := tx.Model(&models.Product{ID: prod.ID}).Omit("Categories.*").
				Association("Categories").Append(&models.Category{ID: cats[i].ID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prod, nil
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
