package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

var categoryColumns = map[string]string{
	"id":   "id",
	"name": "name",
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) PageCategories(ctx context.Context, req util.PageRequest) (util.Page[models.Category], error) {
	return paginate[models.Category](r.DB.WithContext(ctx).Model(&models.Category{}), req, categoryColumns, "name", nil)
}

func (r *GormRepo) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var cat models.Category
	if err := r.DB.WithContext(ctx).Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("products.id ASC")
	}).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) (*models.Category, error) {
	if err := r.DB.WithContext(ctx).Omit("Products").Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

func (r *GormRepo) UpdateCategory(ctx context.Context, id uint, name string) (*models.Category, error) {
	var cat models.Category
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&cat, id).Error; err != nil {
			return err
		}
		cat.Name = name
		return tx.Model(&cat).Update("name", name).Error
	})
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cat models.Category
		if err := tx.First(&cat, id).Error; err != nil {
			return err
		}
		assoc := tx.Model(&cat).Association("Products")
		n := assoc.Count()
		if assoc.Error != nil {
			return assoc.Error
		}
		if n > 0 {
			return ErrInUse
		}
		return translate(tx.Delete(&cat).Error)
	})
}

// LinkProduct adds the product to the category on both sides and persists the join row.
func (r *GormRepo) LinkProduct(ctx context.Context, categoryID, productID uint) (*models.Category, *models.Product, error) {
	return r.changeMembership(ctx, categoryID, productID, true)
}

func (r *GormRepo) UnlinkProduct(ctx context.Context, categoryID, productID uint) (*models.Category, *models.Product, error) {
	return r.changeMembership(ctx, categoryID, productID, false)
}

func (r *GormRepo) changeMembership(ctx context.Context, categoryID, productID uint, link bool) (*models.Category, *models.Product, error) {
	var cat models.Category
	var prod models.Product

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Products").First(&cat, categoryID).Error; err != nil {
			return err
		}
		if err := tx.Preload("Categories").First(&prod, productID).Error; err != nil {
			return err
		}

		owner := tx.Model(&models.Category{ID: cat.ID}).Omit("Products.*").Association("Products")
		if link {
			models.LinkCategoryProduct(&cat, &prod)
			return owner.Append(&models.Product{ID: prod.ID})
		}
		models.UnlinkCategoryProduct(&cat, &prod)
		return owner.Delete(&models.Product{ID: prod.ID})
	})
	if err != nil {
		return nil, nil, err
	}
	return &cat, &prod, nil
}
