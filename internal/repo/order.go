package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

var orderColumns = map[string]string{
	"id":      "id",
	"instant": "instant",
}

func withOrderGraph(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").
		Preload("DeliveryAddress.City.State").
		Preload("Payment").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.product_id ASC") }).
		Preload("Items.Product")
}

// CreateOrder stores the order, its payment and its items atomically.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return translate(err)
		}
		if order.Payment != nil {
			order.Payment.OrderID = order.ID
			if err := tx.Create(order.Payment).Error; err != nil {
				return err
			}
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if len(order.Items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&order.Items).Error; err != nil {
				return translate(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := withOrderGraph(r.DB.WithContext(ctx)).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// PageOrders lists orders of one client, or of every client when clientID is nil.
func (r *GormRepo) PageOrders(ctx context.Context, clientID *uint, req util.PageRequest) (util.Page[models.Order], error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if clientID != nil {
		q = q.Where("client_id = ?", *clientID)
	}
	return paginate[models.Order](q, req, orderColumns, "instant", withOrderGraph)
}
