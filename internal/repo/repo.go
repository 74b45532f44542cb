package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

var (
	ErrInvalidSort  = errors.New("invalid sort field")
	ErrInUse        = errors.New("row is still referenced")
	ErrTokenRevoked = errors.New("token expired or revoked")
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(models.All()...)
}

// Ping is used by the readiness probe.
func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func orderClause(req util.PageRequest, columns map[string]string, def string) (string, error) {
	field := req.OrderBy
	if field == "" {
		field = def
	}
	col, ok := columns[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, field)
	}
	desc, err := req.Desc()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSort, err)
	}
	if desc {
		return col + " DESC, id DESC", nil
	}
	return col + " ASC, id ASC", nil
}

// paginate counts and fetches one page of q ordered by a whitelisted column.
// graph, when set, adds preloads to the fetch only.
func paginate[T any](q *gorm.DB, req util.PageRequest, columns map[string]string, def string, graph func(*gorm.DB) *gorm.DB) (util.Page[T], error) {
	order, err := orderClause(req, columns, def)
	if err != nil {
		return util.Page[T]{}, err
	}
	offset, limit := util.Calculate(req.Page, req.Size)
	page := util.Page[T]{Page: offset / limit, Size: limit}

	q = q.Session(&gorm.Session{})
	if err := q.Count(&page.Total).Error; err != nil {
		return util.Page[T]{}, err
	}
	fetch := q
	if graph != nil {
		fetch = graph(q)
	}
	items := make([]T, 0, limit)
	if err := fetch.Order(order).Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return util.Page[T]{}, err
	}
	page.Items = items
	return page, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrInUse, err)
	}
	return err
}
