package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

var clientColumns = map[string]string{
	"id":    "id",
	"name":  "name",
	"email": "email",
}

func withClientGraph(db *gorm.DB) *gorm.DB {
	return db.Preload("Phones").Preload("Addresses", func(db *gorm.DB) *gorm.DB {
		return db.Order("addresses.id ASC")
	}).Preload("Addresses.City.State")
}

func (r *GormRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var cli models.Client
	if err := withClientGraph(r.DB.WithContext(ctx)).First(&cli, id).Error; err != nil {
		return nil, err
	}
	return &cli, nil
}

func (r *GormRepo) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	var cli models.Client
	if err := withClientGraph(r.DB.WithContext(ctx)).Where("email = ?", email).First(&cli).Error; err != nil {
		return nil, err
	}
	return &cli, nil
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Client{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) ListClients(ctx context.Context) ([]models.Client, error) {
	var items []models.Client
	if err := r.DB.WithContext(ctx).Preload("Phones").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) PageClients(ctx context.Context, req util.PageRequest) (util.Page[models.Client], error) {
	return paginate[models.Client](r.DB.WithContext(ctx).Model(&models.Client{}), req, clientColumns, "name", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Phones")
	})
}

// CreateClient inserts the client with its phones and addresses.
func (r *GormRepo) CreateClient(ctx context.Context, cli *models.Client) (*models.Client, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Phones", "Addresses").Create(cli).Error; err != nil {
			return err
		}
		return insertContacts(tx, cli)
	})
	if err != nil {
		return nil, err
	}
	return cli, nil
}

// UpdateClient rewrites the client's profile fields and replaces its phones and
// addresses with the given sets. Prior addresses are removed from storage.
func (r *GormRepo) UpdateClient(ctx context.Context, cli *models.Client) (*models.Client, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Client{ID: cli.ID}).Select("name", "tax_id", "type").Updates(map[string]any{
			"name":   cli.Name,
			"tax_id": cli.TaxID,
			"type":   cli.Type,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("client_id = ?", cli.ID).Delete(&models.Phone{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", cli.ID).Delete(&models.Address{}).Error; err != nil {
			return translate(err)
		}
		return insertContacts(tx, cli)
	})
	if err != nil {
		return nil, err
	}
	return r.GetClient(ctx, cli.ID)
}

func insertContacts(tx *gorm.DB, cli *models.Client) error {
	for i := range cli.Phones {
		cli.Phones[i].ID = 0
		cli.Phones[i].ClientID = cli.ID
	}
	for i := range cli.Addresses {
		cli.Addresses[i].ID = 0
		cli.Addresses[i].ClientID = cli.ID
	}
	if len(cli.Phones) > 0 {
		if err := tx.Create(&cli.Phones).Error; err != nil {
			return err
		}
	}
	if len(cli.Addresses) > 0 {
		if err := tx.Omit("City").Create(&cli.Addresses).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}

// DeleteClient removes a client without orders together with its contacts and tokens.
func (r *GormRepo) DeleteClient(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders int64
		if err := tx.Model(&models.Order{}).Where("client_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return ErrInUse
		}
		for _, child := range []any{&models.Phone{}, &models.Address{}, &models.RefreshToken{}} {
			if err := tx.Where("client_id = ?", id).Delete(child).Error; err != nil {
				return translate(err)
			}
		}
		res := tx.Delete(&models.Client{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	res := r.DB.WithContext(ctx).Model(&models.Client{ID: id}).Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
