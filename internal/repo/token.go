package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	jwthelp "github.com/Skotchmaster/storefront/pkg/jwt"
	"github.com/Skotchmaster/storefront/internal/models"
)

func (r *GormRepo) SaveRefreshToken(ctx context.Context, rt *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Create(rt).Error
}

func refreshUsable(db *gorm.DB, jti string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := db.Where("jti = ?", jti).First(&rt).Error; err != nil {
		return nil, err
	}
	if rt.Revoked || rt.ExpiresAt < time.Now().Unix() {
		return nil, ErrTokenRevoked
	}
	return &rt, nil
}

// RotateRefreshToken revokes oldJTI and stores next in the same transaction.
// Only the caller whose update flips revoked wins; a concurrent rotation of the
// same token gets ErrTokenRevoked.
func (r *GormRepo) RotateRefreshToken(ctx context.Context, oldJTI string, next *models.RefreshToken) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, err := refreshUsable(tx, oldJTI)
		if err != nil {
			return err
		}
		if old.ClientID != next.ClientID {
			return ErrTokenRevoked
		}
		res := tx.Model(&models.RefreshToken{}).
			Where("jti = ? AND revoked = ?", old.JTI, false).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTokenRevoked
		}
		return tx.Create(next).Error
	})
}

// RevokeRefreshToken marks the stored hash of token revoked. Unknown tokens are ignored.
func (r *GormRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", jwthelp.Sha256Hex(token)).
		Update("revoked", true).Error
}

func (r *GormRepo) RevokeClientTokens(ctx context.Context, clientID uint) error {
	return r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("client_id = ? AND revoked = ?", clientID, false).
		Update("revoked", true).Error
}
