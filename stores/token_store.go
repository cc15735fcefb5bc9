package stores

import (
	"context"
	"time"

	"github.com/anjiri1684/course_market/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenStore is the blacklist of signed-out session tokens.
type TokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

func (s *TokenStore) Revoke(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.RevokedToken{TokenHash: tokenHash, ExpiresAt: expiresAt}).Error
	return errors.Wrap(err, "revoke token")
}

func (s *TokenStore) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RevokedToken{}).
		Where("token_hash = ?", tokenHash).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check revoked token")
	}
	return count > 0, nil
}

// CleanupExpired forgets revocations for tokens that can no longer verify.
func (s *TokenStore) CleanupExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.RevokedToken{})
	return res.RowsAffected, errors.Wrap(res.Error, "cleanup revoked tokens")
}
