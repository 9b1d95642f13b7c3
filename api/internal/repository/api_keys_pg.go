package repository

import (
	"time"

	"walletwatch/api/internal/domain"

	"gorm.io/gorm"
)

type ApiKeysRepo struct {
}

func InitApiKeysRepo() *ApiKeysRepo {
	return &ApiKeysRepo{}
}

func (r *ApiKeysRepo) Create(tx *gorm.DB, key *domain.ApiKeys) error {
	return tx.Create(key).Error
}

func (r *ApiKeysRepo) FindActive(tx *gorm.DB, key string) (*domain.ApiKeys, error) {
	var apiKey domain.ApiKeys
	return &apiKey, tx.Where(map[string]any{"key": key, "is_active": true}).First(&apiKey).Error
}

func (r *ApiKeysRepo) TouchUsed(tx *gorm.DB, keyID uint, at time.Time) error {
	return tx.Model(&domain.ApiKeys{}).Where("id = ?", keyID).Update("last_used_at", at).Error
}
