package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/postgres"
	"walletwatch/api/internal/repository"

	"gorm.io/gorm"
)

const apiKeyBytes = 48

type ApiKeysService struct {
	repo repository.ApiKeys
	db   *gorm.DB
}

func NewApiKeysService(db *gorm.DB, repo repository.ApiKeys) *ApiKeysService {
	return &ApiKeysService{db: db, repo: repo}
}

// GenerateKey returns 48 random bytes as unpadded url-safe base64 (64 chars).
func GenerateKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *ApiKeysService) Generate(ctx context.Context, name string) (*domain.ApiKeys, error) {
	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "Unnamed Key"
	}

	apiKey := &domain.ApiKeys{Key: key, Name: name, IsActive: true}
	if err := s.repo.Create(s.db.WithContext(ctx), apiKey); err != nil {
		return nil, domain.NewStoreError("create api key", err)
	}
	return apiKey, nil
}

func (s *ApiKeysService) Authenticate(ctx context.Context, key string) (*domain.ApiKeys, error) {
	db := s.db.WithContext(ctx)
	apiKey, err := s.repo.FindActive(db, key)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrApiKeyInvalid
		}
		return nil, domain.NewStoreError("find api key", err)
	}

	now := time.Now().UTC()
	if err := s.repo.TouchUsed(db, apiKey.ID, now); err != nil {
		return nil, domain.NewStoreError("touch api key", err)
	}
	apiKey.LastUsedAt = &now
	return apiKey, nil
}
