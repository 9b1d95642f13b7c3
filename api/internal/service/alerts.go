package service

import (
	"context"
	"fmt"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/postgres"
	"walletwatch/api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AlertsService struct {
	repo        repository.Alerts
	walletsRepo repository.Wallets
	db          *gorm.DB
}

func NewAlertsService(db *gorm.DB, repo repository.Alerts, walletsRepo repository.Wallets) *AlertsService {
	return &AlertsService{db: db, repo: repo, walletsRepo: walletsRepo}
}

// Create adds an active alert. Threshold kinds need a decimal threshold,
// balance_change drops it.
func (s *AlertsService) Create(ctx context.Context, address string, alertType domain.AlertType, threshold string) (*domain.Alerts, error) {
	if !alertType.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidAlert, alertType)
	}
	if alertType.NeedsThreshold() {
		if _, err := decimal.NewFromString(threshold); err != nil {
			return nil, fmt.Errorf("%w: threshold must be a number", domain.ErrInvalidAlert)
		}
	} else {
		threshold = ""
	}

	wallet, err := s.findWallet(ctx, address)
	if err != nil {
		return nil, err
	}

	alert := &domain.Alerts{WalletID: wallet.ID, AlertType: alertType, Threshold: threshold, IsActive: true}
	if err := s.repo.Create(s.db.WithContext(ctx), alert); err != nil {
		return nil, domain.NewStoreError("create alert", err)
	}
	return alert, nil
}

func (s *AlertsService) ListByWallet(ctx context.Context, address string) ([]domain.Alerts, error) {
	wallet, err := s.findWallet(ctx, address)
	if err != nil {
		return nil, err
	}

	alerts, err := s.repo.ListByWallet(s.db.WithContext(ctx), wallet.ID)
	if err != nil {
		return nil, domain.NewStoreError("list alerts", err)
	}
	return alerts, nil
}

func (s *AlertsService) SetActive(ctx context.Context, alertID uint, active bool) (*domain.Alerts, error) {
	db := s.db.WithContext(ctx)
	alert, err := s.repo.FindByID(db, alertID)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, domain.NewStoreError("find alert", err)
	}

	if err := s.repo.SetActive(db, alertID, active); err != nil {
		return nil, domain.NewStoreError("update alert", err)
	}
	alert.IsActive = active
	return alert, nil
}

func (s *AlertsService) Delete(ctx context.Context, alertID uint) error {
	if err := s.repo.Delete(s.db.WithContext(ctx), alertID); err != nil {
		if postgres.IsNotFound(err) {
			return domain.ErrAlertNotFound
		}
		return domain.NewStoreError("delete alert", err)
	}
	return nil
}

func (s *AlertsService) findWallet(ctx context.Context, address string) (*domain.Wallets, error) {
	address, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	wallet, err := s.walletsRepo.FindByAddress(s.db.WithContext(ctx), address)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, domain.NewStoreError("find wallet", err)
	}
	return wallet, nil
}
