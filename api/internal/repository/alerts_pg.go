package repository

import (
	"time"

	"walletwatch/api/internal/domain"

	"gorm.io/gorm"
)

type AlertsRepo struct {
}

func InitAlertsRepo() *AlertsRepo {
	return &AlertsRepo{}
}

func (r *AlertsRepo) Create(tx *gorm.DB, alert *domain.Alerts) error {
	return tx.Create(alert).Error
}

func (r *AlertsRepo) FindByID(tx *gorm.DB, alertID uint) (*domain.Alerts, error) {
	var alert domain.Alerts
	return &alert, tx.First(&alert, alertID).Error
}

func (r *AlertsRepo) ListByWallet(tx *gorm.DB, walletID uint) ([]domain.Alerts, error) {
	var alerts []domain.Alerts
	return alerts, tx.Where(&domain.Alerts{WalletID: walletID}).Order("id").Find(&alerts).Error
}

func (r *AlertsRepo) ListActiveByWallet(tx *gorm.DB, walletID uint) ([]domain.Alerts, error) {
	var alerts []domain.Alerts
	// map condition, a struct condition would drop is_active = false
	return alerts, tx.Where(map[string]any{"wallet_id": walletID, "is_active": true}).Order("id").Find(&alerts).Error
}

func (r *AlertsRepo) SetTriggered(tx *gorm.DB, alertID uint, at time.Time) error {
	return tx.Model(&domain.Alerts{}).Where("id = ?", alertID).Update("last_triggered", at).Error
}

func (r *AlertsRepo) SetActive(tx *gorm.DB, alertID uint, active bool) error {
	return tx.Model(&domain.Alerts{}).Where("id = ?", alertID).Update("is_active", active).Error
}

func (r *AlertsRepo) Delete(tx *gorm.DB, alertID uint) error {
	res := tx.Delete(&domain.Alerts{}, alertID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
