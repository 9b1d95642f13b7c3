package repository

import (
	"time"

	"walletwatch/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type WalletsRepo struct {
}

func InitWalletsRepo() *WalletsRepo {
	return &WalletsRepo{}
}

func (r *WalletsRepo) Create(tx *gorm.DB, wallet *domain.Wallets) error {
	return tx.Create(wallet).Error
}

func (r *WalletsRepo) FindByID(tx *gorm.DB, walletID uint) (*domain.Wallets, error) {
	var wallet domain.Wallets
	return &wallet, tx.First(&wallet, walletID).Error
}

func (r *WalletsRepo) FindByAddress(tx *gorm.DB, address string) (*domain.Wallets, error) {
	var wallet domain.Wallets
	return &wallet, tx.Where(&domain.Wallets{Address: address}).First(&wallet).Error
}

func (r *WalletsRepo) List(tx *gorm.DB) ([]domain.Wallets, error) {
	var wallets []domain.Wallets
	return wallets, tx.Order("id").Find(&wallets).Error
}

func (r *WalletsRepo) UpdateBalance(tx *gorm.DB, walletID uint, balance decimal.Decimal) error {
	return tx.Model(&domain.Wallets{}).Where("id = ?", walletID).Update("balance", balance).Error
}

func (r *WalletsRepo) UpdateLabel(tx *gorm.DB, walletID uint, label string) error {
	return tx.Model(&domain.Wallets{}).Where("id = ?", walletID).Update("label", label).Error
}

func (r *WalletsRepo) TouchMonitored(tx *gorm.DB, walletID uint, at time.Time) error {
	return tx.Model(&domain.Wallets{}).Where("id = ?", walletID).Update("last_monitored", at).Error
}

// Delete removes the wallet with its transactions and alerts.
func (r *WalletsRepo) Delete(tx *gorm.DB, walletID uint) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wallet_id = ?", walletID).Delete(&domain.Transactions{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wallet_id = ?", walletID).Delete(&domain.Alerts{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Wallets{}, walletID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
