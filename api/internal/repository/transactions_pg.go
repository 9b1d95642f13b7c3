package repository

import (
	"walletwatch/api/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionsRepo struct {
}

func InitTransactionsRepo() *TransactionsRepo {
	return &TransactionsRepo{}
}

// Create fails with a unique violation when the hash exists, for any wallet.
func (r *TransactionsRepo) Create(tx *gorm.DB, transaction *domain.Transactions) error {
	return tx.Create(transaction).Error
}

func (r *TransactionsRepo) CreateIfAbsent(tx *gorm.DB, transaction *domain.Transactions) (bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tx_hash"}},
		DoNothing: true,
	}).Create(transaction)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *TransactionsRepo) ExistsByHash(tx *gorm.DB, txHash string) (bool, error) {
	var count int64
	err := tx.Model(&domain.Transactions{}).Where(&domain.Transactions{TxHash: txHash}).Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *TransactionsRepo) ListByWallet(tx *gorm.DB, walletID uint, limit, offset int) ([]domain.Transactions, error) {
	var transactions []domain.Transactions
	q := tx.Where(&domain.Transactions{WalletID: walletID}).Order("timestamp desc, block_number desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return transactions, q.Find(&transactions).Error
}
