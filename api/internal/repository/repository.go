package repository

import (
	"time"

	"walletwatch/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Wallets interface {
	Create(tx *gorm.DB, wallet *domain.Wallets) error
	FindByID(tx *gorm.DB, walletID uint) (*domain.Wallets, error)
	FindByAddress(tx *gorm.DB, address string) (*domain.Wallets, error)
	List(tx *gorm.DB) ([]domain.Wallets, error)
	UpdateBalance(tx *gorm.DB, walletID uint, balance decimal.Decimal) error
	UpdateLabel(tx *gorm.DB, walletID uint, label string) error
	TouchMonitored(tx *gorm.DB, walletID uint, at time.Time) error
	Delete(tx *gorm.DB, walletID uint) error
}

type Transactions interface {
	Create(tx *gorm.DB, transaction *domain.Transactions) error
	// CreateIfAbsent reports false when the hash is already stored
	CreateIfAbsent(tx *gorm.DB, transaction *domain.Transactions) (bool, error)
	ExistsByHash(tx *gorm.DB, txHash string) (bool, error)
	ListByWallet(tx *gorm.DB, walletID uint, limit, offset int) ([]domain.Transactions, error)
}

type Alerts interface {
	Create(tx *gorm.DB, alert *domain.Alerts) error
	FindByID(tx *gorm.DB, alertID uint) (*domain.Alerts, error)
	ListByWallet(tx *gorm.DB, walletID uint) ([]domain.Alerts, error)
	ListActiveByWallet(tx *gorm.DB, walletID uint) ([]domain.Alerts, error)
	SetTriggered(tx *gorm.DB, alertID uint, at time.Time) error
	SetActive(tx *gorm.DB, alertID uint, active bool) error
	Delete(tx *gorm.DB, alertID uint) error
}

type ApiKeys interface {
	Create(tx *gorm.DB, key *domain.ApiKeys) error
	FindActive(tx *gorm.DB, key string) (*domain.ApiKeys, error)
	TouchUsed(tx *gorm.DB, keyID uint, at time.Time) error
}

type Repositories struct {
	Wallets      Wallets
	Transactions Transactions
	Alerts       Alerts
	ApiKeys      ApiKeys
}

func New() *Repositories {
	return &Repositories{
		Wallets:      InitWalletsRepo(),
		Transactions: InitTransactionsRepo(),
		Alerts:       InitAlertsRepo(),
		ApiKeys:      InitApiKeysRepo(),
	}
}
