package service

import (
	"context"
	"time"

	"walletwatch/api/internal/config"
	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/cache"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChainClient answers balance and transfer questions about an address.
// Failures are *domain.ProviderError.
type ChainClient interface {
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)
	// GetRecentTransfers returns inbound and outbound transfers, unique by hash,
	// newest block first.
	GetRecentTransfers(ctx context.Context, address string, maxCount int) ([]domain.Transfer, error)
	GetReceipt(ctx context.Context, txHash string) (*domain.Receipt, error)
}

// WalletStore is the state a monitoring cycle reads and writes.
// Failures are *domain.StoreError.
type WalletStore interface {
	ListWallets(ctx context.Context) ([]domain.Wallets, error)
	UpdateBalance(ctx context.Context, walletID uint, balance decimal.Decimal) error
	ActiveAlerts(ctx context.Context, walletID uint) ([]domain.Alerts, error)
	MarkAlertTriggered(ctx context.Context, alertID uint, at time.Time) error
	TransactionExists(ctx context.Context, txHash string) (bool, error)
	// InsertTransactions commits the whole batch or nothing.
	InsertTransactions(ctx context.Context, transactions []domain.Transactions) (int, error)
	TouchMonitored(ctx context.Context, walletID uint, at time.Time) error
}

type AlertPublisher interface {
	Publish(ctx context.Context, event domain.AlertEvent) error
}

type Locker interface {
	// TryLock reports false when the key is already held.
	TryLock(key string) bool
	Unlock(key string)
	IsLocked(key string) bool
}

type Synchronizer interface {
	Sync(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error)
}

type Monitor interface {
	RunCycle(ctx context.Context) (*CycleReport, error)
}

type Scheduler interface {
	Start()
	// Stop waits for an in-flight cycle until ctx is done, then cancels it.
	Stop(ctx context.Context) error
	Running() bool
}

type Wallets interface {
	Register(ctx context.Context, address, label string) (*domain.Wallets, error)
	Find(ctx context.Context, address string) (*domain.Wallets, error)
	List(ctx context.Context) ([]domain.Wallets, error)
	UpdateLabel(ctx context.Context, address, label string) (*domain.Wallets, error)
	Delete(ctx context.Context, address string) error
	Transactions(ctx context.Context, address string, limit, offset int) ([]domain.Transactions, error)
}

type Alerts interface {
	Create(ctx context.Context, address string, alertType domain.AlertType, threshold string) (*domain.Alerts, error)
	ListByWallet(ctx context.Context, address string) ([]domain.Alerts, error)
	SetActive(ctx context.Context, alertID uint, active bool) (*domain.Alerts, error)
	Delete(ctx context.Context, alertID uint) error
}

type ApiKeys interface {
	Generate(ctx context.Context, name string) (*domain.ApiKeys, error)
	// Authenticate returns domain.ErrApiKeyInvalid for unknown or inactive keys.
	Authenticate(ctx context.Context, key string) (*domain.ApiKeys, error)
}

type Services struct {
	Wallets   Wallets
	Alerts    Alerts
	ApiKeys   ApiKeys
	Monitor   Monitor
	Scheduler Scheduler
}

// HewServices wires the services around one chain client built at startup.
func HewServices(db *gorm.DB, chain ChainClient, publisher AlertPublisher, l logger.Logger, config *config.Config) *Services {
	repos := repository.New()
	store := repository.NewStore(db, repos)
	locker := NewLockerService(cache.InitStorage())

	synchronizer := NewSynchronizerService(chain, store, publisher, locker, l, config.Monitor.MaxTransfers)
	monitor := NewMonitorService(store, synchronizer, l, config.Monitor.Workers)

	return &Services{
		Wallets:   NewWalletsService(db, repos.Wallets, repos.Transactions, chain, locker),
		Alerts:    NewAlertsService(db, repos.Alerts, repos.Wallets),
		ApiKeys:   NewApiKeysService(db, repos.ApiKeys),
		Monitor:   monitor,
		Scheduler: NewSchedulerService(monitor, config.MonitorInterval(), l),
	}
}
