package repository

import (
	"context"
	"time"

	"walletwatch/api/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Store is the persistence side of a monitoring cycle. Every failure it
// returns is a *domain.StoreError.
type Store struct {
	db    *gorm.DB
	repos *Repositories
}

func NewStore(db *gorm.DB, repos *Repositories) *Store {
	return &Store{db: db, repos: repos}
}

func (s *Store) ListWallets(ctx context.Context) ([]domain.Wallets, error) {
	wallets, err := s.repos.Wallets.List(s.db.WithContext(ctx))
	if err != nil {
		return nil, domain.NewStoreError("list wallets", err)
	}
	return wallets, nil
}

func (s *Store) UpdateBalance(ctx context.Context, walletID uint, balance decimal.Decimal) error {
	if err := s.repos.Wallets.UpdateBalance(s.db.WithContext(ctx), walletID, balance); err != nil {
		return domain.NewStoreError("update balance", err)
	}
	return nil
}

func (s *Store) ActiveAlerts(ctx context.Context, walletID uint) ([]domain.Alerts, error) {
	alerts, err := s.repos.Alerts.ListActiveByWallet(s.db.WithContext(ctx), walletID)
	if err != nil {
		return nil, domain.NewStoreError("active alerts", err)
	}
	return alerts, nil
}

func (s *Store) MarkAlertTriggered(ctx context.Context, alertID uint, at time.Time) error {
	if err := s.repos.Alerts.SetTriggered(s.db.WithContext(ctx), alertID, at); err != nil {
		return domain.NewStoreError("mark alert triggered", err)
	}
	return nil
}

func (s *Store) TransactionExists(ctx context.Context, txHash string) (bool, error) {
	exists, err := s.repos.Transactions.ExistsByHash(s.db.WithContext(ctx), txHash)
	if err != nil {
		return false, domain.NewStoreError("transaction exists", err)
	}
	return exists, nil
}

// InsertTransactions writes the batch in one database transaction and returns
// how many rows were new. A hash stored concurrently since the caller checked
// is skipped, any other failure rolls the whole batch back.
func (s *Store) InsertTransactions(ctx context.Context, transactions []domain.Transactions) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	var inserted int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted = 0
		for i := range transactions {
			created, err := s.repos.Transactions.CreateIfAbsent(tx, &transactions[i])
			if err != nil {
				return err
			}
			if created {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, domain.NewStoreError("insert transactions", err)
	}
	return inserted, nil
}

func (s *Store) TouchMonitored(ctx context.Context, walletID uint, at time.Time) error {
	if err := s.repos.Wallets.TouchMonitored(s.db.WithContext(ctx), walletID, at); err != nil {
		return domain.NewStoreError("touch monitored", err)
	}
	return nil
}
