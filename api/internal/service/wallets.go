package service

import (
	"context"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/postgres"
	"walletwatch/api/internal/repository"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/gorm"
)

type WalletsService struct {
	repo    repository.Wallets
	txsRepo repository.Transactions
	chain   ChainClient
	locker  Locker
	db      *gorm.DB
}

func NewWalletsService(db *gorm.DB, repo repository.Wallets, txsRepo repository.Transactions, chain ChainClient, locker Locker) *WalletsService {
	return &WalletsService{db: db, repo: repo, txsRepo: txsRepo, chain: chain, locker: locker}
}

// NormalizeAddress returns the checksummed form of a hex address.
func NormalizeAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", domain.ErrInvalidAddress
	}
	return common.HexToAddress(address).Hex(), nil
}

// Register stores a new wallet with its current chain balance.
func (s *WalletsService) Register(ctx context.Context, address, label string) (*domain.Wallets, error) {
	address, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.repo.FindByAddress(db, address); err == nil {
		return nil, domain.ErrWalletExists
	} else if !postgres.IsNotFound(err) {
		return nil, domain.NewStoreError("find wallet", err)
	}

	balance, err := s.chain.GetBalance(ctx, address)
	if err != nil {
		return nil, err
	}

	wallet := &domain.Wallets{Address: address, Label: label, Balance: balance}
	if err := s.repo.Create(db, wallet); err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, domain.ErrWalletExists
		}
		return nil, domain.NewStoreError("create wallet", err)
	}
	return wallet, nil
}

func (s *WalletsService) Find(ctx context.Context, address string) (*domain.Wallets, error) {
	address, err := NormalizeAddress(address)
	if err != nil {
		return nil, err
	}

	wallet, err := s.repo.FindByAddress(s.db.WithContext(ctx), address)
	if err != nil {
		if postgres.IsNotFound(err) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, domain.NewStoreError("find wallet", err)
	}
	return wallet, nil
}

func (s *WalletsService) List(ctx context.Context) ([]domain.Wallets, error) {
	wallets, err := s.repo.List(s.db.WithContext(ctx))
	if err != nil {
		return nil, domain.NewStoreError("list wallets", err)
	}
	return wallets, nil
}

// UpdateLabel is last-write-wins against a running synchronization, which
// never writes the label.
func (s *WalletsService) UpdateLabel(ctx context.Context, address, label string) (*domain.Wallets, error) {
	wallet, err := s.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLabel(s.db.WithContext(ctx), wallet.ID, label); err != nil {
		return nil, domain.NewStoreError("update label", err)
	}
	wallet.Label = label
	return wallet, nil
}

// Delete removes a wallet with its transactions and alerts. It refuses while
// the wallet is being synchronized.
func (s *WalletsService) Delete(ctx context.Context, address string) error {
	wallet, err := s.Find(ctx, address)
	if err != nil {
		return err
	}

	key := walletLockKey(wallet.Address)
	if !s.locker.TryLock(key) {
		return domain.ErrWalletBusy
	}
	defer s.locker.Unlock(key)

	if err := s.repo.Delete(s.db.WithContext(ctx), wallet.ID); err != nil {
		if postgres.IsNotFound(err) {
			return domain.ErrWalletNotFound
		}
		return domain.NewStoreError("delete wallet", err)
	}
	return nil
}

// Transactions lists stored transactions newest first.
func (s *WalletsService) Transactions(ctx context.Context, address string, limit, offset int) ([]domain.Transactions, error) {
	wallet, err := s.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	txs, err := s.txsRepo.ListByWallet(s.db.WithContext(ctx), wallet.ID, limit, offset)
	if err != nil {
		return nil, domain.NewStoreError("list transactions", err)
	}
	return txs, nil
}
