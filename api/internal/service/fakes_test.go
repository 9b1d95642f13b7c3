package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/cache"
	"walletwatch/api/internal/logger"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

var errStoreDown = errors.New("connection reset")

type fakeChain struct {
	mu            sync.Mutex
	balances      map[string]decimal.Decimal
	balanceErrs   map[string]error
	transfers     map[string][]domain.Transfer
	receiptErr    error
	transferCalls int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		balances:    map[string]decimal.Decimal{},
		balanceErrs: map[string]error{},
		transfers:   map[string][]domain.Transfer{},
	}
}

func (c *fakeChain) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.balanceErrs[address]; err != nil {
		return decimal.Decimal{}, domain.NewProviderError("get_balance", address, err)
	}
	return c.balances[address], nil
}

func (c *fakeChain) GetRecentTransfers(ctx context.Context, address string, maxCount int) ([]domain.Transfer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transferCalls++
	transfers := c.transfers[address]
	if len(transfers) > maxCount {
		transfers = transfers[:maxCount]
	}
	return append([]domain.Transfer(nil), transfers...), nil
}

func (c *fakeChain) GetReceipt(ctx context.Context, txHash string) (*domain.Receipt, error) {
	if c.receiptErr != nil {
		return nil, domain.NewProviderError("get_receipt", txHash, c.receiptErr)
	}
	return &domain.Receipt{GasUsed: 21000, GasPrice: decimal.NewFromInt(2_000_000_000), Status: domain.TX_STATUS_SUCCESS}, nil
}

type fakeStore struct {
	mu           sync.Mutex
	wallets      []domain.Wallets
	alerts       map[uint][]domain.Alerts
	txs          map[string]domain.Transactions
	balances     map[uint]decimal.Decimal
	triggered    map[uint]time.Time
	monitored    map[uint]time.Time
	alertQueries int

	listErr      error
	insertErr    error
	triggerFails map[uint]bool
}

func newFakeStore(wallets ...domain.Wallets) *fakeStore {
	return &fakeStore{
		wallets:      wallets,
		alerts:       map[uint][]domain.Alerts{},
		txs:          map[string]domain.Transactions{},
		balances:     map[uint]decimal.Decimal{},
		triggered:    map[uint]time.Time{},
		monitored:    map[uint]time.Time{},
		triggerFails: map[uint]bool{},
	}
}

func (s *fakeStore) ListWallets(ctx context.Context) ([]domain.Wallets, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, domain.NewStoreError("list wallets", s.listErr)
	}
	return append([]domain.Wallets(nil), s.wallets...), nil
}

func (s *fakeStore) UpdateBalance(ctx context.Context, walletID uint, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[walletID] = balance
	return nil
}

func (s *fakeStore) ActiveAlerts(ctx context.Context, walletID uint) ([]domain.Alerts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alertQueries++
	var active []domain.Alerts
	for _, a := range s.alerts[walletID] {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *fakeStore) MarkAlertTriggered(ctx context.Context, alertID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.triggerFails[alertID] {
		return domain.NewStoreError("mark alert triggered", errStoreDown)
	}
	s.triggered[alertID] = at
	return nil
}

func (s *fakeStore) TransactionExists(ctx context.Context, txHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.txs[txHash]
	return ok, nil
}

func (s *fakeStore) InsertTransactions(ctx context.Context, transactions []domain.Transactions) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return 0, domain.NewStoreError("insert transactions", s.insertErr)
	}
	for _, tx := range transactions {
		if _, ok := s.txs[tx.TxHash]; ok {
			return 0, domain.NewStoreError("insert transactions", errors.New("duplicate tx_hash "+tx.TxHash))
		}
	}
	for _, tx := range transactions {
		s.txs[tx.TxHash] = tx
	}
	return len(transactions), nil
}

func (s *fakeStore) TouchMonitored(ctx context.Context, walletID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monitored[walletID] = at
	return nil
}

func (s *fakeStore) monitoredAt(walletID uint) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.monitored[walletID]
	return at, ok
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.AlertEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, event domain.AlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func fakeAddress() string {
	return common.BytesToAddress([]byte(gofakeit.LetterN(20))).Hex()
}

func fakeWallet(id uint, balance string) domain.Wallets {
	return domain.Wallets{
		Model:   domain.Model{ID: id},
		Address: fakeAddress(),
		Balance: decimal.RequireFromString(balance),
	}
}

func fakeTransfer(block uint64, from, to string) domain.Transfer {
	return domain.Transfer{
		Hash:        gofakeit.HexUint(256),
		BlockNumber: block,
		Timestamp:   time.Now().UTC(),
		From:        from,
		To:          to,
		Value:       decimal.RequireFromString("0.25"),
	}
}

// steppingClock returns a later time on every call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestSynchronizer(chain *fakeChain, store *fakeStore, publisher *fakePublisher) *SynchronizerService {
	s := NewSynchronizerService(chain, store, publisher, NewLockerService(cache.InitStorage()), logger.Discard(), 50)
	s.now = steppingClock()
	return s
}
