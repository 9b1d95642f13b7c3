package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCycleIsolatesFailures(t *testing.T) {
	wallets := []domain.Wallets{fakeWallet(1, "1"), fakeWallet(2, "1"), fakeWallet(3, "1")}
	chain := newFakeChain()
	for _, w := range wallets {
		chain.balances[w.Address] = decimal.RequireFromString("2")
	}
	chain.balanceErrs[wallets[1].Address] = errors.New("dial tcp: i/o timeout")

	store := newFakeStore(wallets...)
	monitor := NewMonitorService(store, newTestSynchronizer(chain, store, &fakePublisher{}), logger.Discard(), 1)

	report, err := monitor.RunCycle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Attempted)
	assert.Equal(t, 1, report.Failed)

	for _, id := range []uint{1, 3} {
		_, ok := store.monitoredAt(id)
		assert.True(t, ok, "wallet %d", id)
		assert.True(t, store.balances[id].Equal(decimal.NewFromInt(2)))
	}
	_, ok := store.monitoredAt(2)
	assert.False(t, ok)
}

func TestRunCycleConcurrentWorkers(t *testing.T) {
	var wallets []domain.Wallets
	for i := range 20 {
		wallets = append(wallets, fakeWallet(uint(i+1), "0"))
	}
	chain := newFakeChain()
	store := newFakeStore(wallets...)
	monitor := NewMonitorService(store, newTestSynchronizer(chain, store, &fakePublisher{}), logger.Discard(), 4)

	report, err := monitor.RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, report.Attempted)
	assert.Zero(t, report.Failed)
	assert.Len(t, store.monitored, 20)
}

type syncFunc func(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error)

func (f syncFunc) Sync(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error) {
	return f(ctx, wallet)
}

func TestRunCycleRecoversPanic(t *testing.T) {
	store := newFakeStore(fakeWallet(1, "1"), fakeWallet(2, "1"))

	var synced atomic.Int64
	syncer := syncFunc(func(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error) {
		if wallet.ID == 1 {
			panic("nil balance")
		}
		synced.Add(1)
		return &SyncResult{}, nil
	})

	report, err := NewMonitorService(store, syncer, logger.Discard(), 2).RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 1, report.Failed)
	assert.EqualValues(t, 1, synced.Load())
}

func TestRunCycleCountsBusyWallets(t *testing.T) {
	store := newFakeStore(fakeWallet(1, "1"), fakeWallet(2, "1"))
	syncer := syncFunc(func(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error) {
		if wallet.ID == 2 {
			return nil, domain.ErrWalletBusy
		}
		return &SyncResult{}, nil
	})

	report, err := NewMonitorService(store, syncer, logger.Discard(), 1).RunCycle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Attempted)
	assert.Equal(t, 1, report.Busy)
	assert.Zero(t, report.Failed)
}

func TestRunCycleListFailure(t *testing.T) {
	store := newFakeStore()
	store.listErr = errStoreDown

	report, err := NewMonitorService(store, syncFunc(nil), logger.Discard(), 1).RunCycle(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsStoreError(err))
	assert.Nil(t, report)
}

func TestRunCycleStopsStartingWalletsWhenCancelled(t *testing.T) {
	store := newFakeStore(fakeWallet(1, "1"), fakeWallet(2, "1"), fakeWallet(3, "1"))

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var seen []uint
	syncer := syncFunc(func(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error) {
		mu.Lock()
		seen = append(seen, wallet.ID)
		mu.Unlock()
		cancel()
		return &SyncResult{}, nil
	})

	report, err := NewMonitorService(store, syncer, logger.Discard(), 1).RunCycle(ctx)
	require.NoError(t, err)
	assert.Less(t, report.Attempted, 3)
	assert.Equal(t, []uint{1}, seen[:1])
}
