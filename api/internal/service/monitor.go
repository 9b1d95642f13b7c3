package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/metrics"

	"golang.org/x/sync/errgroup"
)

type CycleReport struct {
	Attempted int
	Failed    int
	Busy      int
	Took      time.Duration
}

type MonitorService struct {
	store        WalletStore
	synchronizer Synchronizer
	l            logger.Logger
	workers      int
}

func NewMonitorService(store WalletStore, synchronizer Synchronizer, l logger.Logger, workers int) *MonitorService {
	if workers < 1 {
		workers = 1
	}
	return &MonitorService{store: store, synchronizer: synchronizer, l: l, workers: workers}
}

// RunCycle synchronizes every stored wallet, at most workers at a time.
// A failing wallet is logged and counted; only a failure to list wallets
// aborts the cycle. Wallets not yet started when ctx is done are left for
// the next cycle.
func (s *MonitorService) RunCycle(ctx context.Context) (*CycleReport, error) {
	start := time.Now()
	metrics.CyclesTotal.Inc()

	wallets, err := s.store.ListWallets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}

	var attempted, failed, busy atomic.Int64

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i := range wallets {
		if ctx.Err() != nil {
			break
		}
		wallet := &wallets[i]

		g.Go(func() error {
			attempted.Add(1)

			err := s.syncWallet(ctx, wallet)
			switch {
			case err == nil:
				metrics.WalletsSynced.WithLabelValues(metrics.ResultOK).Inc()
			case errors.Is(err, domain.ErrWalletBusy):
				busy.Add(1)
				metrics.WalletsSynced.WithLabelValues(metrics.ResultLocked).Inc()
				s.l.Debug("wallet is locked, skipped", "address", wallet.Address)
			default:
				failed.Add(1)
				metrics.WalletsSynced.WithLabelValues(metrics.ResultFailed).Inc()
				s.l.TemplWalletErr("sync failed", wallet.Address, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := &CycleReport{
		Attempted: int(attempted.Load()),
		Failed:    int(failed.Load()),
		Busy:      int(busy.Load()),
		Took:      time.Since(start),
	}
	metrics.CycleLatency.Observe(report.Took.Seconds())
	s.l.TemplCycleInfo("cycle done", report.Attempted, report.Failed, report.Took)

	return report, nil
}

// syncWallet turns a panic into this wallet's error, a worker goroutine
// panic would otherwise take the process down.
func (s *MonitorService) syncWallet(ctx context.Context, wallet *domain.Wallets) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	_, err = s.synchronizer.Sync(ctx, wallet)
	return err
}
