package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/nats"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/metrics"

	"github.com/shopspring/decimal"
)

type SyncResult struct {
	BalanceChanged bool
	AlertsFired    int
	AlertsSkipped  int
	Ingested       int
	// Deferred counts new transfers left for the next cycle because their
	// receipt could not be fetched.
	Deferred       int
}

type SynchronizerService struct {
	chain        ChainClient
	store        WalletStore
	publisher    AlertPublisher
	locker       Locker
	l            logger.Logger
	maxTransfers int
	now          func() time.Time
}

func NewSynchronizerService(chain ChainClient, store WalletStore, publisher AlertPublisher, locker Locker, l logger.Logger, maxTransfers int) *SynchronizerService {
	return &SynchronizerService{
		chain:        chain,
		store:        store,
		publisher:    publisher,
		locker:       locker,
		l:            l,
		maxTransfers: maxTransfers,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Sync brings one wallet in line with the chain: balance, alerts, new
// transactions, and finally last_monitored. The timestamp only moves after a
// clean pass, so a stale value points at a failing wallet. Work committed
// before a failure stays committed.
func (s *SynchronizerService) Sync(ctx context.Context, wallet *domain.Wallets) (*SyncResult, error) {
	key := walletLockKey(wallet.Address)
	if !s.locker.TryLock(key) {
		return nil, domain.ErrWalletBusy
	}
	defer s.locker.Unlock(key)

	result := &SyncResult{}

	balance, err := s.chain.GetBalance(ctx, wallet.Address)
	if err != nil {
		return result, fmt.Errorf("get balance: %w", err)
	}

	if !balance.Equal(wallet.Balance) {
		if err := s.store.UpdateBalance(ctx, wallet.ID, balance); err != nil {
			return result, err
		}
		s.l.TemplWalletInfo("balance changed", wallet.Address, balance)
		wallet.Balance = balance
		result.BalanceChanged = true

		if err := s.evaluateAlerts(ctx, wallet, balance, result); err != nil {
			return result, err
		}
	}

	inserted, err := s.ingest(ctx, wallet, result)
	result.Ingested = inserted
	if err != nil {
		return result, err
	}

	now := s.now()
	if err := s.store.TouchMonitored(ctx, wallet.ID, now); err != nil {
		return result, err
	}
	wallet.LastMonitored = &now

	return result, nil
}

// evaluateAlerts runs every active alert against the new balance. Alerts are
// independent, so a failed commit does not stop the others.
func (s *SynchronizerService) evaluateAlerts(ctx context.Context, wallet *domain.Wallets, balance decimal.Decimal, result *SyncResult) error {
	alerts, err := s.store.ActiveAlerts(ctx, wallet.ID)
	if err != nil {
		return err
	}

	var errs []error
	for i := range alerts {
		alert := &alerts[i]

		fire, err := ShouldFire(alert, balance)
		if err != nil {
			result.AlertsSkipped++
			metrics.AlertsSkipped.Inc()
			s.l.TemplAlertSkipped(alert.ID, wallet.Address, err)
			continue
		}
		if !fire {
			continue
		}

		at := s.now()
		if err := s.store.MarkAlertTriggered(ctx, alert.ID, at); err != nil {
			errs = append(errs, err)
			continue
		}
		alert.LastTriggered = &at
		result.AlertsFired++
		metrics.AlertsFired.WithLabelValues(string(alert.AlertType)).Inc()

		s.l.TemplAlertFired(alert.ID, string(alert.AlertType), wallet.Address, balance, alert.Threshold)
		s.notify(ctx, wallet, alert, balance, at)
	}

	return errors.Join(errs...)
}

func (s *SynchronizerService) notify(ctx context.Context, wallet *domain.Wallets, alert *domain.Alerts, balance decimal.Decimal, at time.Time) {
	if s.publisher == nil {
		return
	}

	event := domain.AlertEvent{
		EventID:     nats.MsgID(alert.ID, at),
		AlertID:     alert.ID,
		WalletID:    wallet.ID,
		Address:     wallet.Address,
		AlertType:   alert.AlertType,
		Balance:     balance.String(),
		TriggeredAt: at,
	}
	if alert.AlertType.NeedsThreshold() {
		event.Threshold = alert.Threshold
	}

	// the alert is already committed, a lost event only costs the notification
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.l.Error("publish alert event: "+err.Error(), logger.LS_ALERTS, false, "alert_id", alert.ID)
	}
}

// ingest stores transfers whose hash is not known yet, in one batch. Known
// hashes are skipped without looking at their stored fields.
func (s *SynchronizerService) ingest(ctx context.Context, wallet *domain.Wallets, result *SyncResult) (int, error) {
	transfers, err := s.chain.GetRecentTransfers(ctx, wallet.Address, s.maxTransfers)
	if err != nil {
		return 0, fmt.Errorf("get transfers: %w", err)
	}

	batch := make([]domain.Transactions, 0, len(transfers))
	seen := make(map[string]struct{}, len(transfers))
	for _, transfer := range transfers {
		if _, ok := seen[transfer.Hash]; ok {
			continue
		}
		seen[transfer.Hash] = struct{}{}

		exists, err := s.store.TransactionExists(ctx, transfer.Hash)
		if err != nil {
			return 0, err
		}
		if exists {
			continue
		}

		// rows are insert-only, so a receipt that may still arrive is retried
		// next cycle instead of being stored as unknown
		receipt, err := s.chain.GetReceipt(ctx, transfer.Hash)
		switch {
		case errors.Is(err, domain.ErrReceiptNotFound):
			s.l.Debug("receipt not found, storing status unknown", "hash", transfer.Hash)
			receipt = nil
		case err != nil:
			s.l.Debug("receipt unavailable, transfer deferred", "hash", transfer.Hash, "error", err.Error())
			result.Deferred++
			continue
		}
		batch = append(batch, transfer.ToTransaction(wallet.ID, receipt))
	}

	inserted, err := s.store.InsertTransactions(ctx, batch)
	if err != nil {
		return 0, err
	}
	metrics.TransactionsIngested.Add(float64(inserted))

	return inserted, nil
}

// ShouldFire decides whether an active alert fires for a balance that just
// changed. A threshold kind with an unusable threshold returns a
// *domain.ValidationError.
func ShouldFire(alert *domain.Alerts, balance decimal.Decimal) (bool, error) {
	switch alert.AlertType {
	case domain.ALERT_BALANCE_CHANGE:
		return true, nil
	case domain.ALERT_BALANCE_ABOVE, domain.ALERT_BALANCE_BELOW:
		threshold, err := alert.ParseThreshold()
		if err != nil {
			return false, err
		}
		if alert.AlertType == domain.ALERT_BALANCE_ABOVE {
			return balance.GreaterThan(threshold), nil
		}
		return balance.LessThan(threshold), nil
	default:
		return false, domain.NewValidationError(alert.ID, alert.Threshold, domain.ErrInvalidAlert)
	}
}
