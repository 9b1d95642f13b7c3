package eth

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/logger"
	"walletwatch/pkg/utils"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/shopspring/decimal"
)

const (
	opGetBalance   = "get_balance"
	opGetTransfers = "get_transfers"
	opGetReceipt   = "get_receipt"
)

// GetBalance returns the native balance in ether.
func (c *Client) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	var balance *big.Int

	err := c.call(ctx, opGetBalance, func(ctx context.Context, e *endpoint) error {
		var err error
		balance, err = e.eth.BalanceAt(ctx, common.HexToAddress(address), nil)
		return err
	})
	if err != nil {
		return decimal.Decimal{}, domain.NewProviderError(opGetBalance, address, err)
	}
	if balance == nil {
		return decimal.Decimal{}, domain.NewProviderError(opGetBalance, address, errEmptyBalance)
	}

	return *WeiToEther(balance), nil
}

// GetRecentTransfers returns up to maxCount inbound and outbound transfers,
// newest block first, each hash at most once. If one direction fails the
// other direction is still returned; if both fail the call fails.
func (c *Client) GetRecentTransfers(ctx context.Context, address string, maxCount int) ([]domain.Transfer, error) {
	var (
		wg      sync.WaitGroup
		results [2][]domain.Transfer
		errs    [2]error
	)

	directions := [2]direction{directionFrom, directionTo}
	for i, dir := range directions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.fetchTransfers(ctx, address, dir, maxCount)
		}()
	}
	wg.Wait()

	if errs[0] != nil && errs[1] != nil {
		return nil, domain.NewProviderError(opGetTransfers, address, errs[0])
	}

	for i, err := range errs {
		if err != nil {
			c.l.Warn("partial transfers response", logger.LS_MONITOR, false, "address", address, "direction", string(directions[i]), "error", err.Error())
		}
	}

	return mergeTransfers(maxCount, results[0], results[1]), nil
}

// GetReceipt returns gas usage and execution status of a mined transaction.
// A receipt the provider does not know wraps domain.ErrReceiptNotFound.
func (c *Client) GetReceipt(ctx context.Context, hash string) (*domain.Receipt, error) {
	var receipt *types.Receipt

	err := c.call(ctx, opGetReceipt, func(ctx context.Context, e *endpoint) error {
		var err error
		receipt, err = e.eth.TransactionReceipt(ctx, common.HexToHash(hash))
		return err
	})
	if errors.Is(err, ethereum.NotFound) {
		return nil, domain.NewProviderError(opGetReceipt, hash, fmt.Errorf("%w: %w", domain.ErrReceiptNotFound, err))
	}
	if err != nil {
		return nil, domain.NewProviderError(opGetReceipt, hash, err)
	}

	status := domain.TX_STATUS_FAILED
	if receipt.Status == types.ReceiptStatusSuccessful {
		status = domain.TX_STATUS_SUCCESS
	}

	gasPrice := decimal.Zero
	if receipt.EffectiveGasPrice != nil {
		gasPrice = decimal.NewFromBigInt(receipt.EffectiveGasPrice, 0)
	}

	return &domain.Receipt{GasUsed: receipt.GasUsed, GasPrice: gasPrice, Status: status}, nil
}

func mergeTransfers(maxCount int, sets ...[]domain.Transfer) []domain.Transfer {
	var all []domain.Transfer
	for _, set := range sets {
		all = append(all, set...)
	}

	all = utils.UniqueBy(all, func(t domain.Transfer) string { return t.Hash })

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].BlockNumber > all[j].BlockNumber
	})

	if maxCount > 0 && len(all) > maxCount {
		all = all[:maxCount]
	}
	return all
}

// 1230000000000000000 to 1.23
func WeiToEther(wei *big.Int) *decimal.Decimal {
	ether := decimal.NewFromBigInt(wei, -18)
	return &ether
}

// 1.23 to 1230000000000000000
func EtherToWei(ether decimal.Decimal) *big.Int {
	return ether.Shift(18).BigInt()
}
