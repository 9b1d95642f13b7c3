package eth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"walletwatch/api/internal/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

const methodAssetTransfers = "alchemy_getAssetTransfers"

var (
	errEmptyBalance      = errors.New("empty balance in response")
	errMalformedTransfer = errors.New("malformed transfer")
)

type direction string

const (
	directionFrom direction = "from"
	directionTo   direction = "to"
)

type assetTransfersParams struct {
	FromBlock        string   `json:"fromBlock"`
	ToBlock          string   `json:"toBlock"`
	FromAddress      string   `json:"fromAddress,omitempty"`
	ToAddress        string   `json:"toAddress,omitempty"`
	Category         []string `json:"category"`
	WithMetadata     bool     `json:"withMetadata"`
	ExcludeZeroValue bool     `json:"excludeZeroValue"`
	MaxCount         string   `json:"maxCount"`
	Order            string   `json:"order"`
}

type assetTransfersResult struct {
	Transfers []assetTransfer `json:"transfers"`
	PageKey   string          `json:"pageKey,omitempty"`
}

type assetTransfer struct {
	BlockNum    string      `json:"blockNum"`
	Hash        string      `json:"hash"`
	From        string      `json:"from"`
	To          *string     `json:"to"`
	Value       json.Number `json:"value"`
	Asset       string      `json:"asset"`
	Category    string      `json:"category"`
	RawContract struct {
		Value   *string `json:"value"`
		Decimal *string `json:"decimal"`
	} `json:"rawContract"`
	Metadata *struct {
		BlockTimestamp string `json:"blockTimestamp"`
	} `json:"metadata"`
}

func newTransfersParams(address string, dir direction, maxCount int) assetTransfersParams {
	p := assetTransfersParams{
		FromBlock:        "0x0",
		ToBlock:          "latest",
		Category:         []string{"external"},
		WithMetadata:     true,
		ExcludeZeroValue: false,
		MaxCount:         hexutil.EncodeUint64(uint64(maxCount)),
		Order:            "desc",
	}
	if dir == directionFrom {
		p.FromAddress = address
	} else {
		p.ToAddress = address
	}
	return p
}

func (c *Client) fetchTransfers(ctx context.Context, address string, dir direction, maxCount int) ([]domain.Transfer, error) {
	var res assetTransfersResult

	err := c.call(ctx, opGetTransfers, func(ctx context.Context, e *endpoint) error {
		return e.rpc.CallContext(ctx, &res, methodAssetTransfers, newTransfersParams(address, dir, maxCount))
	})
	if err != nil {
		return nil, fmt.Errorf("%s transfers: %w", dir, err)
	}

	retrievedAt := c.now().UTC()

	transfers := make([]domain.Transfer, 0, len(res.Transfers))
	for _, raw := range res.Transfers {
		t, err := raw.toTransfer(retrievedAt)
		if err != nil {
			return nil, fmt.Errorf("%s transfers: %w", dir, err)
		}
		transfers = append(transfers, t)
	}

	return transfers, nil
}

func (a assetTransfer) toTransfer(retrievedAt time.Time) (domain.Transfer, error) {
	if !isTxHash(a.Hash) {
		return domain.Transfer{}, fmt.Errorf("%w: hash %q", errMalformedTransfer, a.Hash)
	}

	block, err := hexutil.DecodeUint64(a.BlockNum)
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("%w: block %q: %v", errMalformedTransfer, a.BlockNum, err)
	}

	value, err := a.value()
	if err != nil {
		return domain.Transfer{}, fmt.Errorf("%w: value: %v", errMalformedTransfer, err)
	}

	t := domain.Transfer{
		Hash:        strings.ToLower(a.Hash),
		BlockNumber: block,
		Timestamp:   retrievedAt,
		From:        checksum(a.From),
		Value:       value,
	}
	if a.To != nil {
		t.To = checksum(*a.To)
	}

	// best effort, the provider may omit metadata
	if a.Metadata != nil && a.Metadata.BlockTimestamp != "" {
		if ts, err := time.Parse(time.RFC3339, a.Metadata.BlockTimestamp); err == nil {
			t.Timestamp = ts.UTC()
		}
	}

	return t, nil
}

// raw wei value is exact, the float value is only used when it is missing
func (a assetTransfer) value() (decimal.Decimal, error) {
	if a.RawContract.Value != nil && *a.RawContract.Value != "" {
		digits := strings.TrimPrefix(*a.RawContract.Value, "0x")
		if digits == "" {
			return decimal.Zero, nil
		}
		wei, ok := new(big.Int).SetString(digits, 16)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("raw value %q", *a.RawContract.Value)
		}
		return *WeiToEther(wei), nil
	}
	if a.Value == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(a.Value.String())
}

func isTxHash(s string) bool {
	if !strings.HasPrefix(s, "0x") || len(s) != 66 {
		return false
	}
	_, err := hexutil.Decode(s)
	return err == nil
}

func checksum(address string) string {
	if !common.IsHexAddress(address) {
		return address
	}
	return common.HexToAddress(address).Hex()
}
