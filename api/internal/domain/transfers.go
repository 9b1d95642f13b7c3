package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is a native value movement as reported by the chain provider.
type Transfer struct {
	Hash        string
	BlockNumber uint64
	Timestamp   time.Time // retrieval time when the provider has no block timestamp
	From        string
	To          string
	Value       decimal.Decimal // ether
}

// Receipt carries the execution details that transfer listings do not include.
type Receipt struct {
	GasUsed  uint64
	GasPrice decimal.Decimal // wei
	Status   TxStatus
}

func (t Transfer) ToTransaction(walletID uint, receipt *Receipt) Transactions {
	tx := Transactions{
		WalletID:    walletID,
		TxHash:      t.Hash,
		BlockNumber: t.BlockNumber,
		Timestamp:   t.Timestamp,
		FromAddress: t.From,
		ToAddress:   t.To,
		Value:       t.Value,
		GasPrice:    decimal.Zero,
		Status:      TX_STATUS_UNKNOWN,
	}
	if receipt != nil {
		tx.GasUsed = receipt.GasUsed
		tx.GasPrice = receipt.GasPrice
		tx.Status = receipt.Status
	}
	return tx
}
