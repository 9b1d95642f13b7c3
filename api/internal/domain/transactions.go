package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxStatus uint8

const (
	TX_STATUS_FAILED TxStatus = iota
	TX_STATUS_SUCCESS
	TX_STATUS_UNKNOWN // receipt was not available when the transfer was ingested
)

var TxStatuses = [...]string{"failed", "success", "unknown"}

func (s TxStatus) ToString() string {
	if int(s) >= len(TxStatuses) {
		return TxStatuses[TX_STATUS_UNKNOWN]
	}
	return TxStatuses[s]
}

// Transactions rows are insert-only. TxHash is unique across all wallets.
type Transactions struct {
	ID          uint            `gorm:"primaryKey"`
	WalletID    uint            `gorm:"not null;index"`
	TxHash      string          `gorm:"size:66;uniqueIndex;not null"`
	BlockNumber uint64          `gorm:"index"`
	Timestamp   time.Time       `gorm:"index"`
	FromAddress string          `gorm:"size:42;index"`
	ToAddress   string          `gorm:"size:42;index"`
	Value       decimal.Decimal `gorm:"type:numeric"` // ether
	GasUsed     uint64
	GasPrice    decimal.Decimal `gorm:"type:numeric"` // wei
	Status      TxStatus        `gorm:"type:int2"`
}

func (t *Transactions) ToResponse() ResponseTransaction {
	return ResponseTransaction{
		ID:          t.ID,
		WalletID:    t.WalletID,
		TxHash:      t.TxHash,
		FromAddress: t.FromAddress,
		ToAddress:   t.ToAddress,
		Value:       t.Value.String(),
		Timestamp:   t.Timestamp.UTC().Format(time.RFC3339),
		BlockNumber: t.BlockNumber,
		GasUsed:     t.GasUsed,
		GasPrice:    t.GasPrice.String(),
		Status:      t.Status.ToString(),
	}
}
