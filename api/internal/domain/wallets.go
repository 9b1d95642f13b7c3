package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallets is a tracked address. Address is stored checksummed.
type Wallets struct {
	Model
	Address       string          `gorm:"size:42;uniqueIndex;not null"`
	Label         string          `gorm:"size:100"`
	Balance       decimal.Decimal `gorm:"type:numeric;default:0"` // ether, not wei
	LastMonitored *time.Time

	Transactions []Transactions `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE" json:"-"`
	Alerts       []Alerts       `gorm:"foreignKey:WalletID;constraint:OnDelete:CASCADE" json:"-"`
}

func (w *Wallets) ToResponse() ResponseWallet {
	return ResponseWallet{
		ID:            w.ID,
		Address:       w.Address,
		Label:         w.Label,
		Balance:       w.Balance.String(),
		LastMonitored: formatTime(w.LastMonitored),
		CreatedAt:     w.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
