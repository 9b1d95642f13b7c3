package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AlertType string

const (
	ALERT_BALANCE_ABOVE  AlertType = "balance_above"
	ALERT_BALANCE_BELOW  AlertType = "balance_below"
	ALERT_BALANCE_CHANGE AlertType = "balance_change"
)

var AlertTypes = [...]AlertType{ALERT_BALANCE_ABOVE, ALERT_BALANCE_BELOW, ALERT_BALANCE_CHANGE}

func (a AlertType) IsValid() bool {
	for _, t := range AlertTypes {
		if a == t {
			return true
		}
	}
	return false
}

// threshold is ignored for balance_change
func (a AlertType) NeedsThreshold() bool {
	return a == ALERT_BALANCE_ABOVE || a == ALERT_BALANCE_BELOW
}

type Alerts struct {
	Model
	WalletID      uint      `gorm:"not null;index"`
	AlertType     AlertType `gorm:"size:20;not null"`
	Threshold     string    `gorm:"size:78"` // ether, parsed on evaluation
	IsActive      bool      `gorm:"not null;default:true"`
	LastTriggered *time.Time
}

// ParseThreshold returns a ValidationError when the stored threshold is not a decimal number.
func (a *Alerts) ParseThreshold() (decimal.Decimal, error) {
	if a.Threshold == "" {
		return decimal.Decimal{}, NewValidationError(a.ID, a.Threshold, ErrEmptyThreshold)
	}
	threshold, err := decimal.NewFromString(a.Threshold)
	if err != nil {
		return decimal.Decimal{}, NewValidationError(a.ID, a.Threshold, err)
	}
	return threshold, nil
}

func (a *Alerts) ToResponse() ResponseAlert {
	return ResponseAlert{
		ID:            a.ID,
		WalletID:      a.WalletID,
		AlertType:     string(a.AlertType),
		Threshold:     a.Threshold,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		LastTriggered: formatTime(a.LastTriggered),
	}
}
