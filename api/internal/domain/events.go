package domain

import "time"

// AlertEvent is published every time an alert fires.
type AlertEvent struct {
	EventID     string    `json:"event_id"`
	AlertID     uint      `json:"alert_id"`
	WalletID    uint      `json:"wallet_id"`
	Address     string    `json:"address"`
	AlertType   AlertType `json:"alert_type"`
	Threshold   string    `json:"threshold,omitempty"`
	Balance     string    `json:"balance"`
	TriggeredAt time.Time `json:"triggered_at"`
}
