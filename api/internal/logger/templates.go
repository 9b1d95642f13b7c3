package logger

import (
	"time"

	"github.com/shopspring/decimal"
)

func (l Logger) TemplWalletErr(message, address string, err error) string {
	errorId := GenErrorId()
	l.Error(message, LS_MONITOR, true, "address", address, "error", err.Error(), "error_id", errorId)
	return errorId
}

func (l Logger) TemplWalletInfo(message, address string, balance decimal.Decimal) {
	l.Info(message, LS_MONITOR, true, "address", address, "balance", balance.String())
}

func (l Logger) TemplAlertFired(alertId uint, alertType, address string, balance decimal.Decimal, threshold string) {
	l.Warn("ALERT triggered", LS_ALERTS, true, "alert_id", alertId, "alert_type", alertType, "address", address, "balance", balance.String(), "threshold", threshold)
}

func (l Logger) TemplAlertSkipped(alertId uint, address string, err error) {
	l.Error("alert skipped", LS_ALERTS, true, "alert_id", alertId, "address", address, "error", err.Error())
}

func (l Logger) TemplCycleInfo(message string, attempted, failed int, took time.Duration) {
	l.Info(message, LS_MONITOR, true, "attempted", attempted, "failed", failed, "took", took.String())
}

func (l Logger) TemplRequestErr(message, path string, err error) string {
	errorId := GenErrorId()
	l.Error(message, LS_HTTP, true, "path", path, "error", err.Error(), "error_id", errorId)
	return errorId
}

// use only for fatal errors
func (l Logger) TemplHTTPError(message string, ipv4 string, err error) {
	l.Fatal(message, LS_FATAL, true, "error", err.Error(), "ipv4", ipv4)
}

func (l Logger) TemplNatsError(message, natsUrl string, err error) {
	l.Error(message, LS_NATS, true, "nats_url", natsUrl, "error", err.Error())
}

func (l Logger) TemplNatsInfo(message, natsUrl string) {
	l.Info(message, LS_NATS, true, "nats_url", natsUrl, "error", NA)
}
