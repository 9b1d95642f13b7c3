package domain

import (
	"errors"
	"net/http"
)

type ResponseWallet struct {
	ID            uint    `json:"id"`
	Address       string  `json:"address"`
	Label         string  `json:"label"`
	Balance       string  `json:"balance"`
	LastMonitored *string `json:"last_monitored"`
	CreatedAt     string  `json:"created_at"`
}

type ResponseTransaction struct {
	ID          uint   `json:"id"`
	WalletID    uint   `json:"wallet_id"`
	TxHash      string `json:"tx_hash"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
	Value       string `json:"value"`
	Timestamp   string `json:"timestamp"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
	GasPrice    string `json:"gas_price"`
	Status      string `json:"status"`
}

type ResponseAlert struct {
	ID            uint    `json:"id"`
	WalletID      uint    `json:"wallet_id"`
	AlertType     string  `json:"alert_type"`
	Threshold     string  `json:"threshold"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	LastTriggered *string `json:"last_triggered"`
}

const (
	ErrMsgRateLimitExceeded   = "rate limit exceeded"
	ErrMsgInternalServerError = "internal server error"
	ErrMsgBadRequest          = "bad request"
	ErrMsgParamsBadRequest    = "bad request: %s"

	ErrMsgApiKeyRequired = "api key required"
	ErrMsgApiKeyInvalid  = "invalid api key"

	ErrMsgAddressRequired = "address is required"
	ErrMsgInvalidAddress  = "invalid ethereum address"
	ErrMsgWalletExists    = "wallet already registered"
	ErrMsgWalletNotFound  = "wallet not found"
	ErrMsgWalletBusy      = "wallet is being synchronized"
	ErrMsgAlertNotFound   = "alert not found"
	ErrMsgInvalidAlert    = "invalid alert"
	ErrMsgGetBalanceError = "get balance error"
)

var (
	ErrInternalServerError = errors.New(ErrMsgInternalServerError)
	ErrInvalidAddress      = errors.New(ErrMsgInvalidAddress)
	ErrWalletExists        = errors.New(ErrMsgWalletExists)
	ErrWalletNotFound      = errors.New(ErrMsgWalletNotFound)
	ErrWalletBusy          = errors.New(ErrMsgWalletBusy)
	ErrAlertNotFound       = errors.New(ErrMsgAlertNotFound)
	ErrInvalidAlert        = errors.New(ErrMsgInvalidAlert)
	ErrEmptyThreshold      = errors.New("threshold is empty")
	ErrApiKeyInvalid       = errors.New(ErrMsgApiKeyInvalid)
	ErrReceiptNotFound     = errors.New("receipt not found")
)

func GetStatusByErr(err error) (status int) {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, ErrInvalidAddress), errors.Is(err, ErrInvalidAlert):
		status = http.StatusBadRequest
	case errors.Is(err, ErrApiKeyInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, ErrWalletNotFound), errors.Is(err, ErrAlertNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrWalletExists), errors.Is(err, ErrWalletBusy):
		status = http.StatusConflict
	case IsProviderError(err):
		status = http.StatusBadGateway
	default:
		status = http.StatusInternalServerError
	}
	return status
}

// MsgByErr returns the message that is safe to show to an api client.
func MsgByErr(err error) string {
	switch GetStatusByErr(err) {
	case http.StatusInternalServerError:
		return ErrMsgInternalServerError
	case http.StatusBadGateway:
		return ErrMsgGetBalanceError
	default:
		return err.Error()
	}
}
