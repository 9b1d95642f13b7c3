package v1

import (
	"walletwatch/api/internal/domain"

	"github.com/gin-gonic/gin"
)

type responseError struct {
	Error   bool   `json:"error"`
	ErrorID string `json:"error_id"`
	Msg     string `json:"msg"`
}

type responseMessage struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// /wallets/:address
type responseWallet struct {
	Error   bool                  `json:"error"`
	Message string                `json:"message,omitempty"`
	Wallet  domain.ResponseWallet `json:"wallet"`
}

// /wallets
type responseWallets struct {
	Error   bool                    `json:"error"`
	Wallets []domain.ResponseWallet `json:"wallets"`
	Count   int                     `json:"count"`
}

// /wallets/:address/transactions
type responseTransactions struct {
	Error        bool                         `json:"error"`
	Transactions []domain.ResponseTransaction `json:"transactions"`
	Count        int                          `json:"count"`
}

type responseAlert struct {
	Error   bool                 `json:"error"`
	Message string               `json:"message,omitempty"`
	Alert   domain.ResponseAlert `json:"alert"`
}

// /wallets/:address/alerts
type responseAlerts struct {
	Error  bool                   `json:"error"`
	Alerts []domain.ResponseAlert `json:"alerts"`
	Count  int                    `json:"count"`
}

func responseErr(c *gin.Context, statusCode int, msg, errorID string) {
	c.AbortWithStatusJSON(statusCode, responseError{true, errorID, msg})
}

// responseServiceErr maps a service error to its status. Server side failures
// are logged and answered with an error id only.
func (h *Handler) responseServiceErr(c *gin.Context, err error) {
	status := domain.GetStatusByErr(err)

	var errorID string
	if status >= 500 {
		errorID = h.log.TemplRequestErr("request failed", c.FullPath(), err)
	}

	responseErr(c, status, domain.MsgByErr(err), errorID)
}
