package v1

import (
	"net/http"

	"walletwatch/api/internal/domain"

	"github.com/gin-gonic/gin"
)

const DEFAULT_TX_LIMIT = 100

func (h *Handler) initWalletRoutes(g *gin.RouterGroup) {
	wallets := g.Group("/wallets")
	{
		wallets.POST("", h.walletRegister)
		wallets.GET("", h.walletList)
		wallets.GET("/:address", h.walletGet)
		wallets.PATCH("/:address", h.walletUpdate)
		wallets.DELETE("/:address", h.walletDelete)
		wallets.GET("/:address/transactions", h.walletTransactions)
	}
}

func (h *Handler) walletRegister(c *gin.Context) {
	var data struct {
		Address string `json:"address" validate:"required,eth_addr"`
		Label   string `json:"label" validate:"max=100"`
	}
	if !h.bindJSON(c, &data) {
		return
	}

	wallet, err := h.services.Wallets.Register(c.Request.Context(), data.Address, data.Label)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, responseWallet{Message: "Wallet registered successfully", Wallet: wallet.ToResponse()})
}

func (h *Handler) walletList(c *gin.Context) {
	wallets, err := h.services.Wallets.List(c.Request.Context())
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	resp := make([]domain.ResponseWallet, 0, len(wallets))
	for i := range wallets {
		resp = append(resp, wallets[i].ToResponse())
	}
	c.JSON(http.StatusOK, responseWallets{Wallets: resp, Count: len(resp)})
}

func (h *Handler) walletGet(c *gin.Context) {
	wallet, err := h.services.Wallets.Find(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, responseWallet{Wallet: wallet.ToResponse()})
}

func (h *Handler) walletUpdate(c *gin.Context) {
	var data struct {
		Label string `json:"label" validate:"max=100"`
	}
	if !h.bindJSON(c, &data) {
		return
	}

	wallet, err := h.services.Wallets.UpdateLabel(c.Request.Context(), c.Param("address"), data.Label)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, responseWallet{Wallet: wallet.ToResponse()})
}

func (h *Handler) walletDelete(c *gin.Context) {
	if err := h.services.Wallets.Delete(c.Request.Context(), c.Param("address")); err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, responseMessage{Message: "Wallet deleted successfully"})
}

func (h *Handler) walletTransactions(c *gin.Context) {
	var query struct {
		Limit  *int `form:"limit" validate:"omitempty,gte=1,lte=1000"`
		Offset int  `form:"offset" validate:"gte=0"`
	}
	if !h.bindQuery(c, &query) {
		return
	}

	limit := DEFAULT_TX_LIMIT
	if query.Limit != nil {
		limit = *query.Limit
	}

	txs, err := h.services.Wallets.Transactions(c.Request.Context(), c.Param("address"), limit, query.Offset)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	resp := make([]domain.ResponseTransaction, 0, len(txs))
	for i := range txs {
		resp = append(resp, txs[i].ToResponse())
	}
	c.JSON(http.StatusOK, responseTransactions{Transactions: resp, Count: len(resp)})
}
