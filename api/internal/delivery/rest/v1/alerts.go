package v1

import (
	"net/http"
	"strconv"

	"walletwatch/api/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initAlertRoutes(g *gin.RouterGroup) {
	g.POST("/wallets/:address/alerts", h.alertCreate)
	g.GET("/wallets/:address/alerts", h.alertList)

	alerts := g.Group("/alerts")
	{
		alerts.PATCH("/:id", h.alertUpdate)
		alerts.DELETE("/:id", h.alertDelete)
	}
}

func (h *Handler) alertCreate(c *gin.Context) {
	var data struct {
		AlertType string `json:"alert_type" validate:"required,alert_type"`
		Threshold string `json:"threshold" validate:"decimal"`
	}
	if !h.bindJSON(c, &data) {
		return
	}

	alert, err := h.services.Alerts.Create(c.Request.Context(), c.Param("address"), domain.AlertType(data.AlertType), data.Threshold)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, responseAlert{Message: "Alert created successfully", Alert: alert.ToResponse()})
}

func (h *Handler) alertList(c *gin.Context) {
	alerts, err := h.services.Alerts.ListByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	resp := make([]domain.ResponseAlert, 0, len(alerts))
	for i := range alerts {
		resp = append(resp, alerts[i].ToResponse())
	}
	c.JSON(http.StatusOK, responseAlerts{Alerts: resp, Count: len(resp)})
}

func (h *Handler) alertUpdate(c *gin.Context) {
	alertID, ok := alertIDParam(c)
	if !ok {
		return
	}

	var data struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	if !h.bindJSON(c, &data) {
		return
	}

	alert, err := h.services.Alerts.SetActive(c.Request.Context(), alertID, *data.IsActive)
	if err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, responseAlert{Alert: alert.ToResponse()})
}

func (h *Handler) alertDelete(c *gin.Context) {
	alertID, ok := alertIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Alerts.Delete(c.Request.Context(), alertID); err != nil {
		h.responseServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, responseMessage{Message: "Alert deleted successfully"})
}

func alertIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return 0, false
	}
	return uint(id), true
}
