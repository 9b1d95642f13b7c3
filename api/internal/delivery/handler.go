package delivery

import (
	"context"
	"net/http"
	"time"

	"walletwatch/api/internal/config"
	v1 "walletwatch/api/internal/delivery/rest/v1"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const VERSION = "1.0.0"

type Handler struct {
	Services *service.Services
	Db       *gorm.DB
	Config   *config.Config
	Log      logger.Logger
}

func (h *Handler) InitAPI(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1Group := r.Group("/api/v1")

	v1Handler := v1.NewHandler(h.Services, h.Config, h.Log)

	{
		v1Handler.InitRoutes(v1Group)
	}
}

type responseHealth struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Scheduler bool   `json:"scheduler"`
	Version   string `json:"version"`
}

func (h *Handler) health(c *gin.Context) {
	resp := responseHealth{Status: "healthy", Database: "connected", Version: VERSION}
	if h.Services != nil && h.Services.Scheduler != nil {
		resp.Scheduler = h.Services.Scheduler.Running()
	}

	if err := h.pingDB(c.Request.Context()); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "error: " + err.Error()
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) pingDB(ctx context.Context) error {
	if h.Db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := h.Db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func InitHandler(services *service.Services, db *gorm.DB, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		Config:   config,
		Log:      log,
		Services: services,
		Db:       db,
	}
}
