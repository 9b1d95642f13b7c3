package v1

import (
	"walletwatch/api/internal/config"
	"walletwatch/api/internal/infra/cache"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	services *service.Services
	config   *config.Config
	limits   *cache.Cache
	validate *validator.Validate
	log      logger.Logger
}

func (h *Handler) InitRoutes(g *gin.RouterGroup) {
	g.Use(h.rateLimitMiddleware(), h.apiKeyMiddleware())
	{
		h.initWalletRoutes(g)
		h.initAlertRoutes(g)
	}
}

func NewHandler(services *service.Services, config *config.Config, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		log:      log,
		services: services,
		limits:   cache.InitStorage(),
		validate: newValidator(),
	}
}
