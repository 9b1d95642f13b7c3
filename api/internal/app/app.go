package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"walletwatch/api/internal/config"
	"walletwatch/api/internal/delivery"
	"walletwatch/api/internal/infra/eth"
	"walletwatch/api/internal/infra/nats"
	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const SHUTDOWN_TIMEOUT = 30 * time.Second

type App struct {
	Config    *config.Config
	Db        *gorm.DB
	Chain     *eth.Client
	NatsInfra *nats.NatsInfra
	Log       logger.Logger
}

func (app *App) Start() {
	defer app.NatsInfra.Close()

	if app.Config.Prod_env {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	services := service.HewServices(app.Db, app.Chain, app.NatsInfra, app.Log, app.Config)

	app.Autostart(services)

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.Log)

		h.InitAPI(r)
	}

	srv := &http.Server{
		Addr:              app.Config.Api.Ipv4,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eChan := make(chan error, 1)
	interrupt := make(chan os.Signal, 1)

	app.Log.Info("http server is starting", logger.LS_HTTP, false, "addr", srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
	case sig := <-interrupt:
		app.Log.Info("shutting down", logger.LS_HTTP, false, "signal", sig.String())
	}

	app.shutdown(srv, services)
}

// shutdown stops taking requests first, then lets the running cycle finish
// within the same deadline.
func (app *App) shutdown(srv *http.Server, services *service.Services) {
	ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		app.Log.Error("http shutdown: "+err.Error(), logger.LS_HTTP, false)
	}
	if err := services.Scheduler.Stop(ctx); err != nil {
		app.Log.Error("scheduler stop: "+err.Error(), logger.LS_MONITOR, false)
	}
}

// start autostart services
func (app *App) Autostart(services *service.Services) {
	if !app.Config.Monitor.SchedulerEnabled {
		app.Log.Info("Autostart: scheduler disabled", logger.LS_MONITOR, false)
		return
	}

	app.Log.Info("Autostart: start monitoring scheduler", logger.LS_MONITOR, false, "interval", app.Config.MonitorInterval().String())
	services.Scheduler.Start()
}
