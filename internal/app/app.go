package app

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"svcmap/internal/config"
	"svcmap/internal/service/directory"
	"svcmap/internal/sse"
)

type App struct {
	cfg    *config.Config
	svc    *directory.Service
	hub    *sse.Hub
	server *http.Server
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewApp(cfg *config.Config, svc *directory.Service, hub *sse.Hub, router *gin.Engine, logger *zap.Logger) *App {
	return &App{
		cfg: cfg,
		svc: svc,
		hub: hub,
		server: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: router,
		},
		logger: logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.hub.Run(ctx)
	}()

	// Hub first so map-ready reaches SSE clients that connect early. A
	// failed map init is survivable; the directory API keeps serving.
	if err := a.svc.Start(ctx, a.cfg.MapContainerID); err != nil {
		return err
	}

	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("graceful shutdown started")
	shutdownErr := a.server.Shutdown(ctx)
	a.svc.Shutdown()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("graceful shutdown completed")
		return shutdownErr
	case <-ctx.Done():
		if shutdownErr != nil {
			return shutdownErr
		}
		return ctx.Err()
	}
}

func (a *App) Logger() *zap.Logger {
	return a.logger
}
