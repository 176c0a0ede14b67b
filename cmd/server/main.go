package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/hashicorp/go-hclog"

    "pricesync/internal/api"
    "pricesync/internal/app"
    "pricesync/internal/config"
    "pricesync/internal/logging"
    "pricesync/internal/telemetry"
)

func main() {
    // Config
    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil {
        hclog.Default().Error("config", "err", err)
        os.Exit(1)
    }
    logger := logging.New("pricesync", cfg.Log.Level, cfg.Log.JSON)

    if err := run(cfg, logger); err != nil {
        logger.Error("server stopped", "err", err)
        os.Exit(1)
    }
}

func run(cfg config.Config, logger hclog.Logger) error {
    if err := telemetry.Setup(cfg.Telemetry, logger.Named("telemetry")); err != nil {
        return err
    }

    a, err := app.New(cfg, logger)
    if err != nil {
        return err
    }
    defer a.Close()

    srv := &http.Server{
        Addr:              ":" + cfg.Server.Port,
        Handler:           newHandler(cfg, a, logger.Named("api")),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       time.Duration(cfg.Server.RequestTimeoutSec) * time.Second,
        WriteTimeout:      time.Duration(cfg.Server.RequestTimeoutSec) * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    errCh := make(chan error, 1)
    go func() {
        logger.Info("server listening", "port", cfg.Server.Port, "db_driver", cfg.Database.Driver)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            errCh <- err
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    select {
    case <-ctx.Done():
    case err := <-errCh:
        return err
    }
    logger.Info("shutting down")
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    return srv.Shutdown(shutdownCtx)
}

func newHandler(cfg config.Config, a *app.App, logger hclog.Logger) http.Handler {
    apiCfg := api.Config{AllowedOrigins: cfg.Server.AllowedOrigins}
    if cfg.Telemetry.Enabled {
        apiCfg.Metrics = telemetry.Handler()
    }
    return api.NewHandler(apiCfg, a.Quotes, a.Syncer, a.Store, logger)
}
