package main

import (
	"context"
	"log"
	"time"

	"hiring-signals/internal/bootstrap"
	"hiring-signals/internal/shared/config"
	"hiring-signals/internal/shared/server"
	"hiring-signals/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateDatastore(); err != nil {
		log.Fatalf("config: %v", err)
	}
	telemetry.Configure(cfg.LogJSON, cfg.LogDebug)
	defer telemetry.Sync()

	ctx := context.Background()
	app, err := bootstrap.BuildInterviewAPI(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Datastore.Close()

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := app.Datastore.Ping(probeCtx); err != nil {
		telemetry.Warn("datastore.probe_failed", map[string]any{
			"backend": app.Datastore.Backend,
			"error":   err,
		})
	} else {
		telemetry.Info("datastore.probe_ok", map[string]any{"backend": app.Datastore.Backend})
	}
	cancel()

	addr := server.Addr(cfg.Port, "5000")
	telemetry.Info("server.start", map[string]any{
		"service": bootstrap.InterviewAPIService,
		"addr":    addr,
		"backend": app.Datastore.Backend,
	})
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
