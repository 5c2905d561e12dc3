package main

import (
	"context"
	"log"

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
	telemetry.Configure(cfg.LogJSON, cfg.LogDebug)
	defer telemetry.Sync()

	app, err := bootstrap.BuildResumeMatcher(context.Background(), cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	addr := server.Addr(cfg.Port, "5002")
	telemetry.Info("server.start", map[string]any{
		"service":  bootstrap.ResumeMatcherService,
		"addr":     addr,
		"embedder": cfg.EmbeddingsProvider,
	})
	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
