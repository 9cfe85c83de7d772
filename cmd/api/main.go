package main

import (
	"context"
	"log"

	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/bootstrap"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/config"
	"github.com/sbenli10/denetron-saha-uygulamasi-sub001/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup error: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	r := server.NewRouter(cfg, app)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
