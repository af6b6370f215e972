package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"aquascope/config"
	"aquascope/dataset"
	httpserver "aquascope/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store := dataset.NewStore(cfg.MaxDatasets)

	srv := httpserver.New(cfg, store)
	log.Printf("contaminant explorer API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
