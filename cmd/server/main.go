package main

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"stressjournal/internal/backend"
	"stressjournal/internal/config"
	"stressjournal/internal/metrics"
	"stressjournal/internal/server"
	"stressjournal/internal/view"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	metrics.MustRegister(prometheus.DefaultRegisterer)

	client, err := backend.NewClient(cfg.Backend)
	if err != nil {
		log.Fatalf("failed to create backend client: %v", err)
	}

	model := view.New(client)

	srv, err := server.New(*cfg, model, client)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
