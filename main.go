package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/core"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	env, err := config.ReadEnv()
	if err != nil {
		log.Fatal("Error reading environment:", err)
	}

	// Load configuration
	cfg, err := config.LoadConfig(env.ConfigPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, stopping services...")
		cancel()
	}()

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to set up services:", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}
	log.Printf("Dashboard API listening on port %s", cfg.Port)

	<-ctx.Done()
	registry.StopAll()
}
