package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"redis/internal/config"
	"redis/internal/server"
)

func main() {
	port := flag.Int("port", 0, "Port to listen on (overrides REDIS_PORT)")
	host := flag.String("host", "", "Host to bind to (overrides REDIS_HOST)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.NewRedisServer(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		cancel()
		srv.Shutdown()
	}()

	log.Printf("Starting Redis server on %s:%d", cfg.Server.Host, cfg.Server.Port)
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
