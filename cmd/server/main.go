package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kamchettysadhika/GdocsforCoding/internal/config"
	httpHandler "github.com/kamchettysadhika/GdocsforCoding/internal/delivery/http"
	"github.com/kamchettysadhika/GdocsforCoding/internal/delivery/ws"
	"github.com/kamchettysadhika/GdocsforCoding/internal/metrics"
	"github.com/kamchettysadhika/GdocsforCoding/internal/usecase"
)

var (
	flagHost  string
	flagPort  string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "liveshare-server",
	Short: "Live Share document sync server",
	Long:  "Real-time collaboration server: document sync, presence awareness and chat over WebSockets.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagHost, "host", "", "host to bind to (overrides HOST)")
	rootCmd.Flags().StringVar(&flagPort, "port", "", "port to bind to (overrides PORT)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func run() error {
	cfg := config.LoadFromEnv()
	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagDebug {
		cfg.LogLevel = "debug"
	}
	if cfg.LogLevel == "silent" || cfg.LogLevel == "off" {
		log.SetOutput(io.Discard)
	}

	// Wire the process-wide components once; everything downstream receives
	// them by handle.
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	connections := ws.NewRegistry(m)
	executor := usecase.NewCommandExecutor(cfg.ExecTimeout)
	hub := ws.NewHub(cfg, connections, executor, m)
	handler := httpHandler.NewHandler(hub, cfg)
	router := httpHandler.NewRouter(handler, registry)

	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go hub.RunSweeper(sweepCtx)

	server := &http.Server{
		Addr:         cfg.Host + ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Live Share server running at ws://%s:%s/ws", cfg.Host, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancelSweep()
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("Server exited gracefully")
	return nil
}

func main() {
	// Load .env file (ignore error if not exists, e.g. in production)
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
