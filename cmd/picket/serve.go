package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/picket/internal/logging"
	pickethttp "github.com/aretw0/picket/pkg/adapters/http"
	redisstore "github.com/aretw0/picket/pkg/adapters/redis"
	"github.com/aretw0/picket/pkg/registry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve record construction over HTTP",
	Long: `Loads the declaration file and exposes every schema on an HTTP API:
POST /schemas/{name}/mapping and /tuple build records, /metrics exposes
Prometheus metrics. With --redis, built mappings are persisted and readable
back via /records/{id}.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("redis", "", "Redis address for record persistence (optional)")
	serveCmd.Flags().Duration("redis-ttl", 0, "Expiration for persisted records (0 = keep forever)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("schemas")
	addr, _ := cmd.Flags().GetString("addr")
	redisAddr, _ := cmd.Flags().GetString("redis")
	redisTTL, _ := cmd.Flags().GetDuration("redis-ttl")
	levelStr, _ := cmd.Flags().GetString("log-level")

	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	logger := logging.New(level)

	reg := registry.New()
	if err := reg.LoadFile(path); err != nil {
		return err
	}
	logger.Info("schemas loaded", "file", path, "schemas", reg.Names())

	opts := []pickethttp.Option{pickethttp.WithLogger(logger)}
	if redisAddr != "" {
		store := redisstore.New(redisAddr, "", 0, redisstore.WithTTL(redisTTL))
		defer store.Close()
		opts = append(opts, pickethttp.WithStore(store))
		logger.Info("record persistence enabled", "redis", redisAddr)
	}

	server := &http.Server{
		Addr:    addr,
		Handler: pickethttp.NewHandler(reg, opts...),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
