package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/elsanchez/bakraload/internal/domain"
	"github.com/elsanchez/bakraload/internal/mockservice"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:5000", "Listen address")
	modeFlag := flag.String("mode", "json", "Response mode (json or blob)")
	dir := flag.String("dir", filepath.Join(os.TempDir(), "bakra-mock"), "Artifact directory")
	failMarker := flag.String("fail", "fail", "URLs containing this substring fail")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	mode, err := domain.ParseResponseMode(*modeFlag)
	if err != nil {
		logger.Error("invalid mode", "error", err)
		os.Exit(1)
	}

	svc, err := mockservice.New(mockservice.Config{
		Mode:       mode,
		Dir:        *dir,
		FailMarker: *failMarker,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("mock download service listening", "addr", *addr, "mode", mode, "dir", *dir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
