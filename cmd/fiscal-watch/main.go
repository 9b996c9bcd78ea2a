package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fiscal/internal/config"
	"fiscal/internal/logger"
	"fiscal/internal/storage"
	"fiscal/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	out := filepath.Join(cfg.OutputDir, "liquidacoes.xlsx")
	svc := watcher.NewService(cfg, db, logger.New(cfg), cfg.InputPath, out)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
