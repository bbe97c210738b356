package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/Garsondee/Region-Locker/internal/config"
	"github.com/Garsondee/Region-Locker/internal/term"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv(config.EnvPath), "YAML config file")
	zoom := flag.Float64("zoom", 0.25, "cells per world unit")
	logPath := flag.String("log", "", "write debug logs to this file")
	flag.Parse()

	if err := run(*configPath, *zoom, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "regionmap-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, zoom float64, logPath string) error {
	// The terminal owns stdout and stderr, so logs go to a file or nowhere.
	logger := slog.New(slog.DiscardHandler)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Viewer.Zoom = zoom

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	v := term.NewViewer(screen, cfg, logger)
	if !clipboard.Unsupported {
		v.Copy = clipboard.WriteAll
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := v.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
