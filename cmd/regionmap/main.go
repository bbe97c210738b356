package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"

	"github.com/Garsondee/Region-Locker/internal/config"
	"github.com/Garsondee/Region-Locker/internal/game"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv(config.EnvPath), "YAML config file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowTitle("Region Locker")
	ebiten.SetWindowSize(g.WindowSize())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
