package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"snake-arcade/config"
	"snake-arcade/game"
	"snake-arcade/game/clock"
	"snake-arcade/log"
	"snake-arcade/stats"
	"snake-arcade/store"
	"snake-arcade/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"
)

func main() {
	cfg, err := config.Load(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	level, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to parse log level: %v", err)
	}
	log.SetLevel(level)

	scores, err := store.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to open %s store: %v", cfg.Store, err)
	}
	defer scores.Close()

	history, err := stats.NewGameStats(filepath.Join(cfg.DataDir, "stats.json"))
	if err != nil {
		log.Warn("Failed to load run history, starting empty: %v", err)
	}

	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	grid := cfg.Grid()
	renderer := ui.NewRenderer(grid, cfg.BoxSize)
	frameClock := clock.NewFrameClock(time.Now)

	g := game.NewGame(grid, game.Deps{
		Renderer: renderer,
		UI:       renderer,
		Store:    scores,
		Clock:    frameClock,
		Recorder: history,
		Logger:   log.Default().With("component", "game"),
		Rand:     rand.New(rand.NewSource(seed)),
	})

	width, height := renderer.WindowSize()
	rl.InitWindow(width, height, "Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.TargetFPS))

	log.Info("Starting %dx%d game, store=%s", grid.Width, grid.Height, cfg.Store)
	g.InitGame()

	for !rl.WindowShouldClose() {
		for _, dir := range ui.PressedDirections() {
			g.SetDirection(dir)
		}

		if renderer.RestartRequested() {
			g.InitGame()
		} else if g.Over() && ui.CopyRequested() {
			if err := ui.CopyToClipboard(renderer.ScoreLine()); err != nil {
				log.Warn("Failed to copy score: %v", err)
			} else {
				log.Info("Copied %q to clipboard", renderer.ScoreLine())
			}
		}

		frameClock.Advance()
		renderer.Draw(history.Summary())
	}
}
