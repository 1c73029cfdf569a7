package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/harmony/config"
	"github.com/oliverbestmann/harmony/game"
	"github.com/oliverbestmann/harmony/harmonybiten"
	"github.com/oliverbestmann/harmony/harmonytui"
	"github.com/pkg/profile"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	profileMode := flag.String("profile", "", "write a cpu or mem profile")
	terminal := flag.Bool("tui", false, "play in the terminal")
	flag.Parse()

	if err := run(*configPath, *profileMode, *terminal); err != nil {
		slog.Error("Awaken failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(configPath, profileMode string, terminal bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	handler, err := cfg.Logging.Handler(os.Stderr)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))

	switch profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", profileMode)
	}

	levels, err := loadLevels(cfg.Simulation.Levels)
	if err != nil {
		return err
	}

	g, err := game.New(levels, game.Options{
		Tick:         cfg.Simulation.Tick,
		MoveDuration: cfg.Simulation.MoveDuration,
		MaxClones:    cfg.Simulation.MaxClones,
	})

	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	if terminal {
		return harmonytui.Run(g, harmonytui.Options{FrameRate: cfg.Terminal.FrameRate})
	}

	return harmonybiten.Run(g, harmonybiten.WindowConfig{
		Title:     cfg.Window.Title,
		Scale:     cfg.Window.Scale,
		ShowStats: cfg.Logging.Level == "debug",
	})
}

func loadLevels(path string) ([]game.Level, error) {
	if path == "" {
		return game.DefaultLevels()
	}

	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open levels: %w", err)
	}

	defer fp.Close()

	levels, err := game.LoadLevels(fp)
	if err != nil {
		return nil, fmt.Errorf("load levels %s: %w", path, err)
	}

	return levels, nil
}
