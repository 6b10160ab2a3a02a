package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/1siamBot/steer-engine/engine/config"
	"github.com/1siamBot/steer-engine/engine/record"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON, TOML or YAML config file")
	logLevel := flag.String("log-level", "", "override the configured log level (trace, debug, info, warn, error)")
	recordPath := flag.String("record", "", "record frames to this SQLite file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		config.NewLogger(os.Stderr, "info").Fatal().Err(err).Msg("loading config")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *recordPath != "" {
		cfg.Record.Enabled = true
		cfg.Record.Path = *recordPath
	}

	log := config.NewLogger(os.Stderr, cfg.LogLevel)
	log.Info().Str("loglevel", log.GetLevel().String()).Msg("Logging set up")

	var rec *record.Recorder
	if cfg.Record.Enabled {
		rec, err = record.Open(cfg.Record.Path, record.WithLogger(log))
		if err != nil {
			log.Fatal().Err(err).Msg("opening frame recorder")
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Error().Err(err).Msg("closing frame recorder")
			}
		}()
	}

	game, err := NewGame(cfg, log, rec)
	if err != nil {
		log.Fatal().Err(err).Msg("creating game")
	}

	ebiten.SetWindowSize(cfg.Demo.Width, cfg.Demo.Height)
	ebiten.SetWindowTitle("steer-engine demo")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(int(cfg.TickRate))

	if err := ebiten.RunGame(game); err != nil {
		log.Error().Err(err).Msg("game exited")
	}
}
