package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/silhouette-quiz/assets"
	"github.com/robalobadob/silhouette-quiz/internal/judge"
	"github.com/robalobadob/silhouette-quiz/internal/quiz"
	"github.com/robalobadob/silhouette-quiz/internal/tui"
)

func run(ctx context.Context, cfg *Config) error {
	out, closeLog, err := openLog(cfg.logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	lvl, _ := zerolog.ParseLevel(cfg.logLevel)
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	regions, err := assets.Regions()
	if err != nil {
		return fmt.Errorf("load regions: %w", err)
	}
	client, err := judge.New(cfg.server, cfg.timeout)
	if err != nil {
		return err
	}

	flow := quiz.NewFlow(ctx, client)
	defer flow.Close()

	app := tui.New(flow, tui.Options{
		Regions:    regions,
		Defaults:   quiz.Config{Regions: cfg.regions, AllowMega: cfg.mega, AllowPrimal: cfg.primal},
		ArtworkURL: client.ArtworkURL,
		ShowQR:     cfg.qr,
		ImageWidth: cfg.imageWidth,
	})

	log.Info().Str("server", cfg.server).Str("version", releaseVersion).Msg("starting silhouette")
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("ui: %w", err)
	}
	log.Info().Msg("bye")
	return nil
}

func openLog(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
