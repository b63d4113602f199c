package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"hueareyou/internal/app"
	"hueareyou/internal/config"
	"hueareyou/internal/engine"
	"hueareyou/internal/session"
	"hueareyou/internal/tui"
	"hueareyou/internal/words"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Color every word of a word set in the terminal",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadClient()

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	src, err := words.Load(cfg.WordsFile, cfg.WordSet)
	if err != nil {
		return err
	}

	c, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	flow := app.New(engine.New(src), session.NewManager(c, logger), c, logger)
	defer flow.Close()

	_, err = tea.NewProgram(tui.New(flow, cfg.RequestTimeout), tea.WithAltScreen()).Run()
	return err
}
