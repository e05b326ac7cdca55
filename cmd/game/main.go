package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop/client"
	"github.com/tomz197/invaders/internal/metrics"
	"github.com/tomz197/invaders/internal/object"
)

func main() {
	configFile := pflag.StringP("config", "c", "", "path to a config file (json, yaml or toml)")
	pflag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := logging.New(logOut, cfg.LogLevel)
	if err != nil {
		return err
	}

	recorder, err := metrics.New()
	if err != nil {
		return err
	}

	player := openAudio(cfg.Audio, logger)
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	c := client.NewClient(bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Audio:    player,
		Metrics:  recorder,
		Logger:   logger,
		Field:    object.Field{Width: cfg.Field.Width, Height: cfg.Field.Height},
	})
	return c.Run()
}

// openAudio returns the speaker, or a silent player if audio is disabled
// or the device cannot be opened.
func openAudio(enabled bool, logger *log.Logger) audio.Player {
	if !enabled {
		return audio.Nop{}
	}
	s, err := audio.NewSpeaker()
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return audio.Nop{}
	}
	return s
}
