package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"narrowtris/client"
	"narrowtris/config"
	"narrowtris/tetris"

	"golang.org/x/term"
)

const (
	hideCursor = "\033[2J\033[?25l" // also clear screen
	showCursor = "\033[999;0H\n\r\033[?25h"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	logPath := flag.String("log", "", "write JSON logs to this file")
	debug := flag.Bool("debug", false, "log at debug level")
	seed := flag.Uint64("seed", 0, "seed for the piece randomizer, 0 picks one")
	noGhost := flag.Bool("no-ghost", false, "hide the ghost piece")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("narrowtris must be run from a terminal")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("unable to load config: %v", err)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logPath != "" {
		cfg.Logging.File = *logPath
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, closeLog, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("unable to open log file: %v", err)
	}
	defer closeLog()

	game, err := tetris.NewGame(cfg.Options(), logger)
	if err != nil {
		log.Fatalf("unable to create game: %v", err)
	}
	c, err := client.New(game, logger, &client.Options{NoGhost: *noGhost || cfg.NoGhost})
	if err != nil {
		log.Fatalf("unable to start client: %v", err)
	}

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)
	c.Start()
}

// newLogger writes JSON logs to the configured file, or nowhere as the
// terminal is used by the game.
func newLogger(cfg config.LoggingConfig) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = io.Discard
	closeLog := func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { f.Close() } //nolint: errcheck
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}
