package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"gametemple/internal/game"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := game.DefaultConfig()
	fps := flag.Int("fps", 30, "Ticks per second")
	logFile := flag.String("log", "", "Write logs to this file (default: discard)")
	flag.BoolVar(&cfg.Mute, "mute", false, "Do not open the audio device")
	flag.Float64Var(&cfg.Volume, "volume", cfg.Volume, "Master volume in [0, 1]")
	flag.IntVar(&cfg.KeyGrace, "grace", cfg.KeyGrace, "Ticks before an unrepeated key counts as released")
	flag.StringVar(&cfg.PlayerName, "name", os.Getenv("USER"), "Name shown above the player")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for the scene")
	flag.BoolVar(&cfg.SaveLog, "save", true, "Append a session summary to $XDG_DATA_HOME/gametemple")
	flag.Parse()
	cfg.TickRate = time.Second / time.Duration(max(*fps, 1))

	// The terminal is in full-screen mode; log lines would corrupt it.
	log.SetOutput(io.Discard)
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg game.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	g := game.New(screen, cfg, game.NewSky())
	if !cfg.Mute {
		if err := g.Sound().Start(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
	}
	defer g.Sound().Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g.Run(ctx)
	return nil
}
