package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/trainer/internal/randutil"
	"github.com/cardroom/trainer/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"trainer.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"Address to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	Seed     string `short:"s" long:"seed" help:"Deterministic session seed; any string, same string replays the same session"`
}

func main() {
	// A .env alongside the binary may set defaults; absence is fine.
	_ = godotenv.Load()
	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.Seed == "" {
		CLI.Seed = os.Getenv("TRAINER_SEED")
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := time.Now().UnixNano()
	if CLI.Seed != "" {
		seed = randutil.SeedFromString(CLI.Seed)
	}

	session, err := server.NewSession(cfg.HandConfig(seed), quartz.NewReal(), logger)
	if err != nil {
		fmt.Printf("Error dealing first hand: %v\n", err)
		ctx.Exit(1)
	}

	addr := cfg.ListenAddress()
	if CLI.Addr != "" {
		addr = CLI.Addr
	}
	srv := server.NewServer(addr, session, logger)

	logger.Info("starting trainer", "addr", addr, "seats", len(cfg.Seats), "seed", seed)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, runCtx := errgroup.WithContext(runCtx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", "error", err)
		ctx.Exit(1)
	}
}
