package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/example/guitarcoach/internal/app"
	"github.com/example/guitarcoach/internal/config"
	"github.com/example/guitarcoach/internal/logger"
)

func main() {
	retval := 0
	defer func() { os.Exit(retval) }()

	verbose := flag.Bool("v", false, "also write logs to stdout")
	help := flag.Bool("h", false, "show help")
	flag.Usage = printUsage
	flag.Parse()
	if *help || flag.NArg() == 0 {
		flag.Usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		retval = 1
		return
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Path:    cfg.LogPath,
		DataDir: cfg.AppDataDir,
		Console: *verbose,
	})
	defer log.Sync()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case sig := <-sigChan:
			log.Info("Received signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	a, err := app.New(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.Error("Failed to start", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		retval = 1
		return
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("Error during shutdown", zap.Error(err))
		}
	}()

	if err := a.Run(ctx, flag.Args()); err != nil {
		if errors.Is(err, app.ErrUsage) {
			fmt.Fprintf(os.Stderr, "%v\n\n", err)
			printUsage()
			retval = 2
			return
		}
		log.Error("Command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		retval = 1
	}
}

func printUsage() {
	app.Usage(os.Stderr)
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nConfiguration is read from the environment and an optional .env file.\n")
}
