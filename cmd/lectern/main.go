// cmd/lectern/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stlog "log" // for fatal errors before the logger is ready
	"os"
	"os/signal"
	"syscall"

	"github.com/bethropolis/lectern/internal/app"
	"github.com/bethropolis/lectern/internal/config"
	"github.com/bethropolis/lectern/internal/logger"
	"github.com/bethropolis/lectern/internal/script"
	"github.com/bethropolis/lectern/internal/storage"
)

func main() {
	if err := run(); err != nil {
		stlog.Printf("lectern: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [script.txt]\n", config.AppName)
		fs.PrintDefaults()
	}
	args, err := flags.ParseFlags(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return nil
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		// Defaults are still usable.
		stlog.Printf("Warning: %v", err)
	}

	// --- Logger Initialization ---
	closeLog, err := logger.Setup(cfg.Logger)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLog()
	for _, w := range config.Warnings() {
		logger.Warnf("Config: %s", w)
	}
	logger.Infof("Starting %s %s...", config.AppName, config.Version)

	// --- Storage ---
	gateway, err := storage.Open(cfg.Storage.Backend, cfg.DataDir())
	if err != nil {
		logger.Errorf("Storage: %v", err)
		return err
	}
	defer gateway.Close()

	opts := app.Options{
		Config:    cfg,
		Storage:   gateway,
		ThemesDir: config.ThemesDir(),
	}
	if len(args) > 0 {
		title, text, err := script.ReadFile(args[0])
		if err != nil {
			return err
		}
		logger.Debugf("Script file specified: %s", args[0])
		seed := script.New(
			script.WithTitle(title),
			script.WithText(text),
			script.WithSettings(cfg.DefaultSettings()),
		)
		opts.Script = &seed
	} else {
		logger.Debugf("No script file specified, restoring draft if any.")
	}

	// --- Create and Run App ---
	lecternApp, err := app.New(opts)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := lecternApp.Run(ctx); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}

	logger.Infof("%s finished.", config.AppName)
	return nil
}
