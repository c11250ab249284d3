package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"foodorder/cmd"
	"foodorder/config"
	"foodorder/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "foodorder: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	app, err := cmd.NewBuilder(cfg).Build(context.Background())
	if err != nil {
		return err
	}
	return app.Run()
}
