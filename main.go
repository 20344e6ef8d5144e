package main

import (
	"flag"
	"fmt"
	"os"

	"storefront/cmd"
	"storefront/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
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

	app, err := cmd.NewApp(cfg)
	if err != nil {
		return err
	}
	return app.Run()
}
