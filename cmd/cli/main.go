package main

import (
	"context"
	"log"
	"os"

	"github.com/hackinpovo/inventory/internal/buildinfo"
	"github.com/hackinpovo/inventory/internal/client/cli"
	"github.com/hackinpovo/inventory/internal/client/config"
	"github.com/hackinpovo/inventory/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
