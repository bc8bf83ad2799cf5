package main

import (
	"context"
	"log"
	"os"

	"github.com/hackinpovo/inventory/internal/buildinfo"
	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/server"
	"github.com/hackinpovo/inventory/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)

}
