package main

import (
	"context"
	"log"
	"os"

	"github.com/dspavlov/docshelf/internal/buildinfo"
	"github.com/dspavlov/docshelf/internal/client/cli"
	"github.com/dspavlov/docshelf/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
