package main

import (
	"context"
	"log"
	"os"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/buildinfo"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/uploader"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := uploader.LoadConfig()
	app, err := uploader.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx, uploader.PositionalArgs(os.Args[1:])); err != nil {
		log.Fatalf("%v", err)
	}
}
