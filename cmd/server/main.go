package main

import (
	"context"
	"log"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/server"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
