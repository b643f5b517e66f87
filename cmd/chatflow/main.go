package main

import (
	"context"
	"log"
	"os"

	"github.com/chatflow/chatflow-cli/internal/client/cli"
	"github.com/chatflow/chatflow-cli/internal/client/config"
	"github.com/chatflow/chatflow-cli/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, logging.LevelFromEnv())

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
