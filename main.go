package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"ayna-epg/config"
	"ayna-epg/epg"
	"ayna-epg/logger"
)

func main() {
	fmt.Println("Starting EPG update process...")

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty, cfg.Log.File)

	_, err = epg.GenerateEPG(context.Background(), cfg, afero.NewOsFs(), time.Now())
	if err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		logger.Log.Fatal().Err(err).Msg("Failed to update EPG XML")
	}

	fmt.Printf("EPG has been successfully saved to %s!\n", cfg.OutputPath)
}
