package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/fortiumafrica/siteapi"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := siteapi.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := siteapi.NewStore(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	notifier := siteapi.NewEmailNotifier(cfg.ResendAPIKey, cfg.FromEmail, cfg.NotificationEmail)
	blobs := siteapi.NewDirBlobStore(cfg.UploadsDir)

	app := siteapi.New(cfg, store, notifier, blobs, log)
	if err := app.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
