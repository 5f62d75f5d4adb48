package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/yigit/kursverwaltung/internal/pkg/logger"
	"github.com/yigit/kursverwaltung/internal/server"
)

// @title Kursverwaltung API
// @version 1.0
// @description Verwaltung von Kursen, Dozenten, Räumen, Teilnehmern und Anmeldungen

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// A missing .env is fine, the environment and configs/config.yaml still apply
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	srv, err := server.NewServer(context.Background())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
