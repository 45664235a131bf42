package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/internfinder/internfinder/internal/pkg/logger"
	"github.com/internfinder/internfinder/internal/server"
)

// @title InternFinder API
// @version 1.0
// @description REST API for the InternFinder internship marketplace
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@internfinder.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// Load .env if present; real deployments set env vars directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not load .env file")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
