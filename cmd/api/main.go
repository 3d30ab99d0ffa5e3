package main

import (
	"context"
	"os"

	"github.com/cfcpretoriaeast/churchhub/internal/pkg/logger"
	"github.com/cfcpretoriaeast/churchhub/internal/server"
)

// @title ChurchHub API
// @version 1.0
// @description Member, event, attendance and growth tracking API for CFC Pretoria East

// @contact.name CFC Pretoria East IT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	srv, err := server.NewServer(context.Background())
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
