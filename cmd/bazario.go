package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bazario/internal/client"
	"bazario/internal/configuration"
	"bazario/internal/database"
	"bazario/internal/identity"
	"bazario/internal/logger"
	"bazario/internal/server"
)

func main() {
	if err := runApp(); err != nil {
		os.Exit(1)
	}
}

func runApp() error {
	appContext := context.Background()
	logOutput := io.Writer(os.Stdout)
	appLogger := logger.NewLogger(logger.LevelError, logOutput)

	defer func() {
		if r := recover(); r != nil {
			appLogger.Errorf("APPLICATION CRASHED: %+v", r)
		}
	}()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		appLogger.Error("Error loading .env file:", err)
		return err
	}

	config, err := configuration.GetConfig("config.toml")
	if err != nil {
		appLogger.Error("Error getting configuration:", err)
		return err
	}

	if config.LogToFile {
		logFile, err := os.OpenFile("bazario_backend.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			appLogger.Error("Error opening log file:", err)
			return err
		}
		defer func() {
			if err := logFile.Close(); err != nil {
				appLogger.Error("Error closing log file:", err)
			}
		}()
		logOutput = io.MultiWriter(logOutput, logFile)
	}
	appLogger = logger.NewLogger(config.LogLevel, logOutput)

	appLogger.Info("Connecting to DB at", config.DatabaseURI)
	dbConn, err := database.ConnectDB(appContext, config.DatabaseURI)
	if err != nil {
		appLogger.Error("Error connecting to DB:", err)
		return err
	}
	defer func() {
		if err := dbConn.Disconnect(appContext); err != nil {
			appLogger.Error("Error disconnecting from DB:", err)
		}
	}()

	appLogger.Info("Fetching identity provider key set from", config.IdentityJWKSURL)
	verifier, err := identity.NewVerifier(appContext, config.IdentityIssuer, config.IdentityJWKSURL)
	if err != nil {
		appLogger.Error("Error setting up identity verifier:", err)
		return err
	}

	srv := server.Server{
		DB:       database.Database{Database: dbConn.Database(database.Name)},
		Verifier: verifier,
		Gateway: client.Client{
			Client:           &http.Client{Timeout: 15 * time.Second},
			PaymentAPIURL:    config.PaymentAPIURL,
			PaymentSecretKey: config.PaymentSecretKey,
			Logger:           appLogger,
		},
		Logger: appLogger,
	}

	httpSrv := &http.Server{
		Handler:      srv.Router(),
		Addr:         config.ServerAddress,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	appLogger.Info("Serving on", httpSrv.Addr)
	return httpSrv.ListenAndServe()
}
