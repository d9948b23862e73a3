package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/helios-exchange/helios/internal/cli"
	"github.com/helios-exchange/helios/internal/config"
	"github.com/helios-exchange/helios/internal/exchange"
	"github.com/helios-exchange/helios/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := config.LoadConfig()

	zapLogger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	ex := exchange.New(zapLogger)
	app := cli.NewApp(ex, zapLogger, cfg.Prompt)

	if err := app.Run(os.Stdin, os.Stdout); err != nil {
		zapLogger.Fatal("command loop failed", zap.Error(err))
	}
}
