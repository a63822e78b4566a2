package main

import (
	"github.com/emph/emph-api/internal/config"
	"github.com/emph/emph-api/internal/database"
	"github.com/emph/emph-api/internal/logging"
	"github.com/emph/emph-api/internal/middleware"
	"github.com/emph/emph-api/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := logging.NewLogger()
	defer log.Sync()

	cfg := config.Load()

	log.Info("Starting emph-api",
		zap.String("port", cfg.Port),
	)

	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	app := fiber.New()
	app.Use(middleware.RequestLogger(log))
	routes.Setup(app)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Server stopped", zap.Error(err))
	}
}
